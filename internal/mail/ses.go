package mail

import (
	"context"
	"fmt"

	"coffee-subscribe/internal/common/errors"
	"coffee-subscribe/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESService is the subset of the SES client used by the dispatcher.
// Tests inject a fake that records calls without hitting the network.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESDispatcher delivers both messages of a batch through AWS SES. One
// dispatch is one attempt per message; a failed send fails the whole batch.
type SESDispatcher struct {
	client SESService
	sender string
	logger logger.Logger
}

func NewSESDispatcher(ctx context.Context, region, sender string, log logger.Logger) (*SESDispatcher, error) {
	if region == "" {
		return nil, errors.NewProviderConfigMissingError("aws region not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.NewProviderConfigMissingError(fmt.Sprintf("load AWS config: %v", err))
	}

	return &SESDispatcher{
		client: ses.NewFromConfig(awsCfg),
		sender: sender,
		logger: log.WithFields(map[string]interface{}{"dispatcher": "ses"}),
	}, nil
}

// NewSESDispatcherWithClient wires an existing client, used by tests.
func NewSESDispatcherWithClient(client SESService, sender string, log logger.Logger) *SESDispatcher {
	return &SESDispatcher{
		client: client,
		sender: sender,
		logger: log.WithFields(map[string]interface{}{"dispatcher": "ses"}),
	}
}

func (d *SESDispatcher) Mode() string { return "ses" }

func (d *SESDispatcher) Dispatch(ctx context.Context, batch Batch) (*Receipt, error) {
	customerID, err := d.send(ctx, batch.Customer)
	if err != nil {
		return nil, fmt.Errorf("customer message: %w", err)
	}

	companyID, err := d.send(ctx, batch.Company)
	if err != nil {
		return nil, fmt.Errorf("company message: %w", err)
	}

	d.logger.Info("batch dispatched", map[string]interface{}{
		"customerMessageId": customerID,
		"companyMessageId":  companyID,
	})

	return &Receipt{
		CustomerMessageID: customerID,
		CompanyMessageID:  companyID,
	}, nil
}

func (d *SESDispatcher) send(ctx context.Context, msg Message) (string, error) {
	out, err := d.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Text)},
				Html: &types.Content{Data: aws.String(msg.HTML)},
			},
		},
		Source: aws.String(d.sender),
	})
	if err != nil {
		return "", err
	}

	if out.MessageId == nil || *out.MessageId == "" {
		// Provider accepted the send but returned no id; fabricate one so
		// the response contract holds.
		return makeMessageID("ses"), nil
	}
	return *out.MessageId, nil
}
