package mail

import (
	"context"
	"errors"
	"testing"

	"coffee-subscribe/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSESService records SendEmail calls and replays scripted outcomes.
type fakeSESService struct {
	inputs  []*ses.SendEmailInput
	outputs []*ses.SendEmailOutput
	errs    []error
}

func (f *fakeSESService) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	call := len(f.inputs)
	f.inputs = append(f.inputs, params)
	if call < len(f.errs) && f.errs[call] != nil {
		return nil, f.errs[call]
	}
	if call < len(f.outputs) {
		return f.outputs[call], nil
	}
	return &ses.SendEmailOutput{MessageId: aws.String("provider-id")}, nil
}

const testSender = "Standard Issue Coffee Co <no-reply@standardissuecoffee.co>"

func TestSESDispatcher_SendsBothMessages(t *testing.T) {
	svc := &fakeSESService{
		outputs: []*ses.SendEmailOutput{
			{MessageId: aws.String("ses-customer-1")},
			{MessageId: aws.String("ses-company-1")},
		},
	}
	d := NewSESDispatcherWithClient(svc, testSender, logger.NewTestLogger(t))
	assert.Equal(t, "ses", d.Mode())

	receipt, err := d.Dispatch(context.Background(), testBatch())
	require.NoError(t, err)
	assert.Equal(t, "ses-customer-1", receipt.CustomerMessageID)
	assert.Equal(t, "ses-company-1", receipt.CompanyMessageID)

	require.Len(t, svc.inputs, 2)

	customer := svc.inputs[0]
	assert.Equal(t, testSender, aws.ToString(customer.Source))
	require.Len(t, customer.Destination.ToAddresses, 1)
	assert.Equal(t, "you@example.com", customer.Destination.ToAddresses[0])
	assert.Equal(t, "Your Standard Issue Coffee subscription is confirmed", aws.ToString(customer.Message.Subject.Data))
	assert.NotEmpty(t, aws.ToString(customer.Message.Body.Text.Data))
	assert.NotEmpty(t, aws.ToString(customer.Message.Body.Html.Data))

	company := svc.inputs[1]
	assert.Equal(t, "orders@standardissuecoffee.co", company.Destination.ToAddresses[0])
}

func TestSESDispatcher_CustomerSendFailureFailsBatch(t *testing.T) {
	svc := &fakeSESService{
		errs: []error{errors.New("MessageRejected: address not verified")},
	}
	d := NewSESDispatcherWithClient(svc, testSender, logger.NewTestLogger(t))

	receipt, err := d.Dispatch(context.Background(), testBatch())
	assert.Nil(t, receipt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer message")

	// The company send is not attempted once the customer send fails.
	assert.Len(t, svc.inputs, 1)
}

func TestSESDispatcher_CompanySendFailureFailsBatch(t *testing.T) {
	svc := &fakeSESService{
		errs: []error{nil, errors.New("Throttling: rate exceeded")},
	}
	d := NewSESDispatcherWithClient(svc, testSender, logger.NewTestLogger(t))

	receipt, err := d.Dispatch(context.Background(), testBatch())
	assert.Nil(t, receipt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "company message")
	assert.Len(t, svc.inputs, 2)
}

func TestSESDispatcher_MissingProviderIDIsFabricated(t *testing.T) {
	svc := &fakeSESService{
		outputs: []*ses.SendEmailOutput{{}, {MessageId: aws.String("")}},
	}
	d := NewSESDispatcherWithClient(svc, testSender, logger.NewTestLogger(t))

	receipt, err := d.Dispatch(context.Background(), testBatch())
	require.NoError(t, err)
	assert.Regexp(t, `^ses_\d{14}_[0-9a-f]{9}$`, receipt.CustomerMessageID)
	assert.Regexp(t, `^ses_\d{14}_[0-9a-f]{9}$`, receipt.CompanyMessageID)
}

func TestNewSESDispatcher_MissingRegionIsConfigError(t *testing.T) {
	d, err := NewSESDispatcher(context.Background(), "", testSender, logger.NewTestLogger(t))
	assert.Nil(t, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROVIDER_CONFIG_MISSING")
}
