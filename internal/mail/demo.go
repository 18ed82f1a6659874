package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coffee-subscribe/internal/common/logger"

	"github.com/google/uuid"
)

// DemoDispatcher records would-be sends in the log and fabricates message
// identifiers without performing network delivery.
type DemoDispatcher struct {
	logger logger.Logger
}

func NewDemoDispatcher(log logger.Logger) *DemoDispatcher {
	return &DemoDispatcher{
		logger: log.WithFields(map[string]interface{}{"dispatcher": "demo"}),
	}
}

func (d *DemoDispatcher) Mode() string { return "demo" }

func (d *DemoDispatcher) Dispatch(ctx context.Context, batch Batch) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled before demo dispatch: %w", err)
	}

	receipt := &Receipt{
		CustomerMessageID: makeMessageID("cust"),
		CompanyMessageID:  makeMessageID("co"),
	}

	// The log record is the proof of the simulated send.
	d.logger.Info("demo email pipeline dispatch", map[string]interface{}{
		"customerMessageId": receipt.CustomerMessageID,
		"companyMessageId":  receipt.CompanyMessageID,
		"customerTo":        batch.Customer.To,
		"customerSubject":   batch.Customer.Subject,
		"companyTo":         batch.Company.To,
		"companySubject":    batch.Company.Subject,
	})

	return receipt, nil
}

// makeMessageID fabricates an id shaped like a provider one, e.g.
// cust_20260119083015_8f3a1c9b0.
func makeMessageID(prefix string) string {
	ts := time.Now().UTC().Format("20060102150405")
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("%s_%s_%s", prefix, ts, suffix)
}
