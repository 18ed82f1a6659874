package subscription

import (
	"context"
	"strings"
	"time"

	"coffee-subscribe/internal/common/config"
	"coffee-subscribe/internal/common/errors"
	"coffee-subscribe/internal/common/logger"
	"coffee-subscribe/internal/common/metrics"
	"coffee-subscribe/internal/common/observability"
	"coffee-subscribe/internal/common/validation"
	"coffee-subscribe/internal/mail"
)

// Service runs the submission pipeline: validate, render both messages,
// dispatch once, build the structured result. It is stateless and reentrant;
// concurrent submissions share only the read-only config and dispatcher.
type Service struct {
	email      config.EmailConfig
	dispatcher mail.Dispatcher
	logger     logger.Logger
	obs        *observability.Observability
}

type ServiceDependencies struct {
	Dispatcher mail.Dispatcher
	Logger     logger.Logger
	Obs        *observability.Observability
}

func NewService(deps ServiceDependencies, email config.EmailConfig) *Service {
	return &Service{
		email:      email,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		obs:        deps.Obs,
	}
}

// Mode reports the active dispatch mode.
func (s *Service) Mode() string {
	return s.dispatcher.Mode()
}

// Submit processes one validated-or-not submission end to end. A returned
// StandardError is terminal for the attempt; no step retries.
func (s *Service) Submit(ctx context.Context, req *Request) (*Result, *errors.StandardError) {
	normalize(req)

	if valErr := ValidateRequest(req); valErr != nil {
		s.recordSubmission(ctx, "rejected")
		return nil, valErr
	}

	s.checkWireShape(req)

	batch := RenderBatch(req, s.email.CompanyInbox)

	dispatchCtx, cancel := context.WithTimeout(ctx, config.GetDuration(s.email.DispatchTimeout))
	defer cancel()

	started := time.Now()
	receipt, err := s.dispatcher.Dispatch(dispatchCtx, batch)
	if s.obs != nil {
		s.obs.RecordDispatchDuration(ctx, s.dispatcher.Mode(), time.Since(started))
	}
	if err != nil {
		s.logger.Error("dispatch failed", map[string]interface{}{
			"error": err.Error(),
			"mode":  s.dispatcher.Mode(),
			"to":    req.Email,
		})
		metrics.DispatchesCompleted.WithLabelValues(s.dispatcher.Mode(), "error").Inc()
		s.recordSubmission(ctx, "dispatch_failed")
		return nil, errors.NewDispatchFailedError(err)
	}
	metrics.DispatchesCompleted.WithLabelValues(s.dispatcher.Mode(), "ok").Inc()

	now := time.Now().UTC().Format(time.RFC3339)
	mode := s.dispatcher.Mode()

	result := &Result{
		OK:          true,
		Mode:        mode,
		EmailStatus: emailStatus(mode),
		Timestamp:   now,
		IDs: &MessageIDs{
			CustomerMessageID: receipt.CustomerMessageID,
			CompanyMessageID:  receipt.CompanyMessageID,
		},
		CompanyInbox: s.email.CompanyInbox,
	}

	// Previews only leave the server in demo mode; live sends keep their
	// content in the provider.
	if mode == "demo" {
		result.Previews = &Previews{
			Customer: previewOf(batch.Customer),
			Company:  previewOf(batch.Company),
		}
	}

	s.logger.Info("submission processed", map[string]interface{}{
		"mode":              mode,
		"customerMessageId": receipt.CustomerMessageID,
		"companyMessageId":  receipt.CompanyMessageID,
		"timestamp":         now,
	})
	s.recordSubmission(ctx, "completed")

	return result, nil
}

// checkWireShape validates the payload against the request schema. Advisory
// only: label fields are opaque display strings, so mismatches are logged
// and never rejected.
func (s *Service) checkWireShape(req *Request) {
	doc := map[string]interface{}{
		"email": req.Email,
	}
	if req.Roast != "" {
		doc["roast"] = req.Roast
	}
	if req.Size != "" {
		doc["size"] = req.Size
	}
	if req.Frequency != "" {
		doc["frequency"] = req.Frequency
	}

	result, err := validation.ValidateDocument(doc, RequestSchema())
	if err != nil {
		s.logger.Warn("wire shape check unavailable", map[string]interface{}{"error": err.Error()})
		return
	}
	if !result.Valid {
		s.logger.Warn("wire shape mismatch", map[string]interface{}{"errors": result.Errors})
	}
}

func (s *Service) recordSubmission(ctx context.Context, status string) {
	if s.obs != nil {
		s.obs.RecordSubmission(ctx, status)
	}
}

func normalize(req *Request) {
	req.Email = strings.TrimSpace(req.Email)
	req.Roast = strings.TrimSpace(req.Roast)
	req.Size = strings.TrimSpace(req.Size)
	req.Frequency = strings.TrimSpace(req.Frequency)
}

func emailStatus(mode string) string {
	if mode == "demo" {
		return "sent_demo"
	}
	return "sent"
}

func previewOf(msg mail.Message) EmailPreview {
	return EmailPreview{
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	}
}
