// Package errors provides standardized error handling for the subscription
// pipeline.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeEmailRequired ErrorCode = "EMAIL_REQUIRED"
	ErrCodeEmailInvalid  ErrorCode = "EMAIL_INVALID"

	ErrCodeRequestParseFailed ErrorCode = "REQUEST_PARSE_FAILED"

	ErrCodeProviderConfigMissing ErrorCode = "PROVIDER_CONFIG_MISSING"
	ErrCodeDispatchFailed        ErrorCode = "DISPATCH_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// User-safe messages. These are the only error strings that cross the
// client/server boundary; internal detail stays in logs.
const (
	MsgEmailRequired = "Email is required."
	MsgEmailInvalid  = "Please enter a valid email address."
	MsgServerError   = "Server error."
	MsgNetworkError  = "Network error. Please try again."
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewEmailRequiredError creates a non-retryable user input error.
func NewEmailRequiredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailRequired,
		Message:   MsgEmailRequired,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailInvalidError creates a non-retryable user input error.
func NewEmailInvalidError(candidate string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailInvalid,
		Message:   MsgEmailInvalid,
		Details:   fmt.Sprintf("candidate: %s", candidate),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestParseFailedError creates a non-retryable body parse error.
func NewRequestParseFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestParseFailed,
		Message:   "Request body is not parseable",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderConfigMissingError creates a configuration error. The missing
// credential is recorded in Details for operators, never sent to the client.
func NewProviderConfigMissingError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderConfigMissing,
		Message:   "Email provider configuration incomplete",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDispatchFailedError wraps a provider send failure.
func NewDispatchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDispatchFailed,
		Message:   "Email dispatch failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps any unexpected failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// Normalize ensures any error is a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return NewInternalError(err)
}

// IsUserInput reports whether the error is caused by user input and therefore
// safe to surface verbatim with a 400-class status.
func (e *StandardError) IsUserInput() bool {
	return e.Code == ErrCodeEmailRequired || e.Code == ErrCodeEmailInvalid
}

// HTTPStatus returns the HTTP status for the error.
func (e *StandardError) HTTPStatus() int {
	if e.IsUserInput() {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// UserMessage returns the message safe to show to the end user. Everything
// that is not a user input error collapses to the generic server error.
func (e *StandardError) UserMessage() string {
	if e.IsUserInput() {
		return e.Message
	}
	return MsgServerError
}
