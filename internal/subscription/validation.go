package subscription

import (
	"strings"

	"coffee-subscribe/internal/common/errors"
	"coffee-subscribe/internal/common/validation"
)

// IsValidEmail applies the permissive structural check used on both sides of
// the pipeline: exactly one "@", at least one "." after it, no whitespace
// anywhere. Deliberately not a full RFC 5322 validator.
func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}
	if strings.ContainsAny(email, " \t\r\n") {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if parts[0] == "" || parts[1] == "" {
		return false
	}
	return strings.Contains(parts[1], ".")
}

// ValidateEmail is the authoritative gate shared by the submission client and
// the endpoint. Client-accepted input is never server-rejected and vice
// versa because both call this exact function.
func ValidateEmail(email string) *errors.StandardError {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return errors.NewEmailRequiredError()
	}
	if !IsValidEmail(trimmed) {
		return errors.NewEmailInvalidError(trimmed)
	}
	return nil
}

// ValidateRequest checks a submission. Only the email can fail; the other
// fields come from closed enumerations on the client and are advisory
// display strings on the server.
func ValidateRequest(req *Request) *errors.StandardError {
	return ValidateEmail(req.Email)
}

// RequestSchema describes the expected wire shape of the subscribe payload.
// The check is advisory: labels are display strings, so a mismatch is logged
// for operator visibility but never rejects the request.
func RequestSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"email"},
		Properties: map[string]validation.Property{
			"email": {
				Type:        "string",
				Description: "Subscriber email address",
				MinLength:   validation.IntPtr(3),
				MaxLength:   validation.IntPtr(255),
			},
			"roast": {
				Type:        "string",
				Description: "Roast display label",
				MaxLength:   validation.IntPtr(100),
			},
			"size": {
				Type:        "string",
				Description: "Bag size display label",
				MaxLength:   validation.IntPtr(50),
			},
			"frequency": {
				Type:        "string",
				Description: "Delivery frequency display label",
				MaxLength:   validation.IntPtr(50),
			},
			// No type constraint: clients send the quoted price as either
			// a number or a decimal string.
			"price": {
				Description: "Quoted price, number or decimal string",
			},
		},
		AdditionalProperties: false,
	}
}
