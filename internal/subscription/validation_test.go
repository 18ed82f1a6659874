package subscription

import (
	"testing"

	"coffee-subscribe/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{name: "simple address", email: "a@b.com", valid: true},
		{name: "empty", email: "", valid: false},
		{name: "no at sign", email: "no-at-sign", valid: false},
		{name: "space in local part", email: "has space@b.com", valid: false},
		{name: "tab in domain", email: "a@b\t.com", valid: false},
		{name: "two at signs", email: "a@b@c.com", valid: false},
		{name: "no dot after at", email: "a@bcom", valid: false},
		{name: "dot only before at", email: "a.b@com", valid: false},
		{name: "empty local part", email: "@b.com", valid: false},
		{name: "empty domain", email: "a@", valid: false},
		{name: "subdomain", email: "a@mail.b.co", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidEmail(tt.email))
		})
	}
}

func TestValidateEmail_Messages(t *testing.T) {
	err := ValidateEmail("")
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrCodeEmailRequired, err.Code)
	assert.Equal(t, "Email is required.", err.UserMessage())

	err = ValidateEmail("   ")
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrCodeEmailRequired, err.Code)

	err = ValidateEmail("not-an-email")
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrCodeEmailInvalid, err.Code)
	assert.Equal(t, "Please enter a valid email address.", err.UserMessage())

	assert.Nil(t, ValidateEmail("you@example.com"))
	// Surrounding whitespace is trimmed before the check.
	assert.Nil(t, ValidateEmail("  you@example.com  "))
}

func TestValidateRequest_OnlyEmailCanFail(t *testing.T) {
	req := &Request{
		Email: "you@example.com",
		// Label fields are opaque; even odd values never fail validation.
		Roast:     "",
		Size:      "anything at all",
		Frequency: "???",
	}
	assert.Nil(t, ValidateRequest(req))

	req.Email = "broken"
	assert.NotNil(t, ValidateRequest(req))
}
