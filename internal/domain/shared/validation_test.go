package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	CardNumber string `json:"cardNumber" validate:"cardnumber"`
	ExpiryDate string `json:"expiryDate" validate:"expiry"`
	CVV        string `json:"cvv" validate:"cvv"`
	Holder     string `json:"cardHolder" validate:"required,min=2"`
}

func TestValidateStruct_CustomTags(t *testing.T) {
	valid := paymentFixture{
		CardNumber: "4242424242424242",
		ExpiryDate: "12/29",
		CVV:        "123",
		Holder:     "Jane Doe",
	}
	require.NoError(t, ValidateStruct(valid))

	tests := []struct {
		name    string
		mutate  func(p *paymentFixture)
		field   string
		message string
	}{
		{"short card", func(p *paymentFixture) { p.CardNumber = "4242" }, "cardNumber", "Invalid card number"},
		{"card with spaces", func(p *paymentFixture) { p.CardNumber = "4242 4242 4242 4242" }, "cardNumber", "Invalid card number"},
		{"month 13", func(p *paymentFixture) { p.ExpiryDate = "13/25" }, "expiryDate", "Invalid expiry date"},
		{"month 00", func(p *paymentFixture) { p.ExpiryDate = "00/25" }, "expiryDate", "Invalid expiry date"},
		{"four digit year", func(p *paymentFixture) { p.ExpiryDate = "01/2025" }, "expiryDate", "Invalid expiry date"},
		{"cvv too short", func(p *paymentFixture) { p.CVV = "12" }, "cvv", "Invalid CVV"},
		{"cvv too long", func(p *paymentFixture) { p.CVV = "12345" }, "cvv", "Invalid CVV"},
		{"holder too short", func(p *paymentFixture) { p.Holder = "J" }, "cardHolder", "Must be at least 2 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			err := ValidateStruct(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			ve, ok := AsValidationError(err)
			require.True(t, ok)
			fe, found := ve.Field(tt.field)
			require.True(t, found, "expected error on %s, got %v", tt.field, ve.Fields)
			assert.Equal(t, tt.message, fe.Message)
		})
	}
}

func TestValidateStruct_FourDigitCVVAccepted(t *testing.T) {
	p := paymentFixture{CardNumber: "4242424242424242", ExpiryDate: "01/30", CVV: "1234", Holder: "Al"}
	assert.NoError(t, ValidateStruct(p))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", CodeOf(ErrNotFound))
	assert.Equal(t, "NOT_FOUND", CodeOf(fmt.Errorf("load product: %w", ErrNotFound)))
	assert.Equal(t, "VALIDATION_ERROR", CodeOf(NewFieldValidationError("rating", "range", "bad")))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}

func TestDomainError_IsMatchesByCode(t *testing.T) {
	copyOfNotFound := NewDomainError("NOT_FOUND", "product p-9 not found")
	assert.True(t, errors.Is(copyOfNotFound, ErrNotFound))
	assert.False(t, errors.Is(copyOfNotFound, ErrInvalidState))
}

func TestNamespace_IsValid(t *testing.T) {
	for _, ns := range AllNamespaces() {
		assert.True(t, ns.IsValid(), ns.String())
	}
	assert.False(t, Namespace("orders").IsValid())
}
