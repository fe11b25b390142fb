// Package identity holds the signed-in shopper's profile and saved payment methods.
// It carries no credentials.
package identity

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// PaymentMethod is a saved card
type PaymentMethod struct {
	CardNumber string `json:"cardNumber" validate:"cardnumber"`
	CardHolder string `json:"cardHolder" validate:"required,min=2"`
	ExpiryDate string `json:"expiryDate" validate:"expiry"`
	CVV        string `json:"cvv" validate:"cvv"`
}

// Last4 returns the last four digits of the card number
func (p PaymentMethod) Last4() string {
	if len(p.CardNumber) <= 4 {
		return p.CardNumber
	}
	return p.CardNumber[len(p.CardNumber)-4:]
}

// Masked renders the card number for display
func (p PaymentMethod) Masked() string {
	return "**** **** **** " + p.Last4()
}

// UserProfile is the shopper's account data
type UserProfile struct {
	ID             string               `json:"id"`
	Email          string               `json:"email"`
	FirstName      string               `json:"firstName"`
	LastName       string               `json:"lastName"`
	Phone          string               `json:"phone"`
	Address        *valueobject.Address `json:"address,omitempty"`
	PaymentMethods []PaymentMethod      `json:"paymentMethods"`
}

// FullName joins first and last name
func (u UserProfile) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// clone returns a deep copy so a Session never shares slices with its successor
func (u UserProfile) clone() UserProfile {
	out := u
	out.PaymentMethods = make([]PaymentMethod, len(u.PaymentMethods))
	copy(out.PaymentMethods, u.PaymentMethods)
	if u.Address != nil {
		addr := *u.Address
		out.Address = &addr
	}
	return out
}

// ProfilePatch is a shallow merge onto a profile; nil fields are left alone
type ProfilePatch struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=2"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,min=2"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,min=10"`
}

func (p ProfilePatch) apply(u *UserProfile) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
}
