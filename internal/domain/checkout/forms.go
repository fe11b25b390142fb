package checkout

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ShippingMethod is the delivery speed chosen on the address stage
type ShippingMethod string

const (
	ShippingStandard  ShippingMethod = "standard"
	ShippingExpress   ShippingMethod = "express"
	ShippingOvernight ShippingMethod = "overnight"
)

var shippingRates = map[ShippingMethod]int64{
	ShippingStandard:  10,
	ShippingExpress:   25,
	ShippingOvernight: 50,
}

// ShippingMethods lists the methods in display order
func ShippingMethods() []ShippingMethod {
	return []ShippingMethod{ShippingStandard, ShippingExpress, ShippingOvernight}
}

// IsValid checks if the method is offered
func (m ShippingMethod) IsValid() bool {
	_, ok := shippingRates[m]
	return ok
}

// Cost returns the flat rate for the method; unknown methods cost nothing
func (m ShippingMethod) Cost() valueobject.Money {
	return valueobject.USDAmount(decimal.NewFromInt(shippingRates[m]))
}

// ContactForm is the first stage
type ContactForm struct {
	FirstName string `json:"firstName" validate:"required,min=2"`
	LastName  string `json:"lastName" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=10"`
}

// AddressForm is the second stage
type AddressForm struct {
	Street         string         `json:"street" validate:"required,min=5"`
	City           string         `json:"city" validate:"required,min=2"`
	State          string         `json:"state" validate:"required,min=2"`
	ZipCode        string         `json:"zipCode" validate:"required,min=5"`
	Country        string         `json:"country" validate:"required,min=2"`
	ShippingMethod ShippingMethod `json:"shippingMethod" validate:"required,oneof=standard express overnight"`
}

// Address converts the form into the address value object
func (f AddressForm) Address() (valueobject.Address, error) {
	return valueobject.NewAddressFull(f.Street, f.City, f.State, f.ZipCode, f.Country)
}

// PaymentForm is the third stage
type PaymentForm struct {
	CardNumber string `json:"cardNumber" validate:"cardnumber"`
	CardHolder string `json:"cardHolder" validate:"required,min=2"`
	ExpiryDate string `json:"expiryDate" validate:"expiry"`
	CVV        string `json:"cvv" validate:"cvv"`
}

// PaymentFormFrom copies a saved card into a payment form verbatim
func PaymentFormFrom(m identity.PaymentMethod) PaymentForm {
	return PaymentForm{
		CardNumber: m.CardNumber,
		CardHolder: m.CardHolder,
		ExpiryDate: m.ExpiryDate,
		CVV:        m.CVV,
	}
}

// MaskedCard returns "****" followed by the last four digits
func (f PaymentForm) MaskedCard() string {
	n := f.CardNumber
	if len(n) > 4 {
		n = n[len(n)-4:]
	}
	return "****" + n
}

// Prefill holds the values the stage forms start with. Nothing here is validated.
type Prefill struct {
	Contact ContactForm `json:"contact"`
	Address AddressForm `json:"address"`
	Payment PaymentForm `json:"payment"`
}

// PrefillFromProfile seeds contact and address from the signed-in profile.
// The shipping method always starts at standard.
func PrefillFromProfile(u *identity.UserProfile) Prefill {
	p := Prefill{Address: AddressForm{ShippingMethod: ShippingStandard}}
	if u == nil {
		return p
	}
	p.Contact = ContactForm{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
	}
	if u.Address != nil {
		p.Address.Street = u.Address.Street()
		p.Address.City = u.Address.City()
		p.Address.State = u.Address.State()
		p.Address.ZipCode = u.Address.ZipCode()
		p.Address.Country = u.Address.Country()
	}
	return p
}
