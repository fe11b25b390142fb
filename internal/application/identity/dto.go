package identity

import (
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// AddressRequest is the profile address form
type AddressRequest struct {
	Street  string `json:"street" validate:"required,min=5"`
	City    string `json:"city" validate:"required,min=2"`
	State   string `json:"state" validate:"required,min=2"`
	ZipCode string `json:"zipCode" validate:"required,min=5"`
	Country string `json:"country" validate:"required,min=2"`
}

// ToAddress converts the form into the address value object
func (r AddressRequest) ToAddress() (valueobject.Address, error) {
	return valueobject.NewAddressFull(r.Street, r.City, r.State, r.ZipCode, r.Country)
}

// PaymentMethodResponse is a saved card with the number masked
type PaymentMethodResponse struct {
	CardNumber string `json:"cardNumber"`
	Masked     string `json:"masked"`
	CardHolder string `json:"cardHolder"`
	ExpiryDate string `json:"expiryDate"`
}

// ProfileResponse is the profile page projection
type ProfileResponse struct {
	ID             string                  `json:"id"`
	Email          string                  `json:"email"`
	FirstName      string                  `json:"firstName"`
	LastName       string                  `json:"lastName"`
	FullName       string                  `json:"fullName"`
	Phone          string                  `json:"phone"`
	Address        *valueobject.Address    `json:"address,omitempty"`
	PaymentMethods []PaymentMethodResponse `json:"paymentMethods"`
}

// SessionResponse reports who, if anyone, is signed in
type SessionResponse struct {
	IsAuthenticated bool             `json:"isAuthenticated"`
	User            *ProfileResponse `json:"user"`
}

// ToSessionResponse projects a session for display
func ToSessionResponse(s identity.Session) SessionResponse {
	u, ok := s.Profile()
	if !ok {
		return SessionResponse{}
	}
	methods := make([]PaymentMethodResponse, len(u.PaymentMethods))
	for i, m := range u.PaymentMethods {
		methods[i] = PaymentMethodResponse{
			CardNumber: m.CardNumber,
			Masked:     m.Masked(),
			CardHolder: m.CardHolder,
			ExpiryDate: m.ExpiryDate,
		}
	}
	return SessionResponse{
		IsAuthenticated: s.Authenticated,
		User: &ProfileResponse{
			ID:             u.ID,
			Email:          u.Email,
			FirstName:      u.FirstName,
			LastName:       u.LastName,
			FullName:       u.FullName(),
			Phone:          u.Phone,
			Address:        u.Address,
			PaymentMethods: methods,
		},
	}
}
