package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object representing a postal address.
// It is immutable - all operations return new Address instances
type Address struct {
	street  string
	city    string
	state   string
	zipCode string
	country string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithState sets the state or region
func WithState(state string) AddressOption {
	return func(a *Address) {
		a.state = strings.TrimSpace(state)
	}
}

// WithZipCode sets the postal code
func WithZipCode(zipCode string) AddressOption {
	return func(a *Address) {
		a.zipCode = strings.TrimSpace(zipCode)
	}
}

// WithCountry sets the country
func WithCountry(country string) AddressOption {
	return func(a *Address) {
		a.country = strings.TrimSpace(country)
	}
}

// NewAddress creates a new Address. Street and city are required.
func NewAddress(street, city string, opts ...AddressOption) (Address, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)

	if street == "" {
		return Address{}, fmt.Errorf("street cannot be empty")
	}
	if city == "" {
		return Address{}, fmt.Errorf("city cannot be empty")
	}

	addr := Address{street: street, city: city}
	for _, opt := range opts {
		opt(&addr)
	}

	for name, v := range map[string]string{
		"street":   addr.street,
		"city":     addr.city,
		"state":    addr.state,
		"zip code": addr.zipCode,
		"country":  addr.country,
	} {
		if len(v) > 200 {
			return Address{}, fmt.Errorf("%s cannot exceed 200 characters", name)
		}
	}
	return addr, nil
}

// NewAddressFull creates a new Address with every field set
func NewAddressFull(street, city, state, zipCode, country string) (Address, error) {
	return NewAddress(street, city, WithState(state), WithZipCode(zipCode), WithCountry(country))
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(street, city string, opts ...AddressOption) Address {
	addr, err := NewAddress(street, city, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

// Street returns the street line
func (a Address) Street() string { return a.street }

// City returns the city
func (a Address) City() string { return a.city }

// State returns the state or region
func (a Address) State() string { return a.state }

// ZipCode returns the postal code
func (a Address) ZipCode() string { return a.zipCode }

// Country returns the country
func (a Address) Country() string { return a.country }

// IsEmpty returns true if the address is empty (all fields are blank)
func (a Address) IsEmpty() bool {
	return a.street == "" && a.city == "" && a.state == "" && a.zipCode == "" && a.country == ""
}

// Lines renders the address the way a shipping label prints it:
// street, then "city, state zip", then country.
func (a Address) Lines() []string {
	if a.IsEmpty() {
		return nil
	}
	lines := make([]string, 0, 3)
	if a.street != "" {
		lines = append(lines, a.street)
	}
	locality := a.city
	if a.state != "" {
		if locality != "" {
			locality += ", "
		}
		locality += a.state
	}
	if a.zipCode != "" {
		locality = strings.TrimSpace(locality + " " + a.zipCode)
	}
	if locality != "" {
		lines = append(lines, locality)
	}
	if a.country != "" {
		lines = append(lines, a.country)
	}
	return lines
}

// String returns a single-line representation of the address
func (a Address) String() string {
	return strings.Join(a.Lines(), ", ")
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a == other
}

type addressJSON struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Street:  a.street,
		City:    a.city,
		State:   a.state,
		ZipCode: a.zipCode,
		Country: a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler. It restores persisted values
// without re-running NewAddress validation.
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Address{
		street:  v.Street,
		city:    v.City,
		state:   v.State,
		zipCode: v.ZipCode,
		country: v.Country,
	}
	return nil
}
