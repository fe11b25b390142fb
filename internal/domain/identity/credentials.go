package identity

import "strings"

// SignInForm is validated and then discarded; no password is ever stored.
type SignInForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignUpForm is validated and then discarded apart from name and email
type SignUpForm struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// NewProfileFromSignIn builds the minimal profile a sign-in produces
func NewProfileFromSignIn(id string, f SignInForm) UserProfile {
	return UserProfile{
		ID:             id,
		Email:          f.Email,
		PaymentMethods: []PaymentMethod{},
	}
}

// NewProfileFromSignUp builds a profile, taking the first word of the name as
// the first name and the remaining words as the last name.
func NewProfileFromSignUp(id string, f SignUpForm) UserProfile {
	first, last := SplitName(f.Name)
	return UserProfile{
		ID:             id,
		Email:          f.Email,
		FirstName:      first,
		LastName:       last,
		PaymentMethods: []PaymentMethod{},
	}
}

// SplitName splits a display name on whitespace into first and rest
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
