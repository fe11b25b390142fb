package identity

import "github.com/storefront/backend/internal/domain/shared/valueobject"

// Session is the persisted user-store state. Every mutation except SetUser
// is a no-op while no user is signed in. Methods never mutate the receiver.
type Session struct {
	User          *UserProfile `json:"user"`
	Authenticated bool         `json:"isAuthenticated"`
}

// SetUser signs the profile in
func (s Session) SetUser(u UserProfile) Session {
	cp := u.clone()
	if cp.PaymentMethods == nil {
		cp.PaymentMethods = []PaymentMethod{}
	}
	return Session{User: &cp, Authenticated: true}
}

// UpdateProfile shallow-merges patch onto the current profile
func (s Session) UpdateProfile(patch ProfilePatch) (Session, bool) {
	return s.modify(func(u *UserProfile) {
		patch.apply(u)
	})
}

// UpdateAddress replaces the profile address wholesale
func (s Session) UpdateAddress(addr valueobject.Address) (Session, bool) {
	return s.modify(func(u *UserProfile) {
		u.Address = &addr
	})
}

// AddPaymentMethod appends m. Duplicate card numbers are allowed.
func (s Session) AddPaymentMethod(m PaymentMethod) (Session, bool) {
	return s.modify(func(u *UserProfile) {
		u.PaymentMethods = append(u.PaymentMethods, m)
	})
}

// RemovePaymentMethod drops every saved card with the given number
func (s Session) RemovePaymentMethod(cardNumber string) (Session, bool) {
	return s.modify(func(u *UserProfile) {
		kept := u.PaymentMethods[:0]
		for _, m := range u.PaymentMethods {
			if m.CardNumber != cardNumber {
				kept = append(kept, m)
			}
		}
		u.PaymentMethods = kept
	})
}

// PaymentMethod finds a saved card by number
func (s Session) PaymentMethod(cardNumber string) (PaymentMethod, bool) {
	if s.User == nil {
		return PaymentMethod{}, false
	}
	for _, m := range s.User.PaymentMethods {
		if m.CardNumber == cardNumber {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

// Logout clears the session
func (s Session) Logout() Session {
	return Session{}
}

// Profile returns a copy of the signed-in profile
func (s Session) Profile() (UserProfile, bool) {
	if s.User == nil {
		return UserProfile{}, false
	}
	return s.User.clone(), true
}

func (s Session) modify(fn func(u *UserProfile)) (Session, bool) {
	if s.User == nil {
		return s, false
	}
	cp := s.User.clone()
	fn(&cp)
	return Session{User: &cp, Authenticated: s.Authenticated}, true
}
