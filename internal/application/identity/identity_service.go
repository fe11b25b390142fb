package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/state"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserIDPrefix is prepended to generated user ids
const UserIDPrefix = "user-"

// IdentityService manages the signed-in shopper. Mutations other than
// SetUser, SignIn and SignUp leave the session untouched when nobody is
// signed in.
type IdentityService struct {
	store  *state.Container[identity.Session]
	newID  func() string
	logger *zap.Logger
}

// NewIdentityService creates a new IdentityService persisting to storage
func NewIdentityService(storage shared.StateStorage, logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{
		store:  state.New(storage, shared.NamespaceUser, identity.Session{}, state.WithLogger(logger)),
		newID:  func() string { return UserIDPrefix + uuid.NewString() },
		logger: logger.Named("identity"),
	}
}

// Load rehydrates the session from storage
func (s *IdentityService) Load(ctx context.Context) error {
	return s.store.Load(ctx)
}

// Current returns the session value
func (s *IdentityService) Current() identity.Session {
	return s.store.Get()
}

// Get returns the session projection
func (s *IdentityService) Get() SessionResponse {
	return ToSessionResponse(s.store.Get())
}

// SetUser replaces the current profile and marks the session authenticated
func (s *IdentityService) SetUser(ctx context.Context, profile identity.UserProfile) (*SessionResponse, error) {
	session, err := s.store.Update(ctx, func(cur identity.Session) (identity.Session, bool, error) {
		return cur.SetUser(profile), true, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user signed in", zap.String("user_id", profile.ID))
	resp := ToSessionResponse(session)
	return &resp, nil
}

// SignIn validates the form and signs in a fresh profile for the email.
// The password is not kept.
func (s *IdentityService) SignIn(ctx context.Context, form identity.SignInForm) (*SessionResponse, error) {
	if err := shared.ValidateStruct(form); err != nil {
		return nil, err
	}
	return s.SetUser(ctx, identity.NewProfileFromSignIn(s.newID(), form))
}

// SignUp validates the form and signs in a profile named after it
func (s *IdentityService) SignUp(ctx context.Context, form identity.SignUpForm) (*SessionResponse, error) {
	if err := shared.ValidateStruct(form); err != nil {
		return nil, err
	}
	return s.SetUser(ctx, identity.NewProfileFromSignUp(s.newID(), form))
}

// UpdateProfile shallow-merges the patch into the current profile
func (s *IdentityService) UpdateProfile(ctx context.Context, patch identity.ProfilePatch) (*SessionResponse, error) {
	if err := shared.ValidateStruct(patch); err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(cur identity.Session) (identity.Session, bool) {
		return cur.UpdateProfile(patch)
	})
}

// UpdateAddress replaces the profile address
func (s *IdentityService) UpdateAddress(ctx context.Context, req AddressRequest) (*SessionResponse, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return nil, err
	}
	addr, err := req.ToAddress()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	return s.mutate(ctx, func(cur identity.Session) (identity.Session, bool) {
		return cur.UpdateAddress(addr)
	})
}

// AddPaymentMethod saves a card after validating it
func (s *IdentityService) AddPaymentMethod(ctx context.Context, m identity.PaymentMethod) (*SessionResponse, error) {
	if err := shared.ValidateStruct(m); err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(cur identity.Session) (identity.Session, bool) {
		return cur.AddPaymentMethod(m)
	})
}

// RemovePaymentMethod deletes every saved card with the number
func (s *IdentityService) RemovePaymentMethod(ctx context.Context, cardNumber string) (*SessionResponse, error) {
	return s.mutate(ctx, func(cur identity.Session) (identity.Session, bool) {
		return cur.RemovePaymentMethod(cardNumber)
	})
}

// Logout clears the session
func (s *IdentityService) Logout(ctx context.Context) error {
	_, err := s.store.Update(ctx, func(cur identity.Session) (identity.Session, bool, error) {
		return cur.Logout(), cur.User != nil || cur.Authenticated, nil
	})
	return err
}

func (s *IdentityService) mutate(ctx context.Context, fn func(identity.Session) (identity.Session, bool)) (*SessionResponse, error) {
	session, err := s.store.Update(ctx, func(cur identity.Session) (identity.Session, bool, error) {
		next, changed := fn(cur)
		return next, changed, nil
	})
	if err != nil {
		return nil, err
	}
	resp := ToSessionResponse(session)
	return &resp, nil
}
