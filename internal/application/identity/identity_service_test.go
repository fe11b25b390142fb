package identity

import (
	"context"
	"strings"
	"testing"

	"github.com/storefront/backend/internal/application/state/statetest"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*IdentityService, *statetest.Storage) {
	t.Helper()
	storage := statetest.NewStorage()
	svc := NewIdentityService(storage, nil)
	require.NoError(t, svc.Load(context.Background()))
	return svc, storage
}

func card(number string) identity.PaymentMethod {
	return identity.PaymentMethod{CardNumber: number, CardHolder: "Jane Doe", ExpiryDate: "12/27", CVV: "123"}
}

func strPtr(s string) *string { return &s }

func TestIdentityService_NoUserMutationsAreNoOps(t *testing.T) {
	ctx := context.Background()
	svc, storage := newTestService(t)

	resp, err := svc.UpdateProfile(ctx, identity.ProfilePatch{FirstName: strPtr("Jane")})
	require.NoError(t, err)
	assert.False(t, resp.IsAuthenticated)
	assert.Nil(t, resp.User)

	_, err = svc.AddPaymentMethod(ctx, card("4111111111111111"))
	require.NoError(t, err)
	_, err = svc.UpdateAddress(ctx, AddressRequest{Street: "1 Main Street", City: "Austin", State: "TX", ZipCode: "73301", Country: "US"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	assert.Zero(t, storage.Saves(shared.NamespaceUser))
}

func TestIdentityService_SignUpThenEdit(t *testing.T) {
	ctx := context.Background()
	svc, storage := newTestService(t)

	resp, err := svc.SignUp(ctx, identity.SignUpForm{
		Name:            "Jane Van Doe",
		Email:           "jane@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	require.True(t, resp.IsAuthenticated)
	assert.True(t, strings.HasPrefix(resp.User.ID, UserIDPrefix))
	assert.Equal(t, "Jane", resp.User.FirstName)
	assert.Equal(t, "Van Doe", resp.User.LastName)
	assert.NotContains(t, storage.Raw(shared.NamespaceUser), "secret1")

	resp, err = svc.UpdateProfile(ctx, identity.ProfilePatch{Phone: strPtr("5551234567")})
	require.NoError(t, err)
	assert.Equal(t, "5551234567", resp.User.Phone)
	assert.Equal(t, "Jane", resp.User.FirstName)

	resp, err = svc.UpdateAddress(ctx, AddressRequest{Street: "1 Main Street", City: "Austin", State: "TX", ZipCode: "73301", Country: "US"})
	require.NoError(t, err)
	require.NotNil(t, resp.User.Address)
	assert.Equal(t, "Austin", resp.User.Address.City())

	_, err = svc.AddPaymentMethod(ctx, card("4111111111111111"))
	require.NoError(t, err)
	_, err = svc.AddPaymentMethod(ctx, card("4111111111111111"))
	require.NoError(t, err)
	resp, err = svc.AddPaymentMethod(ctx, card("5500000000000004"))
	require.NoError(t, err)
	require.Len(t, resp.User.PaymentMethods, 3)
	assert.Equal(t, "**** **** **** 0004", resp.User.PaymentMethods[2].Masked)

	resp, err = svc.RemovePaymentMethod(ctx, "4111111111111111")
	require.NoError(t, err)
	require.Len(t, resp.User.PaymentMethods, 1)

	reloaded := NewIdentityService(storage, nil)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, *resp, reloaded.Get())

	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.Get().IsAuthenticated)
}

func TestIdentityService_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		svc, _ := newTestService(t)
		resp, err := svc.SignIn(ctx, identity.SignInForm{Email: "a@b.co", Password: "hunter22"})
		require.NoError(t, err)
		assert.Equal(t, "a@b.co", resp.User.Email)
		assert.Empty(t, resp.User.PaymentMethods)
	})

	t.Run("short password", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.SignIn(ctx, identity.SignInForm{Email: "a@b.co", Password: "123"})
		require.ErrorIs(t, err, shared.ErrValidation)
		assert.False(t, svc.Get().IsAuthenticated)
	})
}

func TestIdentityService_SignUpValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SignUp(context.Background(), identity.SignUpForm{
		Name:            "J",
		Email:           "not-an-email",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})
	ve, ok := shared.AsValidationError(err)
	require.True(t, ok)
	for _, field := range []string{"name", "email", "confirmPassword"} {
		_, has := ve.Field(field)
		assert.True(t, has, field)
	}
}

func TestIdentityService_InvalidCard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	_, err := svc.SignIn(ctx, identity.SignInForm{Email: "a@b.co", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.AddPaymentMethod(ctx, identity.PaymentMethod{CardNumber: "1234", CardHolder: "J", ExpiryDate: "13/27", CVV: "1"})
	ve, ok := shared.AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Fields, 4)
}
