package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/application/confirmation"
	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/application/state/statetest"
	"github.com/storefront/backend/internal/domain/catalog/catalogtest"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type fixture struct {
	svc      *CheckoutService
	cart     *cartapp.CartService
	identity *identityapp.IdentityService
	inbox    *confirmation.Inbox
	storage  *statetest.Storage
	reader   *catalogtest.Catalog
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	ctx := context.Background()
	storage := statetest.NewStorage()
	reader := catalogtest.New(
		catalogtest.Product("p1", "Phone", "50.00", 5),
		catalogtest.Product("p2", "Cable", "9.99", 10),
	)

	cartSvc := cartapp.NewCartService(storage, reader, nil)
	require.NoError(t, cartSvc.Load(ctx))
	identitySvc := identityapp.NewIdentityService(storage, nil)
	require.NoError(t, identitySvc.Load(ctx))

	bus := event.NewInMemoryEventBus(nil)
	inbox := confirmation.NewInbox(nil)
	bus.Subscribe(inbox)

	opts = append([]Option{
		WithClock(func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }),
		WithOrderIDGenerator(func() string { return "ORD-TEST" }),
	}, opts...)
	svc := NewCheckoutService(cartSvc, identitySvc, reader, bus, opts...)

	return &fixture{svc: svc, cart: cartSvc, identity: identitySvc, inbox: inbox, storage: storage, reader: reader}
}

var (
	validContact = checkout.ContactForm{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "5551234567"}
	validAddress = checkout.AddressForm{Street: "1 Main Street", City: "Austin", State: "TX", ZipCode: "73301", Country: "US", ShippingMethod: checkout.ShippingExpress}
	validPayment = checkout.PaymentForm{CardNumber: "4242424242424242", CardHolder: "Jane Doe", ExpiryDate: "12/27", CVV: "123"}
)

func (f *fixture) advanceToPayment(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.SubmitContact(ctx, validContact)
	require.NoError(t, err)
	_, err = f.svc.SubmitAddress(ctx, validAddress)
	require.NoError(t, err)
}

func TestCheckoutService_CartCheckout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.cart.AddItem(ctx, cartapp.AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	session, err := f.svc.Begin(ctx, BeginRequest{})
	require.NoError(t, err)
	assert.Equal(t, checkout.SourceCart, session.Source)
	assert.Equal(t, checkout.StageContact, session.Stage)
	assert.Equal(t, "110.00", session.Summary.Total.StringFixed(2))

	f.advanceToPayment(t)

	resp, err := f.svc.Place(ctx, validPayment)
	require.NoError(t, err)
	order := resp.Order
	assert.Equal(t, "ORD-TEST", order.OrderID)
	assert.Equal(t, "100.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "25.00", order.ShippingCost.StringFixed(2))
	assert.Equal(t, "125.00", order.Total.StringFixed(2))
	assert.Equal(t, "****4242", order.PaymentLast4)
	assert.Equal(t, checkout.ShippingExpress, order.ShippingMethod)

	assert.True(t, f.cart.Current().IsEmpty())
	assert.JSONEq(t, `[]`, f.storage.Raw(shared.NamespaceCart))

	view := f.inbox.View()
	assert.True(t, view.Valid)
	assert.Equal(t, "ORD-TEST", view.OrderID)
	assert.Equal(t, "125.00", view.Total)

	_, err = f.svc.Place(ctx, validPayment)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestCheckoutService_BuyNowLeavesCartAlone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.cart.AddItem(ctx, cartapp.AddItemRequest{ProductID: "p2", Quantity: 1})
	require.NoError(t, err)
	saves := f.storage.Saves(shared.NamespaceCart)

	session, err := f.svc.Begin(ctx, BeginRequest{BuyNow: &BuyNowRequest{ProductID: "p1", Quantity: 3}})
	require.NoError(t, err)
	assert.Equal(t, checkout.SourceBuyNow, session.Source)
	require.Len(t, session.Items, 1)
	assert.Equal(t, "p1", session.Items[0].ProductID)

	f.advanceToPayment(t)
	resp, err := f.svc.Place(ctx, validPayment)
	require.NoError(t, err)

	assert.Equal(t, "175.00", resp.Order.Total.StringFixed(2))
	assert.Equal(t, 1, f.cart.Current().Len())
	assert.Equal(t, saves, f.storage.Saves(shared.NamespaceCart))
}

func TestCheckoutService_BuyNowRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Begin(ctx, BeginRequest{BuyNow: &BuyNowRequest{ProductID: "p1", Quantity: 6}})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	_, err = f.svc.Begin(ctx, BeginRequest{BuyNow: &BuyNowRequest{ProductID: "p1", Quantity: 0}})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = f.svc.Begin(ctx, BeginRequest{BuyNow: &BuyNowRequest{ProductID: "nope", Quantity: 1}})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.svc.Session()
	assert.ErrorIs(t, err, shared.ErrNoActiveCheckout)
}

func TestCheckoutService_StageGuards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.SubmitContact(ctx, validContact)
	require.ErrorIs(t, err, shared.ErrNoActiveCheckout)

	_, err = f.svc.Begin(ctx, BeginRequest{})
	require.NoError(t, err)

	_, err = f.svc.SubmitAddress(ctx, validAddress)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	_, err = f.svc.SubmitContact(ctx, checkout.ContactForm{FirstName: "J", Email: "x"})
	require.ErrorIs(t, err, shared.ErrValidation)
	session, err := f.svc.Session()
	require.NoError(t, err)
	assert.Equal(t, checkout.StageContact, session.Stage)

	_, err = f.svc.Revisit(ctx, RevisitRequest{Stage: checkout.StagePayment})
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	f.advanceToPayment(t)
	session, err = f.svc.Revisit(ctx, RevisitRequest{Stage: checkout.StageContact})
	require.NoError(t, err)
	assert.Equal(t, checkout.StageContact, session.Stage)
	assert.True(t, session.Stages[1].Completed)

	_, err = f.svc.Place(ctx, validPayment)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestCheckoutService_EmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Begin(ctx, BeginRequest{})
	require.NoError(t, err)
	f.advanceToPayment(t)

	_, err = f.svc.Place(ctx, validPayment)
	assert.ErrorIs(t, err, shared.ErrEmptyCheckout)

	session, err := f.svc.Session()
	require.NoError(t, err)
	assert.Equal(t, checkout.StagePayment, session.Stage)
}

func TestCheckoutService_InvalidPayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.cart.AddItem(ctx, cartapp.AddItemRequest{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	_, err = f.svc.Begin(ctx, BeginRequest{})
	require.NoError(t, err)
	f.advanceToPayment(t)

	_, err = f.svc.Place(ctx, checkout.PaymentForm{CardNumber: "4242", CardHolder: "Jane", ExpiryDate: "00/27", CVV: "12"})
	ve, ok := shared.AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Fields, 3)
	assert.Equal(t, 1, f.cart.Current().Len())
}

func TestCheckoutService_FailedCartClearKeepsCheckoutOpen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.cart.AddItem(ctx, cartapp.AddItemRequest{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	_, err = f.svc.Begin(ctx, BeginRequest{})
	require.NoError(t, err)
	f.advanceToPayment(t)

	f.storage.FailSaves(errors.New("quota exceeded"))
	_, err = f.svc.Place(ctx, validPayment)
	require.Error(t, err)

	session, err := f.svc.Session()
	require.NoError(t, err)
	assert.Equal(t, checkout.StagePayment, session.Stage)
	assert.False(t, f.inbox.View().Valid)

	f.storage.FailSaves(nil)
	_, err = f.svc.Place(ctx, validPayment)
	require.NoError(t, err)
}

func TestCheckoutService_StockRevalidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WithStockRevalidation(true))
	_, err := f.cart.AddItem(ctx, cartapp.AddItemRequest{ProductID: "p1", Quantity: 5})
	require.NoError(t, err)
	_, err = f.svc.Begin(ctx, BeginRequest{})
	require.NoError(t, err)
	f.advanceToPayment(t)

	// the catalog now reports less stock than the cart holds
	*f.reader = *catalogtest.New(catalogtest.Product("p1", "Phone", "50.00", 2))

	_, err = f.svc.Place(ctx, validPayment)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, 5, f.cart.Current().ItemCount())
}

func TestCheckoutService_PrefillAndAutofill(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.identity.SignUp(ctx, identity.SignUpForm{Name: "Jane Doe", Email: "jane@example.com", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)
	_, err = f.identity.UpdateAddress(ctx, identityapp.AddressRequest{Street: "1 Main Street", City: "Austin", State: "TX", ZipCode: "73301", Country: "US"})
	require.NoError(t, err)
	saved := identity.PaymentMethod{CardNumber: "4242424242424242", CardHolder: "Jane Doe", ExpiryDate: "12/27", CVV: "999"}
	_, err = f.identity.AddPaymentMethod(ctx, saved)
	require.NoError(t, err)

	session, err := f.svc.Begin(ctx, BeginRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Jane", session.Prefill.Contact.FirstName)
	assert.Equal(t, "Austin", session.Prefill.Address.City)
	assert.Equal(t, checkout.ShippingStandard, session.Prefill.Address.ShippingMethod)

	session, err = f.svc.Autofill(ctx, AutofillRequest{CardNumber: saved.CardNumber})
	require.NoError(t, err)
	assert.Equal(t, checkout.PaymentFormFrom(saved), session.Prefill.Payment)

	_, err = f.svc.Autofill(ctx, AutofillRequest{CardNumber: "0000"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	session, err = f.svc.PreviewShipping(ctx, ShippingPreviewRequest{ShippingMethod: checkout.ShippingOvernight})
	require.NoError(t, err)
	assert.Equal(t, "50.00", session.Summary.Shipping.StringFixed(2))

	_, err = f.svc.PreviewShipping(ctx, ShippingPreviewRequest{ShippingMethod: "drone"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestCheckoutService_BeginDiscardsPreviousDraft(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.svc.Begin(ctx, BeginRequest{})
	require.NoError(t, err)
	_, err = f.svc.SubmitContact(ctx, validContact)
	require.NoError(t, err)

	second, err := f.svc.Begin(ctx, BeginRequest{})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, checkout.StageContact, second.Stage)
	assert.Nil(t, second.Draft.Contact)

	f.svc.Cancel()
	_, err = f.svc.Session()
	assert.ErrorIs(t, err, shared.ErrNoActiveCheckout)
}

func TestCheckoutService_PlaceIsTraced(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx := context.Background()
	f := newFixture(t)
	_, err := f.cart.AddItem(ctx, cartapp.AddItemRequest{ProductID: "p2", Quantity: 1})
	require.NoError(t, err)
	_, err = f.svc.Begin(ctx, BeginRequest{})
	require.NoError(t, err)
	f.advanceToPayment(t)
	_, err = f.svc.Place(ctx, validPayment)
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "checkout.place", spans[0].Name)
}
