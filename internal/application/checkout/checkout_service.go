package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CartStore is the part of the cart the checkout reads and clears
type CartStore interface {
	Current() cart.Cart
	Clear(ctx context.Context) error
}

// SessionSource exposes the signed-in profile
type SessionSource interface {
	Current() identity.Session
}

// CheckoutService drives one checkout at a time. Opening a checkout discards
// the previous one. The draft lives in memory only.
type CheckoutService struct {
	mu       sync.Mutex
	pipeline *checkout.Pipeline

	cart      CartStore
	session   SessionSource
	catalog   catalog.Reader
	publisher shared.EventPublisher
	logger    *zap.Logger

	revalidateStock bool
	now             func() time.Time
	newOrderID      func() string
}

// Option configures a CheckoutService
type Option func(*CheckoutService)

// WithStockRevalidation rejects placement when an item exceeds current stock
func WithStockRevalidation(enabled bool) Option {
	return func(s *CheckoutService) {
		s.revalidateStock = enabled
	}
}

// WithClock overrides the order timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *CheckoutService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithOrderIDGenerator overrides order id generation
func WithOrderIDGenerator(gen func() string) Option {
	return func(s *CheckoutService) {
		if gen != nil {
			s.newOrderID = gen
		}
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(s *CheckoutService) {
		if l != nil {
			s.logger = l.Named("checkout")
		}
	}
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(cartStore CartStore, session SessionSource, reader catalog.Reader, publisher shared.EventPublisher, opts ...Option) *CheckoutService {
	s := &CheckoutService{
		cart:       cartStore,
		session:    session,
		catalog:    reader,
		publisher:  publisher,
		logger:     zap.NewNop(),
		now:        time.Now,
		newOrderID: checkout.NewOrderID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin opens a checkout for the cart or for a single buy-now product
func (s *CheckoutService) Begin(ctx context.Context, req BeginRequest) (*SessionResponse, error) {
	var line *cart.Line
	if req.BuyNow != nil {
		l, err := s.buyNowLine(*req.BuyNow)
		if err != nil {
			return nil, err
		}
		line = &l
	}

	var profile *identity.UserProfile
	if u, ok := s.session.Current().Profile(); ok {
		profile = &u
	}
	p := checkout.NewPipeline(uuid.NewString(), line, checkout.PrefillFromProfile(profile))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pipeline != nil && !s.pipeline.Stage().IsTerminal() {
		s.logger.Debug("discarding open checkout", zap.String("checkout_id", s.pipeline.ID()))
	}
	s.pipeline = p

	s.logger.Info("checkout opened",
		zap.String("checkout_id", p.ID()),
		zap.String("source", string(p.Source())))
	return toSessionResponse(p, s.items(p)), nil
}

// Session returns the open checkout
func (s *CheckoutService) Session() (*SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pipeline == nil {
		return nil, shared.ErrNoActiveCheckout
	}
	return toSessionResponse(s.pipeline, s.items(s.pipeline)), nil
}

// Cancel discards the open checkout
func (s *CheckoutService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pipeline = nil
}

// SubmitContact validates the contact stage and advances
func (s *CheckoutService) SubmitContact(ctx context.Context, form checkout.ContactForm) (*SessionResponse, error) {
	return s.step(func(p *checkout.Pipeline) error { return p.SubmitContact(form) })
}

// SubmitAddress validates the address stage and advances
func (s *CheckoutService) SubmitAddress(ctx context.Context, form checkout.AddressForm) (*SessionResponse, error) {
	return s.step(func(p *checkout.Pipeline) error { return p.SubmitAddress(form) })
}

// Revisit reopens an earlier stage
func (s *CheckoutService) Revisit(ctx context.Context, req RevisitRequest) (*SessionResponse, error) {
	return s.step(func(p *checkout.Pipeline) error { return p.Revisit(req.Stage) })
}

// PreviewShipping reprices the summary with another shipping method
func (s *CheckoutService) PreviewShipping(ctx context.Context, req ShippingPreviewRequest) (*SessionResponse, error) {
	return s.step(func(p *checkout.Pipeline) error { return p.PreviewShipping(req.ShippingMethod) })
}

// Autofill copies a saved card from the profile into the payment pre-fill
func (s *CheckoutService) Autofill(ctx context.Context, req AutofillRequest) (*SessionResponse, error) {
	method, ok := s.session.Current().PaymentMethod(req.CardNumber)
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Saved payment method not found")
	}
	return s.step(func(p *checkout.Pipeline) error { return p.Autofill(method) })
}

// Place submits the payment stage and places the order. The cart is cleared
// only for cart checkouts, and only then is the checkout closed. The order is
// published for the confirmation view.
func (s *CheckoutService) Place(ctx context.Context, form checkout.PaymentForm) (*PlaceOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "place")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pipeline == nil {
		return nil, shared.ErrNoActiveCheckout
	}
	telemetry.SetAttributes(span, telemetry.AttrStage, s.pipeline.Stage().String())

	items := s.items(s.pipeline)
	if s.revalidateStock && s.pipeline.Stage() == checkout.StagePayment {
		if err := s.checkStock(items); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	next := *s.pipeline
	order, err := next.SubmitPayment(form, items, s.now(), s.newOrderID())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if order.Source == checkout.SourceCart {
		if err := s.cart.Clear(ctx); err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("clear cart after placing order: %w", err)
		}
	}
	*s.pipeline = next

	telemetry.SetAttributes(span,
		telemetry.AttrOrderID, order.OrderID,
		telemetry.AttrOrderTotal, order.Total.StringFixed(2),
		telemetry.AttrItemCount, order.ItemCount())
	s.logger.Info("order placed",
		zap.String("order_id", order.OrderID),
		zap.String("source", string(order.Source)),
		zap.String("total", order.Total.StringFixed(2)),
		zap.Int("item_count", order.ItemCount()))

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, checkout.NewOrderPlacedEvent(order)); err != nil {
			s.logger.Error("failed to publish order placed event",
				zap.String("order_id", order.OrderID),
				zap.Error(err))
		}
	}
	return &PlaceOrderResponse{Order: order.Copy()}, nil
}

func (s *CheckoutService) step(fn func(p *checkout.Pipeline) error) (*SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pipeline == nil {
		return nil, shared.ErrNoActiveCheckout
	}
	if err := fn(s.pipeline); err != nil {
		return nil, err
	}
	return toSessionResponse(s.pipeline, s.items(s.pipeline)), nil
}

// items returns the buy-now line or the current cart lines
func (s *CheckoutService) items(p *checkout.Pipeline) []cart.Line {
	if line, ok := p.BuyNowLine(); ok {
		return []cart.Line{line}
	}
	return s.cart.Current().Lines()
}

func (s *CheckoutService) buyNowLine(req BuyNowRequest) (cart.Line, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return cart.Line{}, err
	}
	product, ok := s.catalog.GetProduct(req.ProductID)
	if !ok {
		return cart.Line{}, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	if req.Quantity > product.Stock {
		return cart.Line{}, shared.NewDomainError(shared.ErrInsufficientStock.Code,
			fmt.Sprintf("only %d of %s in stock", product.Stock, product.Name))
	}
	return cart.Line{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  req.Quantity,
		Image:     product.PrimaryImage(),
	}, nil
}

func (s *CheckoutService) checkStock(items []cart.Line) error {
	for _, l := range items {
		product, ok := s.catalog.GetProduct(l.ProductID)
		if !ok || l.Quantity > product.Stock {
			return shared.NewDomainError(shared.ErrInsufficientStock.Code,
				fmt.Sprintf("%s is no longer available in the requested quantity", l.Name))
		}
	}
	return nil
}
