package cart

import (
	"context"

	"github.com/storefront/backend/internal/application/state"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CartService handles cart operations. Stock limits come from the catalog;
// price, name and image are snapshotted when a product is first added.
type CartService struct {
	store   *state.Container[cart.Cart]
	catalog catalog.Reader
	logger  *zap.Logger
}

// NewCartService creates a new CartService persisting to storage
func NewCartService(storage shared.StateStorage, reader catalog.Reader, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		store:   state.New(storage, shared.NamespaceCart, cart.New(), state.WithLogger(logger)),
		catalog: reader,
		logger:  logger.Named("cart"),
	}
}

// Load rehydrates the cart from storage
func (s *CartService) Load(ctx context.Context) error {
	return s.store.Load(ctx)
}

// Current returns the cart value
func (s *CartService) Current() cart.Cart {
	return s.store.Get()
}

// Get returns the cart page projection
func (s *CartService) Get() CartResponse {
	return ToCartResponse(s.store.Get())
}

// AddItem adds quantity units of a product, capped at its stock
func (s *CartService) AddItem(ctx context.Context, req AddItemRequest) (*MutationResponse, error) {
	product, ok := s.catalog.GetProduct(req.ProductID)
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	var outcome cart.Outcome
	updated, err := s.store.Update(ctx, func(c cart.Cart) (cart.Cart, bool, error) {
		next, o := c.Add(cart.Line{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  req.Quantity,
			Image:     product.PrimaryImage(),
		}, product.Stock)
		outcome = o
		return next, o.Changed, nil
	})
	if err != nil {
		return nil, err
	}

	if outcome.Notice != cart.NoticeNone {
		s.logger.Info("add to cart limited",
			zap.String("product_id", product.ID),
			zap.String("notice", string(outcome.Notice)),
			zap.Int("quantity", outcome.Quantity))
	}
	return &MutationResponse{Outcome: outcome, Cart: ToCartResponse(updated)}, nil
}

// UpdateQuantity sets a line's quantity within [1, stock]
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, req UpdateQuantityRequest) (*MutationResponse, error) {
	product, ok := s.catalog.GetProduct(productID)
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	var outcome cart.Outcome
	updated, err := s.store.Update(ctx, func(c cart.Cart) (cart.Cart, bool, error) {
		next, o := c.SetQuantity(productID, req.Quantity, product.Stock)
		outcome = o
		return next, o.Changed, nil
	})
	if err != nil {
		return nil, err
	}
	return &MutationResponse{Outcome: outcome, Cart: ToCartResponse(updated)}, nil
}

// RemoveItem drops a product's line
func (s *CartService) RemoveItem(ctx context.Context, productID string) (*CartResponse, error) {
	updated, err := s.store.Update(ctx, func(c cart.Cart) (cart.Cart, bool, error) {
		next, removed := c.Remove(productID)
		return next, removed, nil
	})
	if err != nil {
		return nil, err
	}
	resp := ToCartResponse(updated)
	return &resp, nil
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context) error {
	_, err := s.store.Update(ctx, func(c cart.Cart) (cart.Cart, bool, error) {
		return c.Clear(), !c.IsEmpty(), nil
	})
	return err
}
