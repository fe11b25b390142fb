package favorites

import (
	"context"

	"github.com/storefront/backend/internal/application/state"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/favorites"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// FavoritesResponse is the wishlist as ids plus the products still in the catalog
type FavoritesResponse struct {
	Items    []string          `json:"items"`
	Count    int               `json:"count"`
	Products []catalog.Product `json:"products"`
}

// ToggleResponse reports membership after a toggle
type ToggleResponse struct {
	ProductID  string `json:"productId"`
	IsFavorite bool   `json:"isFavorite"`
	Count      int    `json:"count"`
}

// FavoritesService handles the wishlist
type FavoritesService struct {
	store   *state.Container[favorites.Set]
	catalog catalog.Reader
	logger  *zap.Logger
}

// NewFavoritesService creates a new FavoritesService persisting to storage
func NewFavoritesService(storage shared.StateStorage, reader catalog.Reader, logger *zap.Logger) *FavoritesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FavoritesService{
		store:   state.New(storage, shared.NamespaceFavorites, favorites.New(), state.WithLogger(logger)),
		catalog: reader,
		logger:  logger.Named("favorites"),
	}
}

// Load rehydrates the wishlist from storage
func (s *FavoritesService) Load(ctx context.Context) error {
	return s.store.Load(ctx)
}

// Add inserts a product; adding twice is a no-op
func (s *FavoritesService) Add(ctx context.Context, productID string) (*FavoritesResponse, error) {
	if err := s.requireProduct(productID); err != nil {
		return nil, err
	}
	set, err := s.store.Update(ctx, func(cur favorites.Set) (favorites.Set, bool, error) {
		next, added := cur.Add(productID)
		return next, added, nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(set), nil
}

// Remove deletes a product; removing a non-member is a no-op
func (s *FavoritesService) Remove(ctx context.Context, productID string) (*FavoritesResponse, error) {
	set, err := s.store.Update(ctx, func(cur favorites.Set) (favorites.Set, bool, error) {
		next, removed := cur.Remove(productID)
		return next, removed, nil
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(set), nil
}

// Toggle flips membership of a product
func (s *FavoritesService) Toggle(ctx context.Context, productID string) (*ToggleResponse, error) {
	if err := s.requireProduct(productID); err != nil {
		return nil, err
	}
	var member bool
	set, err := s.store.Update(ctx, func(cur favorites.Set) (favorites.Set, bool, error) {
		next, has := cur.Toggle(productID)
		member = has
		return next, true, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("favorite toggled", zap.String("product_id", productID), zap.Bool("favorite", member))
	return &ToggleResponse{ProductID: productID, IsFavorite: member, Count: set.Count()}, nil
}

// Has reports whether the product is a favorite
func (s *FavoritesService) Has(productID string) bool {
	return s.store.Get().Has(productID)
}

// Items returns favorite ids in insertion order
func (s *FavoritesService) Items() []string {
	return s.store.Get().Items()
}

// Count returns the number of distinct favorites
func (s *FavoritesService) Count() int {
	return s.store.Get().Count()
}

// List returns the wishlist page projection
func (s *FavoritesService) List() *FavoritesResponse {
	return s.toResponse(s.store.Get())
}

func (s *FavoritesService) requireProduct(productID string) error {
	if _, ok := s.catalog.GetProduct(productID); !ok {
		return shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	return nil
}

func (s *FavoritesService) toResponse(set favorites.Set) *FavoritesResponse {
	ids := set.Items()
	products := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.catalog.GetProduct(id); ok {
			products = append(products, p)
		}
	}
	return &FavoritesResponse{Items: ids, Count: len(ids), Products: products}
}
