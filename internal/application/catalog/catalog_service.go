package catalog

import (
	"slices"
	"strings"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// RatingSource supplies the current average rating for a product
type RatingSource interface {
	AverageRating(productID string) float64
}

// CatalogService serves product lookups, search and browsing over the static catalog
type CatalogService struct {
	catalog catalog.Reader
	ratings RatingSource
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(reader catalog.Reader, ratings RatingSource) *CatalogService {
	return &CatalogService{catalog: reader, ratings: ratings}
}

// GetProduct returns one product
func (s *CatalogService) GetProduct(id string) (*ProductResponse, error) {
	p, ok := s.catalog.GetProduct(id)
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	resp := ToProductResponse(p, s.rating(p.ID))
	return &resp, nil
}

// List returns every product in catalog order
func (s *CatalogService) List() *ListResponse {
	return s.toList(s.catalog.List())
}

// Categories returns the category tree
func (s *CatalogService) Categories() []catalog.Category {
	return s.catalog.Categories()
}

// Search matches the lower-cased query as a substring of name, description
// or category. An empty query matches nothing. Catalog order is kept.
func (s *CatalogService) Search(query string) *ListResponse {
	return s.toList(Search(s.catalog.List(), query))
}

// Browse filters by category, subcategory and query, then sorts. An empty
// query does not filter here.
func (s *CatalogService) Browse(f BrowseFilter) (*ListResponse, error) {
	products := s.catalog.List()
	if f.Category != "" {
		products = slices.DeleteFunc(products, func(p catalog.Product) bool { return p.Category != f.Category })
	}
	if f.Subcategory != "" {
		products = slices.DeleteFunc(products, func(p catalog.Product) bool { return p.Subcategory != f.Subcategory })
	}
	if f.Query != "" {
		products = Search(products, f.Query)
	}

	ratings := make(map[string]float64, len(products))
	for _, p := range products {
		ratings[p.ID] = s.rating(p.ID)
	}

	var cmp func(a, b catalog.Product) int
	switch f.Sort {
	case "", SortPriceAsc:
		cmp = func(a, b catalog.Product) int { return a.Price.Cmp(b.Price) }
	case SortPriceDesc:
		cmp = func(a, b catalog.Product) int { return b.Price.Cmp(a.Price) }
	case SortRatingAsc:
		cmp = func(a, b catalog.Product) int { return compareFloat(ratings[a.ID], ratings[b.ID]) }
	case SortRatingDesc:
		cmp = func(a, b catalog.Product) int { return compareFloat(ratings[b.ID], ratings[a.ID]) }
	default:
		return nil, shared.NewFieldValidationError("sort", "oneof", "Must be one of: price-asc price-desc rating-asc rating-desc")
	}
	slices.SortStableFunc(products, cmp)

	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(p, ratings[p.ID])
	}
	return &ListResponse{Products: out, Total: len(out)}, nil
}

// Search is the pure substring filter behind CatalogService.Search
func Search(products []catalog.Product, query string) []catalog.Product {
	q := strings.ToLower(query)
	if q == "" {
		return []catalog.Product{}
	}
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

func (s *CatalogService) rating(id string) float64 {
	if s.ratings == nil {
		return 0
	}
	return s.ratings.AverageRating(id)
}

func (s *CatalogService) toList(products []catalog.Product) *ListResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(p, s.rating(p.ID))
	}
	return &ListResponse{Products: out, Total: len(out)}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
