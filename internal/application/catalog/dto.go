package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// Sort orders accepted by Browse
const (
	SortPriceAsc   = "price-asc"
	SortPriceDesc  = "price-desc"
	SortRatingAsc  = "rating-asc"
	SortRatingDesc = "rating-desc"
)

// BrowseFilter narrows and orders the product listing
type BrowseFilter struct {
	Category    string `form:"category"`
	Subcategory string `form:"subcategory"`
	Query       string `form:"q"`
	Sort        string `form:"sort" binding:"omitempty,oneof=price-asc price-desc rating-asc rating-desc"`
}

// ProductResponse is a product with its recomputed rating
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory"`
	Images        []string        `json:"images"`
	Stock         int             `json:"stock"`
	InStock       bool            `json:"inStock"`
	AverageRating float64         `json:"averageRating"`
}

// ListResponse is a page of products
type ListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

// ToProductResponse projects p with its average rating
func ToProductResponse(p catalog.Product, rating float64) ProductResponse {
	images := make([]string, len(p.Images))
	copy(images, p.Images)
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Category:      p.Category,
		Subcategory:   p.Subcategory,
		Images:        images,
		Stock:         p.Stock,
		InStock:       p.InStock(),
		AverageRating: rating,
	}
}
