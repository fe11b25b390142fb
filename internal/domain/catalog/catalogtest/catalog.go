// Package catalogtest provides a small in-memory catalog for service tests.
package catalogtest

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/review"
)

// Catalog is a catalog.Reader over a fixed product list
type Catalog struct {
	products   []catalog.Product
	categories []catalog.Category
}

// New returns a catalog holding products in the given order
func New(products ...catalog.Product) *Catalog {
	return &Catalog{products: products}
}

// WithCategories sets the category tree
func (c *Catalog) WithCategories(categories ...catalog.Category) *Catalog {
	c.categories = categories
	return c
}

// Product builds a valid product with one image
func Product(id, name, price string, stock int) catalog.Product {
	return catalog.Product{
		ID:     id,
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Stock:  stock,
		Images: []string{"https://img.example.com/" + id + ".jpg"},
	}
}

// WithReviews returns p carrying reviews as its seed list
func WithReviews(p catalog.Product, reviews ...review.Review) catalog.Product {
	p.Reviews = reviews
	return p
}

func (c *Catalog) GetProduct(id string) (catalog.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

func (c *Catalog) List() []catalog.Product {
	out := make([]catalog.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Categories() []catalog.Category {
	out := make([]catalog.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

var _ catalog.Reader = (*Catalog)(nil)
