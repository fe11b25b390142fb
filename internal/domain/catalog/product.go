package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/review"
)

// Product is a catalog entry. The catalog is read-only at runtime.
type Product struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Category    string          `json:"category" yaml:"category"`
	Subcategory string          `json:"subcategory" yaml:"subcategory"`
	Images      []string        `json:"images" yaml:"images"`
	Stock       int             `json:"stock" yaml:"stock"`
	// Reviews is the seed list the review store starts from.
	Reviews []review.Review `json:"reviews,omitempty" yaml:"reviews"`
}

// PrimaryImage returns the first image, used for cart thumbnails
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// InStock reports whether at least one unit is available
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Validate checks the catalog invariants for a single product
func (p Product) Validate() error {
	var errs []error
	if strings.TrimSpace(p.ID) == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if p.Price.IsNegative() {
		errs = append(errs, errors.New("price cannot be negative"))
	}
	if p.Stock < 0 {
		errs = append(errs, errors.New("stock cannot be negative"))
	}
	if len(p.Images) == 0 {
		errs = append(errs, errors.New("at least one image is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("product %q: %w", p.ID, err)
	}
	return nil
}

// Subcategory is a second-level grouping inside a Category
type Subcategory struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Category is a top-level product grouping
type Category struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Subcategories []Subcategory `json:"subcategories" yaml:"subcategories"`
}

// Reader is the read-only catalog collaborator every store consults
type Reader interface {
	// GetProduct looks a product up by id
	GetProduct(id string) (Product, bool)
	// List returns all products in catalog order
	List() []Product
	// Categories returns the category tree
	Categories() []Category
}
