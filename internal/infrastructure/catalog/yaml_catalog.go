// Package catalog loads the read-only product catalog from a YAML document.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/storefront/backend/internal/domain/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type document struct {
	Categories []catalog.Category `yaml:"categories"`
	Products   []catalog.Product  `yaml:"products"`
}

// StaticCatalog is an immutable in-memory catalog.Reader
type StaticCatalog struct {
	products   []catalog.Product
	categories []catalog.Category
	index      map[string]int
}

// LoadEmbedded parses the catalog compiled into the binary
func LoadEmbedded() (*StaticCatalog, error) {
	return Parse(embeddedCatalog)
}

// LoadFile parses the catalog at path
func LoadFile(path string) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Load uses path when set and the embedded catalog otherwise
func Load(path string) (*StaticCatalog, error) {
	if path == "" {
		return LoadEmbedded()
	}
	return LoadFile(path)
}

// Parse decodes and validates a catalog document
func Parse(data []byte) (*StaticCatalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(doc.Products, doc.Categories)
}

// New validates products and builds the id index. Product ids must be unique.
func New(products []catalog.Product, categories []catalog.Category) (*StaticCatalog, error) {
	index := make(map[string]int, len(products))
	var errs []error
	for i, p := range products {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := index[p.ID]; dup {
			errs = append(errs, fmt.Errorf("product %q: duplicate id", p.ID))
			continue
		}
		index[p.ID] = i
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return &StaticCatalog{
		products:   slices.Clone(products),
		categories: slices.Clone(categories),
		index:      index,
	}, nil
}

func (c *StaticCatalog) GetProduct(id string) (catalog.Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return catalog.Product{}, false
	}
	return c.products[i], true
}

func (c *StaticCatalog) List() []catalog.Product {
	return slices.Clone(c.products)
}

func (c *StaticCatalog) Categories() []catalog.Category {
	return slices.Clone(c.categories)
}

// Len returns the number of products
func (c *StaticCatalog) Len() int {
	return len(c.products)
}

var _ catalog.Reader = (*StaticCatalog)(nil)
