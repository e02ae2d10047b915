package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/lumierefi/store_api/internal/models"
)

//go:embed products.json
var seedJSON []byte

// Catalog is the immutable in-memory product list. It is loaded once at
// startup and never mutated afterwards, so it is safe to share across
// goroutines without locking. All listing views are computed from it on
// demand.
type Catalog struct {
	products []models.Product
	byID     map[string]models.Product
}

// New builds a catalog from a product slice. Duplicate ids keep the first
// occurrence.
func New(products []models.Product) *Catalog {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = p
		}
	}
	return &Catalog{products: products, byID: byID}
}

// Load parses the embedded seed catalog.
func Load() (*Catalog, error) {
	var products []models.Product
	if err := json.Unmarshal(seedJSON, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog seed: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog seed is empty")
	}
	return New(products), nil
}

// Products returns the full product list in catalog order. Callers must
// treat the returned slice as read-only.
func (c *Catalog) Products() []models.Product {
	return c.products
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Find looks up a product by id.
func (c *Catalog) Find(id string) (models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// PriceBounds returns the catalog-wide price range in whole euros. These
// are the fallback bounds when filter input is missing or malformed.
func (c *Catalog) PriceBounds() (min, max int) {
	if len(c.products) == 0 {
		return 0, 0
	}
	min = c.products[0].PriceEuros()
	max = min
	for _, p := range c.products[1:] {
		e := p.PriceEuros()
		if e < min {
			min = e
		}
		if e > max {
			max = e
		}
	}
	return min, max
}
