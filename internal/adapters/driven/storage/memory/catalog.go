package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
)

// Ensure ProductCatalog implements the interface.
var _ driven.ProductCatalog = (*ProductCatalog)(nil)

// ProductCatalog is an in-memory implementation of driven.ProductCatalog.
type ProductCatalog struct {
	mu         sync.RWMutex
	products   map[int64]domain.Product
	categories map[string]domain.Category
}

// NewProductCatalog creates a new in-memory product catalog.
func NewProductCatalog() *ProductCatalog {
	return &ProductCatalog{
		products:   make(map[int64]domain.Product),
		categories: make(map[string]domain.Category),
	}
}

// SaveProduct stores or updates a product.
func (c *ProductCatalog) SaveProduct(_ context.Context, product domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[product.ID] = product
	return nil
}

// GetProduct retrieves a product by item number.
func (c *ProductCatalog) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// GetProductBySKU retrieves a product by SKU.
func (c *ProductCatalog) GetProductBySKU(_ context.Context, sku string) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if strings.EqualFold(p.SKU, sku) {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListProducts returns all products ordered by item number.
func (c *ProductCatalog) ListProducts(_ context.Context) ([]domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SaveCategory stores or updates a category range.
func (c *ProductCatalog) SaveCategory(_ context.Context, category domain.Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories[category.Name] = category
	return nil
}

// ListCategories returns all category ranges ordered by first product.
func (c *ProductCatalog) ListCategories(_ context.Context) ([]domain.Category, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Category, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FirstProduct < out[j].FirstProduct })
	return out, nil
}
