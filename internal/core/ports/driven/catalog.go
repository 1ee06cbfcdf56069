package driven

import (
	"context"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// ProductCatalog provides product records and the category partition.
type ProductCatalog interface {
	// SaveProduct stores or updates a product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// GetProduct retrieves a product by item number.
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)

	// GetProductBySKU retrieves a product by SKU, case-insensitively.
	GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error)

	// ListProducts returns all products ordered by item number.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// SaveCategory stores or updates a category range.
	SaveCategory(ctx context.Context, category domain.Category) error

	// ListCategories returns all category ranges.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CatalogSeed provides demo catalog and Q&A data.
type CatalogSeed interface {
	// Products returns the seed products.
	Products() []domain.Product

	// Categories returns the seed category ranges.
	Categories() []domain.Category

	// Records returns the seed Q&A pairs.
	Records() []domain.QARecord
}
