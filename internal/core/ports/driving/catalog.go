package driving

import (
	"context"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// CatalogService lets reps look up products while talking to a customer.
type CatalogService interface {
	// Lookup finds products by SKU or keyword.
	Lookup(ctx context.Context, query string) ([]domain.Product, error)

	// Get retrieves a product by SKU.
	Get(ctx context.Context, sku string) (*domain.Product, error)

	// Alternatives returns substitute products for sku.
	// SKUs without catalog data are skipped.
	Alternatives(ctx context.Context, sku string) ([]domain.Product, error)

	// FrequentlyBoughtTogether returns products often bought with sku.
	FrequentlyBoughtTogether(ctx context.Context, sku string) ([]domain.Product, error)

	// AlternativeSuggestion returns customer-email text recommending the
	// first known alternative to sku, or "" if there is none.
	AlternativeSuggestion(ctx context.Context, sku string) (string, error)

	// BoughtTogetherSuggestion returns customer-email text recommending the
	// first known frequently-bought-together item, or "" if there is none.
	BoughtTogetherSuggestion(ctx context.Context, sku string) (string, error)

	// Categories returns the category ranges.
	Categories(ctx context.Context) ([]domain.Category, error)

	// Partition returns the category partition used to filter results.
	Partition(ctx context.Context) (domain.CategoryPartition, error)
}
