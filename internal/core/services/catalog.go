package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
	"github.com/custodia-labs/repdesk/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// Default customer-email templates, used when no template store is set.
const (
	defaultAlternativeTemplate    = "A great alternative to the %s is the product %s."
	defaultBoughtTogetherTemplate = "Based on your interest in %s, many customers also purchase %s for optimal performance."
)

// CatalogService answers product lookups for reps.
type CatalogService struct {
	catalog   driven.ProductCatalog
	templates driven.TemplateStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalog driven.ProductCatalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// SetTemplateStore sets the source of customer-email templates.
func (s *CatalogService) SetTemplateStore(store driven.TemplateStore) {
	s.templates = store
}

// Lookup finds products by exact SKU, falling back to keyword matching.
// A keyword matches when either it contains the query or the query
// contains it. Results keep catalog order without duplicates.
func (s *CatalogService) Lookup(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []domain.Product{}, nil
	}

	if p, err := s.catalog.GetProductBySKU(ctx, query); err == nil {
		return []domain.Product{*p}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup sku: %w", err)
	}

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	results := make([]domain.Product, 0)
	seen := make(map[string]struct{})
	for _, p := range products {
		if _, dup := seen[p.SKU]; dup {
			continue
		}
		if matchesKeyword(p, query) {
			seen[p.SKU] = struct{}{}
			results = append(results, p)
		}
	}
	logger.Debug("Product lookup %q: %d results", query, len(results))
	return results, nil
}

// Get retrieves a product by SKU.
func (s *CatalogService) Get(ctx context.Context, sku string) (*domain.Product, error) {
	p, err := s.catalog.GetProductBySKU(ctx, strings.TrimSpace(sku))
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", sku, err)
	}
	return p, nil
}

// Alternatives returns known substitutes for sku.
func (s *CatalogService) Alternatives(ctx context.Context, sku string) ([]domain.Product, error) {
	p, err := s.Get(ctx, sku)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, p.Alternatives)
}

// FrequentlyBoughtTogether returns known companion products for sku.
func (s *CatalogService) FrequentlyBoughtTogether(ctx context.Context, sku string) ([]domain.Product, error) {
	p, err := s.Get(ctx, sku)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, p.FrequentlyBoughtTogether)
}

// AlternativeSuggestion builds email text for the first listed alternative.
func (s *CatalogService) AlternativeSuggestion(ctx context.Context, sku string) (string, error) {
	p, err := s.Get(ctx, sku)
	if err != nil {
		return "", err
	}
	first, err := s.first(ctx, p.Alternatives)
	if err != nil || first == nil {
		return "", err
	}
	return fmt.Sprintf(s.template(driven.TemplateAlternative, defaultAlternativeTemplate), p.Name, first.Name), nil
}

// BoughtTogetherSuggestion builds email text for the first listed companion.
func (s *CatalogService) BoughtTogetherSuggestion(ctx context.Context, sku string) (string, error) {
	p, err := s.Get(ctx, sku)
	if err != nil {
		return "", err
	}
	first, err := s.first(ctx, p.FrequentlyBoughtTogether)
	if err != nil || first == nil {
		return "", err
	}
	return fmt.Sprintf(s.template(driven.TemplateBoughtTogether, defaultBoughtTogetherTemplate), p.Name, first.Name), nil
}

// Categories returns the category ranges.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// Partition returns the category partition.
func (s *CatalogService) Partition(ctx context.Context) (domain.CategoryPartition, error) {
	cats, err := s.Categories(ctx)
	if err != nil {
		return domain.CategoryPartition{}, err
	}
	return domain.NewCategoryPartition(cats), nil
}

// resolve loads the products behind skus, skipping any without catalog data.
func (s *CatalogService) resolve(ctx context.Context, skus []string) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(skus))
	for _, sku := range skus {
		p, err := s.catalog.GetProductBySKU(ctx, sku)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Debug("SKU %s has no catalog data", sku)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", sku, err)
		}
		out = append(out, *p)
	}
	return out, nil
}

// first returns the product for the first sku, or nil if it is unknown.
func (s *CatalogService) first(ctx context.Context, skus []string) (*domain.Product, error) {
	if len(skus) == 0 {
		return nil, nil
	}
	p, err := s.catalog.GetProductBySKU(ctx, skus[0])
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", skus[0], err)
	}
	return p, nil
}

// template loads a named template, falling back to def.
func (s *CatalogService) template(name, def string) string {
	if s.templates == nil {
		return def
	}
	tmpl, err := s.templates.Load(name)
	if err != nil || strings.Count(tmpl, "%s") != 2 {
		logger.Warn("Email template %q unusable, using default", name)
		return def
	}
	return tmpl
}

func matchesKeyword(p domain.Product, query string) bool {
	for _, kw := range p.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(kw, query) || strings.Contains(query, kw) {
			return true
		}
	}
	return false
}
