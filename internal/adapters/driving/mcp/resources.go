package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for repdesk resources.
	uriScheme = "repdesk://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "Product categories and their item number ranges",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "products/{sku}",
		Name:        "product",
		Description: "Catalog entry for one product",
		MIMEType:    "application/json",
	}, s.handleProductResource)
}

// handleCategoriesResource returns every category.
func (s *Server) handleCategoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	categories, err := s.ports.Catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	type categoryInfo struct {
		Name         string `json:"name"`
		FirstProduct int64  `json:"first_product"`
		LastProduct  int64  `json:"last_product"`
	}

	infos := make([]categoryInfo, len(categories))
	for i, c := range categories {
		infos[i] = categoryInfo{
			Name:         c.Name,
			FirstProduct: c.FirstProduct,
			LastProduct:  c.LastProduct,
		}
	}

	return jsonResource(req.Params.URI, infos)
}

// handleProductResource returns one product by SKU.
func (s *Server) handleProductResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sku := extractSKU(req.Params.URI)
	if sku == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	product, err := s.ports.Catalog.Get(ctx, sku)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}

	return jsonResource(req.Params.URI, productInfo(product))
}

type productJSON struct {
	ID                       int64    `json:"id"`
	SKU                      string   `json:"sku"`
	Name                     string   `json:"name"`
	Brand                    string   `json:"brand,omitempty"`
	Category                 string   `json:"category,omitempty"`
	Price                    string   `json:"price"`
	Stock                    int      `json:"stock"`
	StockLevel               string   `json:"stock_level"`
	Rating                   float64  `json:"rating"`
	Description              string   `json:"description,omitempty"`
	Alternatives             []string `json:"alternatives,omitempty"`
	FrequentlyBoughtTogether []string `json:"frequently_bought_together,omitempty"`
}

func productInfo(p *domain.Product) productJSON {
	return productJSON{
		ID:                       p.ID,
		SKU:                      p.SKU,
		Name:                     p.Name,
		Brand:                    p.Brand,
		Category:                 p.Category,
		Price:                    p.Price,
		Stock:                    p.Stock,
		StockLevel:               string(p.StockLevel()),
		Rating:                   p.Rating,
		Description:              p.Description,
		Alternatives:             p.Alternatives,
		FrequentlyBoughtTogether: p.FrequentlyBoughtTogether,
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSKU extracts the SKU from a URI like repdesk://products/{sku}.
func extractSKU(uri string) string {
	const prefix = uriScheme + "products/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	sku := strings.TrimPrefix(uri, prefix)
	if strings.Contains(sku, "/") {
		return ""
	}
	return sku
}
