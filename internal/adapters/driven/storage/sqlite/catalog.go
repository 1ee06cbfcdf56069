package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
)

// catalogStore implements driven.ProductCatalog.
type catalogStore struct {
	store *Store
}

var _ driven.ProductCatalog = (*catalogStore)(nil)

const productColumns = `id, sku, name, brand, category, price, stock, rating, description,
	keywords, alternatives, frequently_bought_together`

// SaveProduct stores or updates a product.
func (s *catalogStore) SaveProduct(ctx context.Context, p domain.Product) error {
	keywords, err := marshalList(p.Keywords)
	if err != nil {
		return err
	}
	alternatives, err := marshalList(p.Alternatives)
	if err != nil {
		return err
	}
	together, err := marshalList(p.FrequentlyBoughtTogether)
	if err != nil {
		return err
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sku = excluded.sku,
			name = excluded.name,
			brand = excluded.brand,
			category = excluded.category,
			price = excluded.price,
			stock = excluded.stock,
			rating = excluded.rating,
			description = excluded.description,
			keywords = excluded.keywords,
			alternatives = excluded.alternatives,
			frequently_bought_together = excluded.frequently_bought_together
	`, p.ID, p.SKU, p.Name, p.Brand, p.Category, p.Price, p.Stock, p.Rating, p.Description,
		keywords, alternatives, together)
	if err != nil {
		return fmt.Errorf("saving product: %w", err)
	}
	return nil
}

// GetProduct retrieves a product by item number.
func (s *catalogStore) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	return scanProduct(row)
}

// GetProductBySKU retrieves a product by SKU, case-insensitively.
func (s *catalogStore) GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE sku = ? COLLATE NOCASE", strings.TrimSpace(sku))
	return scanProduct(row)
}

// ListProducts returns all products ordered by item number.
func (s *catalogStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product //nolint:prealloc // size unknown from query
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return products, nil
}

// SaveCategory stores or updates a category range.
func (s *catalogStore) SaveCategory(ctx context.Context, c domain.Category) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO categories (name, first_product, last_product)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			first_product = excluded.first_product,
			last_product = excluded.last_product
	`, c.Name, c.FirstProduct, c.LastProduct)
	if err != nil {
		return fmt.Errorf("saving category: %w", err)
	}
	return nil
}

// ListCategories returns all category ranges ordered by first product.
func (s *catalogStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT name, first_product, last_product
		FROM categories ORDER BY first_product, name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Name, &c.FirstProduct, &c.LastProduct); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return categories, nil
}

func scanProduct(row scanner) (*domain.Product, error) {
	var p domain.Product
	var keywords, alternatives, together string
	if err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Brand, &p.Category, &p.Price, &p.Stock, &p.Rating,
		&p.Description, &keywords, &alternatives, &together); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning product: %w", err)
	}

	var err error
	if p.Keywords, err = unmarshalList(keywords); err != nil {
		return nil, err
	}
	if p.Alternatives, err = unmarshalList(alternatives); err != nil {
		return nil, err
	}
	if p.FrequentlyBoughtTogether, err = unmarshalList(together); err != nil {
		return nil, err
	}
	return &p, nil
}

func marshalList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshalling list: %w", err)
	}
	return string(data), nil
}

func unmarshalList(data string) ([]string, error) {
	if data == "" || data == "null" {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("unmarshalling list: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}
