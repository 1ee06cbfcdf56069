// Package catalog provides the YAML catalog seed: demo products, category
// ranges and Q&A pairs. The default catalog is embedded in the binary.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Ensure Seed implements the interface.
var _ driven.CatalogSeed = (*Seed)(nil)

type categoryFile struct {
	Name  string `yaml:"name"`
	First int64  `yaml:"first"`
	Last  int64  `yaml:"last"`
}

type productFile struct {
	ID                       int64    `yaml:"id"`
	SKU                      string   `yaml:"sku"`
	Name                     string   `yaml:"name"`
	Brand                    string   `yaml:"brand"`
	Price                    string   `yaml:"price"`
	Stock                    int      `yaml:"stock"`
	Rating                   float64  `yaml:"rating"`
	Description              string   `yaml:"description"`
	Keywords                 []string `yaml:"keywords"`
	Alternatives             []string `yaml:"alternatives"`
	FrequentlyBoughtTogether []string `yaml:"frequently_bought_together"`
}

type recordFile struct {
	Product    int64    `yaml:"product"`
	Question   string   `yaml:"question"`
	Answer     string   `yaml:"answer"`
	Additional []string `yaml:"additional"`
}

type catalogFile struct {
	Categories []categoryFile `yaml:"categories"`
	Products   []productFile  `yaml:"products"`
	Records    []recordFile   `yaml:"records"`
}

// Seed is a parsed catalog file.
type Seed struct {
	categories []domain.Category
	products   []domain.Product
	records    []domain.QARecord
}

// Default returns the embedded demo catalog.
func Default() (*Seed, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file from path. An empty path returns the
// embedded default.
func Load(path string) (*Seed, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Seed, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	s := &Seed{}
	for _, c := range f.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, errors.New("parse catalog: category without name")
		}
		if c.First <= 0 || c.Last < c.First {
			return nil, fmt.Errorf("parse catalog: category %s has invalid range %d..%d", c.Name, c.First, c.Last)
		}
		s.categories = append(s.categories, domain.Category{Name: c.Name, FirstProduct: c.First, LastProduct: c.Last})
	}
	partition := domain.NewCategoryPartition(s.categories)

	seen := make(map[int64]bool, len(f.Products))
	for _, p := range f.Products {
		if p.ID <= 0 || p.SKU == "" {
			return nil, fmt.Errorf("parse catalog: product %q needs an id and sku", p.Name)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("parse catalog: duplicate product id %d", p.ID)
		}
		seen[p.ID] = true
		s.products = append(s.products, domain.Product{
			ID:                       p.ID,
			SKU:                      p.SKU,
			Name:                     p.Name,
			Brand:                    p.Brand,
			Category:                 partition.CategoryOf(p.ID),
			Price:                    p.Price,
			Stock:                    p.Stock,
			Rating:                   p.Rating,
			Description:              p.Description,
			Keywords:                 p.Keywords,
			Alternatives:             p.Alternatives,
			FrequentlyBoughtTogether: p.FrequentlyBoughtTogether,
		})
	}

	for _, r := range f.Records {
		s.records = append(s.records, domain.QARecord{
			ProductRef:        r.Product,
			Question:          r.Question,
			PrimaryAnswer:     r.Answer,
			AdditionalAnswers: r.Additional,
		})
	}
	return s, nil
}

// Products returns the seed products in file order.
func (s *Seed) Products() []domain.Product {
	return s.products
}

// Categories returns the seed category ranges.
func (s *Seed) Categories() []domain.Category {
	return s.categories
}

// Records returns the seed Q&A pairs. Records are not validated here;
// ingestion reports bad ones.
func (s *Seed) Records() []domain.QARecord {
	return s.records
}
