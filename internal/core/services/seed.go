package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
	"github.com/custodia-labs/repdesk/internal/logger"
)

// Ensure SeedService implements the interface.
var _ driving.SeedService = (*SeedService)(nil)

// SeedService loads the demo catalog and Q&A corpus.
type SeedService struct {
	seed    driven.CatalogSeed
	catalog driven.ProductCatalog
	ingest  *IngestService
}

// NewSeedService creates a new seed service.
func NewSeedService(seed driven.CatalogSeed, catalog driven.ProductCatalog, ingest *IngestService) *SeedService {
	return &SeedService{
		seed:    seed,
		catalog: catalog,
		ingest:  ingest,
	}
}

// Seed stores the demo products, categories, and Q&A pairs.
// Products and categories are upserted; questions that already exist
// are reported as rejected duplicates and left untouched.
func (s *SeedService) Seed(ctx context.Context) (domain.IngestReport, error) {
	logger.Section("Seed")

	for _, c := range s.seed.Categories() {
		if err := s.catalog.SaveCategory(ctx, c); err != nil {
			return domain.IngestReport{}, fmt.Errorf("seed category %s: %w", c.Name, err)
		}
	}
	products := s.seed.Products()
	for _, p := range products {
		if err := s.catalog.SaveProduct(ctx, p); err != nil {
			return domain.IngestReport{}, fmt.Errorf("seed product %s: %w", p.SKU, err)
		}
	}
	logger.Debug("Seeded %d products", len(products))

	records := s.seed.Records()
	recs := make([]domain.IngestRecord, len(records))
	for i, r := range records {
		recs[i] = domain.IngestRecord{
			ProductRef:        strconv.FormatInt(r.ProductRef, 10),
			QuestionText:      r.Question,
			AnswerText:        r.PrimaryAnswer,
			AdditionalAnswers: r.AdditionalAnswers,
			Origin:            "seed",
		}
	}
	return s.ingest.IngestBatch(ctx, recs)
}
