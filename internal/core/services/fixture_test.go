package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/repdesk/internal/adapters/driven/vectorizer/tfidf"
	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
)

// fixture wires the services over in-memory adapters.
type fixture struct {
	repo     *memory.RecordRepository
	catalog  *memory.ProductCatalog
	index    *Index
	ingest   *IngestService
	reporter *mockFlagReporter
	settings domain.RetrievalSettings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		repo:     memory.NewRecordRepository(),
		catalog:  memory.NewProductCatalog(),
		reporter: &mockFlagReporter{},
		settings: domain.DefaultRetrievalSettings(),
	}
	f.index = NewIndex(f.repo, tfidf.New())
	f.ingest = NewIngestService(f.index, f.repo, f.catalog, nil, f.settings)

	for _, c := range []domain.Category{
		{Name: "adhesives", FirstProduct: 1001, LastProduct: 1001},
		{Name: "sealants", FirstProduct: 1002, LastProduct: 1003},
	} {
		require.NoError(t, f.catalog.SaveCategory(ctx, c))
	}
	for _, p := range []domain.Product{
		{ID: 1001, SKU: "ADH1001", Name: "Super Adhesive"},
		{ID: 1002, SKU: "SEAL1002", Name: "Waterproof Sealant"},
		{ID: 1003, SKU: "SEAL1003", Name: "High-Temp Sealant"},
	} {
		require.NoError(t, f.catalog.SaveProduct(ctx, p))
	}
	return f
}

func (f *fixture) session() *Session {
	return NewSession(f.index, f.repo, f.catalog, f.reporter, f.settings)
}

// store writes a record straight to the repository, bypassing the index.
func (f *fixture) store(t *testing.T, productRef int64, question, primary string, extras ...string) int64 {
	t.Helper()
	id, err := f.repo.SaveRecord(context.Background(), domain.QARecord{
		ProductRef:        productRef,
		Question:          question,
		PrimaryAnswer:     primary,
		AdditionalAnswers: extras,
	})
	require.NoError(t, err)
	return id
}

// mockFlagReporter records reported flags.
type mockFlagReporter struct {
	mu      sync.Mutex
	reports []domain.FlagReport
	err     error
}

func (m *mockFlagReporter) Report(_ context.Context, flag domain.FlagReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.reports = append(m.reports, flag)
	return nil
}

// mockVectorizer counts builds and can fail on demand.
type mockVectorizer struct {
	inner  driven.Vectorizer
	builds int
	err    error
}

func (m *mockVectorizer) Name() string { return "mock" }

func (m *mockVectorizer) Build(corpus []string) (driven.TermWeightModel, []domain.Vector, error) {
	m.builds++
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.inner.Build(corpus)
}

// failingRepository wraps a repository and fails selected calls.
type failingRepository struct {
	driven.RecordRepository
	fetchErr error
	saveErr  error
}

func (r *failingRepository) FetchAllQuestions(ctx context.Context) ([]domain.Question, error) {
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.RecordRepository.FetchAllQuestions(ctx)
}

func (r *failingRepository) SaveRecord(ctx context.Context, rec domain.QARecord) (int64, error) {
	if r.saveErr != nil {
		return 0, r.saveErr
	}
	return r.RecordRepository.SaveRecord(ctx, rec)
}

var errStorage = errors.New("storage unavailable")

// hookedCatalog runs onList before each ListCategories call.
type hookedCatalog struct {
	driven.ProductCatalog
	onList func(ctx context.Context) error
}

func (c *hookedCatalog) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if c.onList != nil {
		if err := c.onList(ctx); err != nil {
			return nil, err
		}
	}
	return c.ProductCatalog.ListCategories(ctx)
}
