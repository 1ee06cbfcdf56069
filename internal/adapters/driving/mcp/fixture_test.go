package mcp

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repdesk/internal/adapters/driven/review"
	"github.com/custodia-labs/repdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/repdesk/internal/adapters/driven/transcript"
	"github.com/custodia-labs/repdesk/internal/adapters/driven/vectorizer/tfidf"
	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/services"
)

// newTestPorts wires real services over in-memory adapters.
//
//	question 1, product 1001: answers 1 (primary), 2, 3
//	question 2, product 1002: answers 4 (primary), 5
func newTestPorts(t *testing.T) (*Ports, *services.SessionRegistry) {
	t.Helper()
	ctx := context.Background()

	repo := memory.NewRecordRepository()
	catalog := memory.NewProductCatalog()
	settings := domain.DefaultRetrievalSettings()
	settings.PageSize = 1

	reporter, err := review.NewFileReporter(filepath.Join(t.TempDir(), "flags.jsonl"))
	require.NoError(t, err)

	for _, c := range []domain.Category{
		{Name: "adhesives", FirstProduct: 1001, LastProduct: 1001},
		{Name: "sealants", FirstProduct: 1002, LastProduct: 1003},
	} {
		require.NoError(t, catalog.SaveCategory(ctx, c))
	}
	for _, p := range []domain.Product{
		{
			ID: 1001, SKU: "ADH1001", Name: "Super Adhesive", Price: "$9.99", Stock: 120, Rating: 4.1,
			Keywords: []string{"glue", "adhesive"}, Alternatives: []string{"SEAL1003"},
			FrequentlyBoughtTogether: []string{"SEAL1002"},
		},
		{ID: 1002, SKU: "SEAL1002", Name: "Waterproof Sealant", Price: "$14.50", Stock: 8, Rating: 4.6,
			Keywords: []string{"sealant", "waterproof"}},
		{ID: 1003, SKU: "SEAL1003", Name: "High-Temp Sealant", Price: "$18.00", Stock: 30, Rating: 4.8,
			Keywords: []string{"sealant", "heat"}},
	} {
		require.NoError(t, catalog.SaveProduct(ctx, p))
	}

	index := services.NewIndex(repo, tfidf.New())
	ingest := services.NewIngestService(index, repo, catalog, transcript.NewParser(), settings)
	_, err = ingest.IngestBatch(ctx, []domain.IngestRecord{
		{
			ProductRef:        "1001",
			QuestionText:      "How long does the adhesive take to dry?",
			AnswerText:        "About 24 hours at room temperature.",
			AdditionalAnswers: []string{"Faster in a warm room.", "Clamp the parts while it cures."},
		},
		{
			ProductRef:        "1002",
			QuestionText:      "Is the sealant waterproof?",
			AnswerText:        "Yes, once fully cured.",
			AdditionalAnswers: []string{"Safe for showers and sinks."},
		},
	})
	require.NoError(t, err)

	registry := services.NewSessionRegistry(0, func() *services.Session {
		return services.NewSession(index, repo, catalog, reporter, settings)
	})

	return &Ports{
		Sessions: registry,
		Catalog:  services.NewCatalogService(catalog),
		Ingest:   ingest,
	}, registry
}

func newTestServer(t *testing.T) (*Server, *services.SessionRegistry) {
	t.Helper()
	ports, registry := newTestPorts(t)
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server, registry
}

// makeReadResourceRequest creates a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

// failingCatalog is a driving.CatalogService whose every call fails.
type failingCatalog struct{}

var errCatalog = errors.New("catalog unavailable")

func (failingCatalog) Lookup(context.Context, string) ([]domain.Product, error) {
	return nil, errCatalog
}

func (failingCatalog) Get(context.Context, string) (*domain.Product, error) {
	return nil, errCatalog
}

func (failingCatalog) Alternatives(context.Context, string) ([]domain.Product, error) {
	return nil, errCatalog
}

func (failingCatalog) FrequentlyBoughtTogether(context.Context, string) ([]domain.Product, error) {
	return nil, errCatalog
}

func (failingCatalog) AlternativeSuggestion(context.Context, string) (string, error) {
	return "", errCatalog
}

func (failingCatalog) BoughtTogetherSuggestion(context.Context, string) (string, error) {
	return "", errCatalog
}

func (failingCatalog) Categories(context.Context) ([]domain.Category, error) {
	return nil, errCatalog
}

func (failingCatalog) Partition(context.Context) (domain.CategoryPartition, error) {
	return domain.CategoryPartition{}, errCatalog
}
