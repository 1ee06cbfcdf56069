package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// MockSession implements driving.RetrievalSession for testing.
// It returns a fixed ranking and tracks the state machine loosely.
type MockSession struct {
	state    domain.SessionState
	category string
	Ranking  []domain.RankedResult
	Queries  []string
	Upvoted  []int64
}

func (m *MockSession) State() domain.SessionState {
	if m.state == "" {
		return domain.SessionIdle
	}
	return m.state
}

func (m *MockSession) Begin() error {
	m.state = domain.SessionAwaitingCategory
	return nil
}

func (m *MockSession) ChooseCategory(_ context.Context, name string) error {
	if m.State() != domain.SessionAwaitingCategory {
		return domain.ErrInvalidTransition
	}
	m.category = name
	m.state = domain.SessionAwaitingQuery
	return nil
}

func (m *MockSession) Submit(_ context.Context, text string) (domain.ResultPage, error) {
	if m.State() != domain.SessionAwaitingQuery {
		return domain.ResultPage{}, domain.ErrInvalidTransition
	}
	m.Queries = append(m.Queries, text)
	m.state = domain.SessionResultsShown
	return m.Page(), nil
}

func (m *MockSession) Reset() {
	m.state = domain.SessionIdle
	m.category = ""
}

func (m *MockSession) Query(_ context.Context, text string, _ domain.QueryOptions) ([]domain.RankedResult, error) {
	m.Queries = append(m.Queries, text)
	return m.Ranking, nil
}

func (m *MockSession) Page() domain.ResultPage {
	return domain.ResultPage{Results: m.Ranking, Total: len(m.Ranking)}
}

func (m *MockSession) Next() (domain.ResultPage, error) {
	return domain.ResultPage{}, domain.ErrNoResults
}

func (m *MockSession) Upvote(_ context.Context, answerID int64) (int, error) {
	m.Upvoted = append(m.Upvoted, answerID)
	return 1, nil
}

func (m *MockSession) Flag(_ context.Context, answerID int64, reason string) (*domain.FlagReport, error) {
	return &domain.FlagReport{AnswerID: answerID, Reason: reason}, nil
}

func (m *MockSession) Category() string {
	return m.category
}

// MockCatalogService implements driving.CatalogService for testing.
type MockCatalogService struct {
	Products     []domain.Product
	CategoryList []domain.Category
}

func (m *MockCatalogService) Lookup(_ context.Context, _ string) ([]domain.Product, error) {
	return m.Products, nil
}

func (m *MockCatalogService) Get(_ context.Context, sku string) (*domain.Product, error) {
	for i := range m.Products {
		if m.Products[i].SKU == sku {
			return &m.Products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockCatalogService) Alternatives(_ context.Context, _ string) ([]domain.Product, error) {
	return nil, nil
}

func (m *MockCatalogService) FrequentlyBoughtTogether(_ context.Context, _ string) ([]domain.Product, error) {
	return nil, nil
}

func (m *MockCatalogService) AlternativeSuggestion(_ context.Context, sku string) (string, error) {
	return "Try an alternative to " + sku + ".", nil
}

func (m *MockCatalogService) BoughtTogetherSuggestion(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (m *MockCatalogService) Categories(_ context.Context) ([]domain.Category, error) {
	return m.CategoryList, nil
}

func (m *MockCatalogService) Partition(_ context.Context) (domain.CategoryPartition, error) {
	return domain.NewCategoryPartition(m.CategoryList), nil
}

// MockIngestService implements driving.IngestService for testing.
type MockIngestService struct {
	Added []domain.IngestRecord
}

func (m *MockIngestService) AddRecord(_ context.Context, rec domain.IngestRecord) (int64, error) {
	m.Added = append(m.Added, rec)
	return int64(len(m.Added)), nil
}

func (m *MockIngestService) IngestBatch(_ context.Context, _ []domain.IngestRecord) (domain.IngestReport, error) {
	return domain.IngestReport{}, nil
}

func (m *MockIngestService) IngestTranscript(_ context.Context, _ string) (domain.IngestReport, error) {
	return domain.IngestReport{}, nil
}

func (m *MockIngestService) SimilarQuestions(_ context.Context, _ string) ([]domain.RankedResult, error) {
	return nil, nil
}

// MockIndexService implements driving.IndexService for testing.
type MockIndexService struct {
	Empty bool
}

func (m *MockIndexService) Rebuild(_ context.Context) (domain.IndexStats, error) {
	return m.Stats(), nil
}

func (m *MockIndexService) Stats() domain.IndexStats {
	return domain.IndexStats{Empty: m.Empty}
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	Saved *domain.RetrievalSettings
}

func (m *MockSettingsService) Get() (domain.RetrievalSettings, error) {
	if m.Saved != nil {
		return *m.Saved, nil
	}
	return domain.DefaultRetrievalSettings(), nil
}

func (m *MockSettingsService) Save(settings domain.RetrievalSettings) error {
	m.Saved = &settings
	return nil
}

func (m *MockSettingsService) GetDefaults() domain.RetrievalSettings {
	return domain.DefaultRetrievalSettings()
}

func TestNewPorts(t *testing.T) {
	session := &MockSession{}
	catalog := &MockCatalogService{}

	ports := NewPorts(session, catalog)

	require.NotNil(t, ports)
	assert.Equal(t, session, ports.Session)
	assert.Equal(t, catalog, ports.Catalog)
	assert.Nil(t, ports.Ingest)
	assert.Nil(t, ports.Settings)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"all set", &Ports{Session: &MockSession{}, Catalog: &MockCatalogService{}}, nil},
		{"missing session", &Ports{Catalog: &MockCatalogService{}}, ErrMissingSession},
		{"missing catalog", &Ports{Session: &MockSession{}}, ErrMissingCatalogService},
		{"nil ports", nil, ErrInvalidPorts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPorts_Validate_OptionalServices(t *testing.T) {
	ports := &Ports{
		Session:  &MockSession{},
		Catalog:  &MockCatalogService{},
		Ingest:   &MockIngestService{},
		Index:    &MockIndexService{},
		Settings: &MockSettingsService{},
	}

	assert.NoError(t, ports.Validate())
}
