package productdetail

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// stubCatalog implements driving.CatalogService for testing.
type stubCatalog struct {
	alternative string
	together    string
	err         error
}

func (s *stubCatalog) Lookup(context.Context, string) ([]domain.Product, error) { return nil, nil }
func (s *stubCatalog) Get(context.Context, string) (*domain.Product, error)      { return nil, nil }
func (s *stubCatalog) Alternatives(context.Context, string) ([]domain.Product, error) {
	return nil, nil
}
func (s *stubCatalog) FrequentlyBoughtTogether(context.Context, string) ([]domain.Product, error) {
	return nil, nil
}
func (s *stubCatalog) AlternativeSuggestion(context.Context, string) (string, error) {
	return s.alternative, s.err
}
func (s *stubCatalog) BoughtTogetherSuggestion(context.Context, string) (string, error) {
	return s.together, s.err
}
func (s *stubCatalog) Categories(context.Context) ([]domain.Category, error) { return nil, nil }
func (s *stubCatalog) Partition(context.Context) (domain.CategoryPartition, error) {
	return domain.CategoryPartition{}, nil
}

func superAdhesive() domain.Product {
	return domain.Product{
		ID:                       1001,
		SKU:                      "UB12345",
		Name:                     "Super Adhesive",
		Brand:                    "UltraBond",
		Category:                 "adhesives",
		Price:                    "$12.99",
		Stock:                    150,
		Rating:                   4.5,
		Description:              "High-strength adhesive for wood and metal.",
		Alternatives:             []string{"SP67890"},
		FrequentlyBoughtTogether: []string{"HS54321"},
	}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Nil(t, view.Product())
	assert.Nil(t, view.Init())
}

func TestView_SetProduct_LoadsSuggestions(t *testing.T) {
	catalog := &stubCatalog{
		alternative: "Consider SP67890 instead.",
		together:    "Customers also buy HS54321.",
	}
	view := NewView(nil, catalog)
	view.SetDimensions(100, 40)

	cmd := view.SetProduct(superAdhesive())
	require.NotNil(t, cmd)
	view.Update(cmd())

	out := view.View()
	assert.Contains(t, out, "Product Details")
	assert.Contains(t, out, "UB12345")
	assert.Contains(t, out, "Super Adhesive")
	assert.Contains(t, out, "150 (high)")
	assert.Contains(t, out, "SP67890")
	assert.Contains(t, out, "Suggested text for customer email:")
	assert.Contains(t, out, "Consider SP67890 instead.")
	assert.Contains(t, out, "Customers also buy HS54321.")
}

func TestView_SuggestionsForOtherProductIgnored(t *testing.T) {
	view := NewView(nil, &stubCatalog{})
	view.SetDimensions(100, 40)
	view.SetProduct(superAdhesive())

	view.Update(messages.SuggestionsLoaded{SKU: "OTHER", Alternative: "stale"})

	assert.NotContains(t, view.View(), "stale")
}

func TestView_SuggestionError(t *testing.T) {
	view := NewView(nil, &stubCatalog{err: errors.New("catalog offline")})
	view.SetDimensions(100, 40)

	cmd := view.SetProduct(superAdhesive())
	view.Update(cmd())

	assert.Error(t, view.Err())
	assert.Contains(t, view.View(), "catalog offline")
}

func TestView_NoProduct(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(80, 24)

	assert.Contains(t, view.View(), "No product selected")
}

func TestView_Scroll(t *testing.T) {
	view := NewView(nil, nil)
	view.SetDimensions(80, 10)
	view.SetProduct(superAdhesive())

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.scrollOffset)
	assert.Contains(t, view.View(), "[Line 2-")

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.scrollOffset)

	for i := 0; i < 50; i++ {
		view.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, view.maxScrollOffset(), view.scrollOffset)
}

func TestView_EscReturnsToProducts(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewProducts}, cmd())
}

func TestView_ZeroWidthRenders(t *testing.T) {
	view := NewView(nil, nil)

	assert.NotPanics(t, func() { _ = view.View() })
}
