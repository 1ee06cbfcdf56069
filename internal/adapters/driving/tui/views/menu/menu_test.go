package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/styles"
)

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Len(t, view.Items(), 6)
	assert.Equal(t, 0, view.selected)
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_Init(t *testing.T) {
	assert.Nil(t, NewView(nil).Init())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}

func TestView_Update_Navigate(t *testing.T) {
	view := NewView(nil)

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.selected)

	j := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	for range 10 {
		view.Update(j)
	}
	assert.Equal(t, 5, view.selected)

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 4, view.selected)

	k := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	for range 10 {
		view.Update(k)
	}
	assert.Equal(t, 0, view.selected)
}

func TestView_Update_Enter(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		want     messages.ViewType
	}{
		{"ask", 0, messages.ViewAsk},
		{"products", 1, messages.ViewProducts},
		{"add qa", 2, messages.ViewAddQA},
		{"settings", 3, messages.ViewSettings},
		{"help", 4, messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(nil)
			view.selected = tt.selected

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

			require.NotNil(t, cmd)
			changed, ok := cmd().(messages.ViewChanged)
			require.True(t, ok)
			assert.Equal(t, tt.want, changed.View)
		})
	}
}

func TestView_Update_NumberShortcut(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})

	require.NotNil(t, cmd)
	assert.Equal(t, 2, view.selected)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewAddQA}, cmd())
}

func TestView_Update_Quit(t *testing.T) {
	view := NewView(nil)
	view.selected = 5

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestView_View_NotReady(t *testing.T) {
	assert.Contains(t, NewView(nil).View(), "Initialising")
}

func TestView_View_Ready(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "repdesk")
	assert.Contains(t, output, "Customer Support Q&A")
	assert.Contains(t, output, "Ask a question")
	assert.Contains(t, output, "Product lookup")
	assert.Contains(t, output, "Add Q&A")
	assert.Contains(t, output, "Find answers to a customer question")
	assert.Contains(t, output, ">")
}

func TestView_View_NarrowHidesDescriptions(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(40, 24)

	output := view.View()

	assert.Contains(t, output, "Ask a question")
	assert.NotContains(t, output, "Find answers to a customer question")
}

func TestView_Selected(t *testing.T) {
	view := NewView(nil)
	view.selected = 2

	assert.Equal(t, 2, view.Selected())
}

func TestMenuItem_Properties(t *testing.T) {
	items := NewView(nil).Items()

	for _, item := range items[:5] {
		assert.False(t, item.Quit, item.Label)
	}
	assert.Equal(t, "Quit", items[5].Label)
	assert.True(t, items[5].Quit)
}
