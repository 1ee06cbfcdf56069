// Package products provides the product lookup view for the TUI.
package products

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
)

// View is the product lookup view.
type View struct {
	styles  *styles.Styles
	catalog driving.CatalogService
	ctx     context.Context

	input      *input.Field
	products   []domain.Product
	query      string
	selected   int
	focusInput bool
	loading    bool
	width      int
	height     int
	ready      bool
	err        error
}

// NewView creates a new product lookup view.
func NewView(s *styles.Styles, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:     s,
		catalog:    catalog,
		ctx:        context.Background(),
		input:      input.NewField(s, "Product: ", "SKU or keyword, e.g. UB12345 or respirator"),
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// lookup returns a command that searches the catalog.
func (v *View) lookup(query string) tea.Cmd {
	return func() tea.Msg {
		if v.catalog == nil {
			return messages.ProductsLoaded{Query: query, Err: ErrNoCatalog}
		}
		products, err := v.catalog.Lookup(v.ctx, query)
		return messages.ProductsLoaded{Query: query, Products: products, Err: err}
	}
}

// Update handles messages for the product lookup view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ProductsLoaded:
		v.loading = false
		v.query = msg.Query
		if msg.Err != nil {
			v.err = msg.Err
			v.products = nil
			return v, nil
		}
		v.err = nil
		v.products = msg.Products
		v.selected = 0
		if len(v.products) > 0 {
			v.focusInput = false
			v.input.Blur()
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			query := strings.TrimSpace(v.input.Value())
			if query == "" {
				return v, nil
			}
			v.loading = true
			return v, v.lookup(query)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.products)-1 {
			v.selected++
		}
	case "/", "n":
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	case "enter":
		if v.selected < len(v.products) {
			p := v.products[v.selected]
			return v, func() tea.Msg {
				return messages.ProductSelected{Product: p}
			}
		}
	}
	return v, nil
}

// View renders the product lookup view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Product Lookup"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Looking up..."))
		b.WriteString("\n\n")
	case v.query != "" && len(v.products) == 0:
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("No products found for %q.", v.query)))
		b.WriteString("\n\n")
	}

	for i, p := range v.products {
		line := fmt.Sprintf("%-12s %-40s %s", p.SKU, p.Name, p.Price)
		if i == v.selected && !v.focusInput {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	if v.focusInput {
		return v.styles.Help.Render("[enter] look up  [esc] back")
	}
	return v.styles.Help.Render("[j/k] navigate  [enter] details  [/] new lookup  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}

// Reset clears the lookup.
func (v *View) Reset() {
	v.input.SetValue("")
	v.focusInput = true
	v.input.Focus()
	v.products = nil
	v.query = ""
	v.selected = 0
	v.err = nil
	v.loading = false
}

// Products returns the products on screen.
func (v *View) Products() []domain.Product {
	return v.products
}

// Selected returns the selected product index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
