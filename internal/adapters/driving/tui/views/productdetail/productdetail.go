// Package productdetail provides the product details view component for the TUI.
package productdetail

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
)

// View is the product details view.
type View struct {
	styles  *styles.Styles
	catalog driving.CatalogService
	ctx     context.Context

	product        *domain.Product
	alternative    string
	boughtTogether string
	scrollOffset   int
	width          int
	height         int
	ready          bool
	err            error
}

// NewView creates a new product details view.
func NewView(s *styles.Styles, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		catalog: catalog,
		ctx:     context.Background(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetProduct sets the product to display and loads email suggestions for it.
func (v *View) SetProduct(p domain.Product) tea.Cmd {
	v.product = &p
	v.alternative = ""
	v.boughtTogether = ""
	v.scrollOffset = 0
	v.err = nil
	return v.loadSuggestions(p.SKU)
}

// loadSuggestions returns a command that builds customer-email suggestions.
func (v *View) loadSuggestions(sku string) tea.Cmd {
	return func() tea.Msg {
		if v.catalog == nil {
			return messages.SuggestionsLoaded{SKU: sku}
		}
		alt, err := v.catalog.AlternativeSuggestion(v.ctx, sku)
		if err != nil {
			return messages.SuggestionsLoaded{SKU: sku, Err: err}
		}
		together, err := v.catalog.BoughtTogetherSuggestion(v.ctx, sku)
		if err != nil {
			return messages.SuggestionsLoaded{SKU: sku, Err: err}
		}
		return messages.SuggestionsLoaded{SKU: sku, Alternative: alt, BoughtTogether: together}
	}
}

// SetError sets an error to display.
func (v *View) SetError(err error) {
	v.err = err
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the product details view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SuggestionsLoaded:
		if v.product == nil || msg.SKU != v.product.SKU {
			return v, nil
		}
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.alternative = msg.Alternative
		v.boughtTogether = msg.BoughtTogether
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewProducts}
		}
	}

	return v, nil
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, separator, help, and padding
	available := v.height - 6
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	maxOffset := len(v.buildContent()) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// buildContent builds the content lines for display.
func (v *View) buildContent() []string {
	if v.product == nil {
		return nil
	}
	p := v.product

	lines := []string{
		v.formatField("SKU", p.SKU),
		v.formatField("Name", p.Name),
		v.formatField("Brand", p.Brand),
		v.formatField("Product ID", fmt.Sprintf("%d", p.ID)),
		v.formatField("Category", p.Category),
		v.formatField("Price", p.Price),
		v.formatField("Stock", fmt.Sprintf("%d (%s)", p.Stock, p.StockLevel())),
		v.formatField("Rating", fmt.Sprintf("%.1f", p.Rating)),
	}
	if p.Description != "" {
		lines = append(lines, "", "Description:", "  "+p.Description)
	}
	if len(p.Alternatives) > 0 {
		lines = append(lines, "", "Alternatives:", "  "+strings.Join(p.Alternatives, ", "))
	}
	if len(p.FrequentlyBoughtTogether) > 0 {
		lines = append(lines, "", "Bought together:", "  "+strings.Join(p.FrequentlyBoughtTogether, ", "))
	}
	if v.alternative != "" || v.boughtTogether != "" {
		lines = append(lines, "", "Suggested text for customer email:")
		if v.alternative != "" {
			lines = append(lines, "  "+v.alternative)
		}
		if v.boughtTogether != "" {
			lines = append(lines, "  "+v.boughtTogether)
		}
	}
	return lines
}

// formatField formats a field for display.
func (v *View) formatField(label, value string) string {
	return fmt.Sprintf("%-12s %s", label+":", value)
}

// View renders the product details view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Product Details"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(0, minInt(v.width-4, 60))))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.product == nil {
		b.WriteString(v.styles.Muted.Render("No product selected"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	lines := v.buildContent()
	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderLine(lines[i]))
		b.WriteString("\n")
	}

	if len(lines) > visible {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1,
			minInt(v.scrollOffset+visible, len(lines)),
			len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderLine styles a content line by its shape.
func (v *View) renderLine(line string) string {
	switch {
	case strings.HasSuffix(line, ":") && !strings.HasPrefix(line, " "):
		return v.styles.Subtitle.Render(line)
	case strings.HasPrefix(line, "  "):
		return v.styles.Normal.Render(line)
	case strings.Contains(line, ":"):
		parts := strings.SplitN(line, ":", 2)
		return v.styles.Subtitle.Render(parts[0]+":") + v.styles.Normal.Render(parts[1])
	default:
		return v.styles.Normal.Render(line)
	}
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Product returns the product on screen.
func (v *View) Product() *domain.Product {
	return v.product
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
