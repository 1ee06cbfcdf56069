// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// ResultList displays one page of ranked questions in a navigable list.
type ResultList struct {
	results  []domain.RankedResult
	offset   int
	total    int
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)*4+2)
	header := r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", r.total))
	lines = append(lines, header, "")

	for i := range r.results {
		lines = append(lines, r.renderResult(i, &r.results[i]), "")
	}
	if more := r.total - r.offset - len(r.results); more > 0 {
		lines = append(lines, r.styles.Muted.Render(fmt.Sprintf("...and %d more results.", more)))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats a matched question with its answers.
func (r *ResultList) renderResult(index int, result *domain.RankedResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := truncate(result.Question.Text, r.width-20)
	number := fmt.Sprintf("[%d] ", r.offset+index+1)
	score := fmt.Sprintf("%.2f", result.Similarity)

	var b strings.Builder
	if index == r.selected {
		b.WriteString(r.styles.Selected.Render(indicator + number + title))
	} else {
		b.WriteString(r.styles.Normal.Render(indicator + number + title))
	}
	b.WriteString("  ")
	b.WriteString(r.styles.Similarity(result.Similarity).Render(score))

	product := fmt.Sprintf("    Product %d", result.Question.ProductRef)
	if result.Question.Category != "" {
		product += " · " + result.Question.Category
	}
	b.WriteString("\n")
	b.WriteString(r.styles.Muted.Render(product))

	if result.PrimaryAnswer != nil {
		b.WriteString("\n")
		b.WriteString(r.styles.Answer.Render(truncate("Answer: "+result.PrimaryAnswer.Text, r.width-6)))
	}
	for _, a := range result.AdditionalAnswers {
		b.WriteString("\n")
		b.WriteString(r.styles.Answer.Render(truncate(fmt.Sprintf("#%d %s", a.ID, a.Text), r.width-14)))
		b.WriteString(" ")
		b.WriteString(r.styles.Votes.Render(fmt.Sprintf("(+%d)", a.Upvotes)))
	}

	return b.String()
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, limit int) string {
	if limit < 10 {
		limit = 10
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// SetPage replaces the list with a page of the retained ranking.
func (r *ResultList) SetPage(page domain.ResultPage) {
	r.results = page.Results
	r.offset = page.Offset
	r.total = page.Total
	r.selected = 0
}

// Results returns the results on screen.
func (r *ResultList) Results() []domain.RankedResult {
	return r.results
}

// Offset returns the rank of the first result on screen, from zero.
func (r *ResultList) Offset() int {
	return r.offset
}

// Total returns the size of the full ranking.
func (r *ResultList) Total() int {
	return r.total
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.RankedResult {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// SetVotes updates the displayed vote count of an additional answer.
// It reports whether the answer is on screen.
func (r *ResultList) SetVotes(answerID int64, votes int) bool {
	for i := range r.results {
		for j := range r.results[i].AdditionalAnswers {
			if r.results[i].AdditionalAnswers[j].ID == answerID {
				r.results[i].AdditionalAnswers[j].Upvotes = votes
				return true
			}
		}
	}
	return false
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results on screen.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
