// Package addqa provides the add question-and-answer wizard for the TUI.
package addqa

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
)

// WizardStep tracks the current step in the wizard.
type WizardStep int

const (
	StepEnterRecord WizardStep = iota
	StepReviewSimilar
	StepComplete
)

// Field indexes of the record form.
const (
	fieldProduct = iota
	fieldQuestion
	fieldAnswer
	fieldExtra
	fieldCount
)

// extraSeparator splits the additional answers field.
const extraSeparator = "|"

// View is the add Q&A wizard view.
type View struct {
	styles *styles.Styles
	ingest driving.IngestService
	ctx    context.Context

	step       WizardStep
	inputs     []textinput.Model
	focusIndex int
	similar    []domain.RankedResult
	questionID int64

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new add Q&A view.
func NewView(s *styles.Styles, ingest driving.IngestService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	placeholders := []string{
		"Product item number, e.g. 1001",
		"The customer's question",
		"The answer you gave",
		"Additional answers, separated by |",
	}
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 1024
		ti.Width = 60
		inputs[i] = ti
	}
	inputs[fieldProduct].CharLimit = 20
	inputs[fieldProduct].Focus()

	return &View{
		styles: s,
		ingest: ingest,
		ctx:    context.Background(),
		inputs: inputs,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the add Q&A view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SimilarLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.similar = msg.Results
		if len(v.similar) == 0 {
			return v, v.addRecord()
		}
		v.step = StepReviewSimilar
		return v, nil

	case messages.RecordAdded:
		if msg.Err != nil {
			v.err = describeAddError(v.inputs[fieldProduct].Value(), msg.Err)
			v.step = StepEnterRecord
			return v, v.updateFocus()
		}
		v.err = nil
		v.questionID = msg.QuestionID
		v.step = StepComplete
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg dispatches key presses by wizard step.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.step {
	case StepEnterRecord:
		return v.handleRecordInput(msg)
	case StepReviewSimilar:
		switch msg.String() {
		case "enter", "y":
			return v, v.addRecord()
		case "esc", "n":
			v.step = StepEnterRecord
			return v, v.updateFocus()
		}
	case StepComplete:
		switch msg.String() {
		case "enter", "a":
			v.Reset()
			return v, v.updateFocus()
		case "esc":
			return v, toMenu
		}
	}
	return v, nil
}

//nolint:gocritic // evalOrder: bubbletea pattern returns cmd from method call
func (v *View) handleRecordInput(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, toMenu
	case "tab", "down":
		v.focusIndex = (v.focusIndex + 1) % fieldCount
		return v, v.updateFocus()
	case "shift+tab", "up":
		v.focusIndex = (v.focusIndex + fieldCount - 1) % fieldCount
		return v, v.updateFocus()
	case "enter":
		if err := v.validate(); err != nil {
			v.err = err
			return v, nil
		}
		v.err = nil
		return v, v.checkSimilar()
	default:
		var cmd tea.Cmd
		v.inputs[v.focusIndex], cmd = v.inputs[v.focusIndex].Update(msg)
		return v, cmd
	}
}

func toMenu() tea.Msg {
	return messages.ViewChanged{View: messages.ViewMenu}
}

func (v *View) updateFocus() tea.Cmd {
	cmds := make([]tea.Cmd, len(v.inputs))
	for i := range v.inputs {
		if i == v.focusIndex {
			cmds[i] = v.inputs[i].Focus()
		} else {
			v.inputs[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

// validate checks required fields. Product format is checked by the
// ingest service so batch and form entry reject the same records.
func (v *View) validate() error {
	labels := []string{"product", "question", "answer"}
	for i, label := range labels {
		if strings.TrimSpace(v.inputs[i].Value()) == "" {
			v.focusIndex = i
			v.updateFocus()
			return fmt.Errorf("%s is required", label)
		}
	}
	return nil
}

// record builds the ingest record from the form.
func (v *View) record() domain.IngestRecord {
	var extra []string
	for _, a := range strings.Split(v.inputs[fieldExtra].Value(), extraSeparator) {
		if a = strings.TrimSpace(a); a != "" {
			extra = append(extra, a)
		}
	}
	return domain.IngestRecord{
		ProductRef:        strings.TrimSpace(v.inputs[fieldProduct].Value()),
		QuestionText:      strings.TrimSpace(v.inputs[fieldQuestion].Value()),
		AnswerText:        strings.TrimSpace(v.inputs[fieldAnswer].Value()),
		AdditionalAnswers: extra,
		Origin:            "tui",
	}
}

// checkSimilar returns a command that looks for near-duplicate questions.
func (v *View) checkSimilar() tea.Cmd {
	question := v.record().QuestionText
	return func() tea.Msg {
		if v.ingest == nil {
			return messages.SimilarLoaded{Err: ErrNoIngestService}
		}
		results, err := v.ingest.SimilarQuestions(v.ctx, question)
		return messages.SimilarLoaded{Results: results, Err: err}
	}
}

// addRecord returns a command that stores the record.
func (v *View) addRecord() tea.Cmd {
	rec := v.record()
	return func() tea.Msg {
		if v.ingest == nil {
			return messages.RecordAdded{Err: ErrNoIngestService}
		}
		id, err := v.ingest.AddRecord(v.ctx, rec)
		return messages.RecordAdded{QuestionID: id, Err: err}
	}
}

// describeAddError turns an AddRecord failure into a rep-facing error.
func describeAddError(product string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("product '%s' not found", product)
	case errors.Is(err, domain.ErrAlreadyExists):
		return errors.New("this question already exists for the product")
	default:
		return err
	}
}

// View renders the add Q&A view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Add Q&A"))
	b.WriteString("\n\n")
	b.WriteString(v.renderProgress())
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	switch v.step {
	case StepEnterRecord:
		b.WriteString(v.renderForm())
	case StepReviewSimilar:
		b.WriteString(v.renderSimilar())
	case StepComplete:
		b.WriteString(v.renderComplete())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderProgress() string {
	names := []string{"Record", "Review", "Done"}
	parts := make([]string, len(names))
	for i, name := range names {
		switch {
		case i == int(v.step):
			parts[i] = v.styles.Selected.Render(name)
		case i < int(v.step):
			parts[i] = v.styles.Success.Render(name)
		default:
			parts[i] = v.styles.Muted.Render(name)
		}
	}
	return strings.Join(parts, " > ")
}

func (v *View) renderForm() string {
	labels := []string{"Product", "Question", "Answer", "Extra answers"}
	var b strings.Builder
	for i, label := range labels {
		style := v.styles.Muted
		if i == v.focusIndex {
			style = v.styles.Subtitle
		}
		b.WriteString(style.Render(fmt.Sprintf("%-14s", label+":")))
		b.WriteString(v.inputs[i].View())
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderSimilar() string {
	var b strings.Builder
	b.WriteString(v.styles.Warning.Render("Similar questions already on file:"))
	b.WriteString("\n\n")
	for _, r := range v.similar {
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  - %s (product %d, %.2f)",
			r.Question.Text, r.Question.ProductRef, r.Similarity)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("Add the new question anyway?"))
	b.WriteString("\n")
	return b.String()
}

func (v *View) renderComplete() string {
	var b strings.Builder
	b.WriteString(v.styles.Success.Render("New question and answer have been inserted successfully."))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Question ID: %d\n", v.questionID))
	return b.String()
}

func (v *View) renderHelp() string {
	switch v.step {
	case StepEnterRecord:
		return v.styles.Help.Render("[tab] next field  [enter] add  [esc] back")
	case StepReviewSimilar:
		return v.styles.Help.Render("[y/enter] add anyway  [n/esc] edit")
	case StepComplete:
		return v.styles.Help.Render("[a/enter] add another  [esc] back to menu")
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for i := range v.inputs {
		v.inputs[i].Width = max(20, width-20)
	}
}

// Reset clears the form.
func (v *View) Reset() {
	v.step = StepEnterRecord
	for i := range v.inputs {
		v.inputs[i].SetValue("")
	}
	v.focusIndex = 0
	v.similar = nil
	v.questionID = 0
	v.err = nil
}

// Step returns the current wizard step.
func (v *View) Step() WizardStep {
	return v.step
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
