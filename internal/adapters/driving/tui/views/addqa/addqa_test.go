package addqa

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// stubIngest implements driving.IngestService for testing.
type stubIngest struct {
	similar []domain.RankedResult
	addErr  error
	added   []domain.IngestRecord
}

func (s *stubIngest) AddRecord(_ context.Context, rec domain.IngestRecord) (int64, error) {
	if s.addErr != nil {
		return 0, s.addErr
	}
	s.added = append(s.added, rec)
	return int64(len(s.added) + 40), nil
}

func (s *stubIngest) IngestBatch(context.Context, []domain.IngestRecord) (domain.IngestReport, error) {
	return domain.IngestReport{}, nil
}

func (s *stubIngest) IngestTranscript(context.Context, string) (domain.IngestReport, error) {
	return domain.IngestReport{}, nil
}

func (s *stubIngest) SimilarQuestions(context.Context, string) ([]domain.RankedResult, error) {
	return s.similar, nil
}

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func tab(v *View) {
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
}

// fillForm enters a full record into the form.
func fillForm(v *View, extra string) {
	typeText(v, "1001")
	tab(v)
	typeText(v, "Can I paint over it?")
	tab(v)
	typeText(v, "Yes, after 24 hours.")
	tab(v)
	typeText(v, extra)
}

// submit presses enter, then feeds the similar-question check and the
// add back into the view.
func submit(t *testing.T, v *View) {
	t.Helper()
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		return
	}
	_, cmd = v.Update(cmd())
	if cmd == nil || v.Step() != StepEnterRecord || v.Err() != nil {
		return
	}
	v.Update(cmd())
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.Equal(t, StepEnterRecord, view.Step())
	assert.Len(t, view.inputs, fieldCount)
	assert.True(t, view.inputs[fieldProduct].Focused())
	assert.NotNil(t, view.Init())
}

func TestView_AddWithoutSimilar(t *testing.T) {
	ingest := &stubIngest{}
	view := NewView(nil, ingest)
	view.SetDimensions(100, 30)
	fillForm(view, "Use a primer | Sand lightly |  ")

	submit(t, view)

	require.Len(t, ingest.added, 1)
	rec := ingest.added[0]
	assert.Equal(t, "1001", rec.ProductRef)
	assert.Equal(t, "Can I paint over it?", rec.QuestionText)
	assert.Equal(t, "Yes, after 24 hours.", rec.AnswerText)
	assert.Equal(t, []string{"Use a primer", "Sand lightly"}, rec.AdditionalAnswers)
	assert.Equal(t, "tui", rec.Origin)

	assert.Equal(t, StepComplete, view.Step())
	assert.Contains(t, view.View(), "Question ID: 41")
}

func TestView_ReviewSimilar(t *testing.T) {
	ingest := &stubIngest{similar: []domain.RankedResult{{
		Question:   domain.Question{ID: 3, Text: "Can it be painted?", ProductRef: 1001},
		Similarity: 0.62,
	}}}
	view := NewView(nil, ingest)
	view.SetDimensions(100, 30)
	fillForm(view, "")

	submit(t, view)

	assert.Equal(t, StepReviewSimilar, view.Step())
	assert.Empty(t, ingest.added)
	assert.Contains(t, view.View(), "Can it be painted? (product 1001, 0.62)")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	view.Update(cmd())

	assert.Len(t, ingest.added, 1)
	assert.Nil(t, ingest.added[0].AdditionalAnswers)
	assert.Equal(t, StepComplete, view.Step())
}

func TestView_ReviewSimilar_BackToEdit(t *testing.T) {
	ingest := &stubIngest{similar: []domain.RankedResult{{Question: domain.Question{Text: "dup"}}}}
	view := NewView(nil, ingest)
	fillForm(view, "")
	submit(t, view)

	view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, StepEnterRecord, view.Step())
	assert.Empty(t, ingest.added)
}

func TestView_RequiredFields(t *testing.T) {
	view := NewView(nil, &stubIngest{})
	typeText(view, "1001")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.EqualError(t, view.Err(), "question is required")
	assert.Equal(t, fieldQuestion, view.focusIndex)
}

func TestView_AddErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unknown product", fmt.Errorf("product 1001: %w", domain.ErrNotFound), "product '1001' not found"},
		{"duplicate", domain.ErrAlreadyExists, "this question already exists for the product"},
		{"malformed", fmt.Errorf("%w: product ref", domain.ErrMalformedRecord), "malformed record: product ref"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(nil, &stubIngest{addErr: tt.err})
			fillForm(view, "")

			submit(t, view)

			assert.Equal(t, StepEnterRecord, view.Step())
			assert.EqualError(t, view.Err(), tt.want)
		})
	}
}

func TestView_FocusCycles(t *testing.T) {
	view := NewView(nil, nil)

	view.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldExtra, view.focusIndex)

	tab(view)
	assert.Equal(t, fieldProduct, view.focusIndex)
	assert.True(t, view.inputs[fieldProduct].Focused())
	assert.False(t, view.inputs[fieldExtra].Focused())
}

func TestView_CompleteAddAnother(t *testing.T) {
	view := NewView(nil, &stubIngest{})
	fillForm(view, "")
	submit(t, view)
	require.Equal(t, StepComplete, view.Step())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	assert.Equal(t, StepEnterRecord, view.Step())
	assert.Equal(t, "", view.inputs[fieldQuestion].Value())
}

func TestView_EscToMenu(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_NoIngestService(t *testing.T) {
	view := NewView(nil, nil)
	fillForm(view, "")

	submit(t, view)

	assert.ErrorIs(t, view.Err(), ErrNoIngestService)
}
