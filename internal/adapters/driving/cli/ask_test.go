package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

func TestAskCmd_RequiresQuestion(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "", "ask")

	assert.Error(t, err)
}

func TestAskCmd_ShowsRankedAnswers(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "ask", "adhesive", "dry")

	require.NoError(t, err)
	assert.Contains(t, out, "Results:")
	assert.Contains(t, out, "[1] How long does the adhesive take to dry?")
	assert.Contains(t, out, "Answer: About 24 hours at room temperature.")
	assert.Contains(t, out, "#2 Faster in a warm room. (+0)")
	assert.Contains(t, out, "(adhesives)")
	assert.NotContains(t, out, "Is the sealant waterproof?")
}

func TestAskCmd_CategoryFilter(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "ask", "--category", "sealants", "adhesive", "dry")

	require.NoError(t, err)
	assert.Contains(t, out, msgNoMatches)
}

func TestAskCmd_NoMatches(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "ask", "invoice", "refund")

	require.NoError(t, err)
	assert.Contains(t, out, msgNoMatches)
}

func TestAskCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "ask", "--json", "waterproof", "sealant")

	require.NoError(t, err)
	assert.Contains(t, out, `"Is the sealant waterproof?"`)
	assert.Contains(t, out, `"Safe for showers and sinks."`)
}

func TestAskCmd_ThresholdOverride(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "", "ask", "--threshold", "0.99", "adhesive", "dry")
	require.NoError(t, err)
	assert.Contains(t, out, msgNoMatches)

	_, err = executeCommand(t, "", "ask", "--threshold=-0.5", "adhesive", "dry")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAskCmd_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := executeCommand(t, "", "ask", "anything")

	assert.Error(t, err)
}

func TestParseAnswerID(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"12", 12, false},
		{" 7 ", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAnswerID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
