package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shellInput(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestShellCmd_LookupRound(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, shellInput(
		"q", "", "adhesive dry",
		"u 2", "u 1", "f 3 not needed", "n", "",
		"exit",
	), "shell")

	require.NoError(t, err)
	assert.Contains(t, out, "[1] How long does the adhesive take to dry?")
	assert.Contains(t, out, "Answer 2 now has 1 votes.")
	assert.Contains(t, out, "answer 1 is a primary answer")
	assert.Contains(t, out, "Answer 3 flagged for review.")
	assert.Contains(t, out, "No more results.")
}

func TestShellCmd_CategoryFilter(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, shellInput("q", "sealants", "adhesive dry", "", "exit"), "shell")

	require.NoError(t, err)
	assert.Contains(t, out, msgNoMatches)
}

func TestShellCmd_UnknownCategory(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, shellInput("q", "hammers", "exit"), "shell")

	require.NoError(t, err)
	assert.Contains(t, out, "unknown category")
}

func TestShellCmd_BlankQuestionReturnsToMenu(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, shellInput("q", "", "", "exit"), "shell")

	require.NoError(t, err)
	assert.NotContains(t, out, "Results")
	assert.NotContains(t, out, "Invalid command")
}

func TestShellCmd_Add(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, shellInput(
		"a", "Does the sealant stick to glass?", "Yes, on clean glass.", "1002",
		"a", "Does the sealant stick to glass?", "Yes.", "1002",
		"a", "Is it food safe?", "No.", "77",
		"exit",
	), "shell")

	require.NoError(t, err)
	assert.Contains(t, out, "New question and answer have been inserted successfully.")
	assert.Contains(t, out, "This question already exists for the product.")
	assert.Contains(t, out, "Product '77' not found!")
}

func TestShellCmd_ProductLookup(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, shellInput("p", "glue", "p", "hammer", "exit"), "shell")

	require.NoError(t, err)
	assert.Contains(t, out, "Super Adhesive (ADH1001)")
	assert.Contains(t, out, "No products found matching 'hammer'.")
}

func TestShellCmd_InvalidCommand(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, shellInput("x", "exit"), "shell")

	require.NoError(t, err)
	assert.Contains(t, out, "Invalid command. Please try again.")
}

func TestShellCmd_EndOfInput(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "q\n", "shell")

	assert.NoError(t, err)
}
