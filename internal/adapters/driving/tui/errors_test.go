package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingSession,
		ErrMissingCatalogService,
		ErrInvalidPorts,
	}

	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingSession_Message(t *testing.T) {
	assert.Contains(t, ErrMissingSession.Error(), "retrieval session")
}

func TestErrMissingCatalogService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingCatalogService.Error(), "catalog service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
