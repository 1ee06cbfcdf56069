// Package tui provides an interactive terminal user interface for repdesk.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session answers questions and records votes and flags.
	Session driving.RetrievalSession

	// Catalog looks up products and builds email suggestions.
	Catalog driving.CatalogService

	// Ingest adds question-and-answer records.
	Ingest driving.IngestService

	// Index reports whether the corpus has any data.
	Index driving.IndexService

	// Settings manages retrieval settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(session driving.RetrievalSession, catalog driving.CatalogService) *Ports {
	return &Ports{
		Session: session,
		Catalog: catalog,
	}
}

// Validate ensures all required ports are set.
// Ingest, Index and Settings are optional; their views report the gap.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSession
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
