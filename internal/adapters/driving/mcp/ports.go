package mcp

import (
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Sessions hands out one retrieval session per client.
	Sessions driving.SessionProvider

	// Catalog answers product questions.
	Catalog driving.CatalogService

	// Ingest adds new Q&A records. Optional; add_qa is not registered without it.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Sessions == nil {
		return ErrMissingSessions
	}
	if p.Catalog == nil {
		return ErrMissingCatalog
	}
	return nil
}
