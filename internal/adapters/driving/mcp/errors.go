// Package mcp provides an MCP (Model Context Protocol) server adapter for repdesk.
// It lets AI assistants answer customer questions from the support corpus.
package mcp

import "errors"

var (
	// ErrMissingSessions is returned when the session provider is not provided.
	ErrMissingSessions = errors.New("mcp: session provider is required")

	// ErrMissingCatalog is returned when the catalog service is not provided.
	ErrMissingCatalog = errors.New("mcp: catalog service is required")
)
