package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// TranscriptParser extracts candidate Q&A records from a call transcript.
// Its heuristics are its own business; the core only sees records.
type TranscriptParser interface {
	// Parse reads a transcript and returns the records found in it.
	// name identifies the source in record origins.
	Parse(ctx context.Context, name string, r io.Reader) ([]domain.IngestRecord, error)
}
