package driving

import (
	"context"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// IngestService adds new Q&A pairs to the corpus.
// Every accepted record is stored and the index rebuilt before
// the next query can run.
type IngestService interface {
	// AddRecord validates and stores one record. Returns the question id.
	AddRecord(ctx context.Context, rec domain.IngestRecord) (int64, error)

	// IngestBatch stores every valid record; invalid ones are reported
	// in the result and do not abort the batch.
	IngestBatch(ctx context.Context, recs []domain.IngestRecord) (domain.IngestReport, error)

	// IngestTranscript parses a transcript file and ingests its records.
	IngestTranscript(ctx context.Context, path string) (domain.IngestReport, error)

	// SimilarQuestions lists stored questions close to text, used to
	// warn about near-duplicates before adding.
	SimilarQuestions(ctx context.Context, text string) ([]domain.RankedResult, error)
}

// SeedService loads demo data.
type SeedService interface {
	// Seed stores the demo catalog and Q&A pairs. Existing records are kept.
	Seed(ctx context.Context) (domain.IngestReport, error)
}
