package driving

import (
	"context"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// IndexService exposes the corpus index lifecycle.
type IndexService interface {
	// Rebuild re-vectorizes the full corpus.
	Rebuild(ctx context.Context) (domain.IndexStats, error)

	// Stats describes the currently built model.
	Stats() domain.IndexStats
}
