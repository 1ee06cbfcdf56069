package driven

import (
	"context"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// FlagReporter hands flagged answers to a human reviewer out of band.
type FlagReporter interface {
	// Report records a flag for review.
	Report(ctx context.Context, flag domain.FlagReport) error
}
