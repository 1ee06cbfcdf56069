package driving

import (
	"context"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

// RetrievalSession answers rep questions and manages interactions with
// the ranked result set the rep is currently viewing.
type RetrievalSession interface {
	// State returns the current state of the query round.
	State() domain.SessionState

	// Begin starts a query round: Idle or ResultsShown -> AwaitingCategory.
	Begin() error

	// ChooseCategory selects an optional category filter:
	// AwaitingCategory -> AwaitingQueryText. Empty name means all categories.
	ChooseCategory(ctx context.Context, name string) error

	// Submit runs the query text. Blank text ends the round (-> Idle).
	Submit(ctx context.Context, text string) (domain.ResultPage, error)

	// Reset returns the session to Idle and drops retained results.
	Reset()

	// Query ranks the corpus against text and retains the full ranking.
	Query(ctx context.Context, text string, opts domain.QueryOptions) ([]domain.RankedResult, error)

	// Page returns the current page of the retained ranking.
	Page() domain.ResultPage

	// Next advances to the following page of the retained ranking.
	Next() (domain.ResultPage, error)

	// Upvote adds one vote to an additional answer and returns the new count.
	Upvote(ctx context.Context, answerID int64) (int, error)

	// Flag reports an additional answer to a human reviewer.
	Flag(ctx context.Context, answerID int64, reason string) (*domain.FlagReport, error)

	// Category returns the active category filter, if any.
	Category() string
}

// SessionProvider hands out per-client retrieval sessions.
type SessionProvider interface {
	// Open returns the session for id, creating it if needed.
	// An empty id creates a new session with a generated id.
	Open(id string) (string, RetrievalSession)
}
