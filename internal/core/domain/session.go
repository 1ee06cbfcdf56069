package domain

// SessionState is the state of one interactive query round.
type SessionState string

// Session states.
const (
	// SessionIdle is the resting state between query rounds.
	SessionIdle SessionState = "idle"

	// SessionAwaitingCategory waits for an optional category choice.
	SessionAwaitingCategory SessionState = "awaiting_category"

	// SessionAwaitingQuery waits for the question text.
	SessionAwaitingQuery SessionState = "awaiting_query"

	// SessionResultsShown holds a ranked result set that upvote and
	// flag commands act on.
	SessionResultsShown SessionState = "results_shown"
)

// String returns the string representation.
func (s SessionState) String() string {
	return string(s)
}
