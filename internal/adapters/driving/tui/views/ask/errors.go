package ask

import "errors"

// Error definitions for the ask view.
var (
	// ErrNoSession indicates that no retrieval session was provided.
	ErrNoSession = errors.New("retrieval session is required")
)
