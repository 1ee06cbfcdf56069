package domain

import "fmt"

// Default retrieval settings.
const (
	// DefaultSearchThreshold is the minimum similarity for general rep search.
	DefaultSearchThreshold = 0.2

	// DefaultSimilarThreshold is the minimum similarity for near-duplicate
	// suggestions when a rep adds a new question.
	DefaultSimilarThreshold = 0.3

	// DefaultPageSize is how many ranked results are shown at a time.
	DefaultPageSize = 3
)

// RetrievalSettings holds the tunable retrieval parameters.
type RetrievalSettings struct {
	// SearchThreshold applies to ask/shell/MCP queries.
	SearchThreshold float64

	// SimilarThreshold applies to duplicate suggestions on manual add.
	SimilarThreshold float64

	// PageSize is the number of results per page.
	PageSize int
}

// DefaultRetrievalSettings returns the built-in defaults.
func DefaultRetrievalSettings() RetrievalSettings {
	return RetrievalSettings{
		SearchThreshold:  DefaultSearchThreshold,
		SimilarThreshold: DefaultSimilarThreshold,
		PageSize:         DefaultPageSize,
	}
}

// Validate checks the settings are usable.
func (s RetrievalSettings) Validate() error {
	if s.SearchThreshold < 0 || s.SearchThreshold >= 1 {
		return fmt.Errorf("%w: search threshold %v outside [0,1)", ErrInvalidInput, s.SearchThreshold)
	}
	if s.SimilarThreshold < 0 || s.SimilarThreshold >= 1 {
		return fmt.Errorf("%w: similar threshold %v outside [0,1)", ErrInvalidInput, s.SimilarThreshold)
	}
	if s.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive", ErrInvalidInput)
	}
	return nil
}
