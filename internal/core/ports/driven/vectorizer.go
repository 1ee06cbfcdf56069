package driven

import "github.com/custodia-labs/repdesk/internal/core/domain"

// Vectorizer builds a term-weighting model from an ordered corpus.
// For a fixed corpus Build must be deterministic.
type Vectorizer interface {
	// Name returns the identifier of this vectorizer implementation.
	Name() string

	// Build trains a model over corpus and returns it with one row
	// vector per input text, aligned by index.
	// Returns domain.ErrEmptyCorpus if corpus is empty.
	Build(corpus []string) (TermWeightModel, []domain.Vector, error)
}

// TermWeightModel projects text into the vector space learned at build time.
// A model is immutable; a corpus change replaces it wholesale.
type TermWeightModel interface {
	// Transform returns the vector for text. Terms outside the learned
	// vocabulary contribute zero weight.
	Transform(text string) domain.Vector

	// Dimension returns the vocabulary size.
	Dimension() int
}
