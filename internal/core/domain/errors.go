package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Retrieval Errors.

	// ErrEmptyCorpus indicates a model build was attempted with no questions.
	// Callers report it as a "no data" state rather than a failure.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrPrimaryAnswer indicates an operation that only applies to
	// additional answers was attempted on a primary answer.
	ErrPrimaryAnswer = errors.New("primary answers cannot be voted on or flagged")

	// ErrPrimaryExists indicates a second primary answer was inserted for a question.
	ErrPrimaryExists = errors.New("question already has a primary answer")

	// ErrNoResults indicates a paging request was made before any query ran.
	ErrNoResults = errors.New("no results to page through")

	// ErrInvalidTransition indicates a session command that is not valid
	// in the session's current state.
	ErrInvalidTransition = errors.New("invalid session transition")

	// Ingestion Errors.

	// ErrMalformedRecord indicates an ingested record failed validation,
	// e.g. a non-numeric product reference.
	ErrMalformedRecord = errors.New("malformed record")
)

// RecordError describes why a single record in a batch was rejected.
type RecordError struct {
	// Index is the position of the record within the batch.
	Index int

	// Record is the rejected record.
	Record IngestRecord

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RecordError) Unwrap() error {
	return e.Err
}
