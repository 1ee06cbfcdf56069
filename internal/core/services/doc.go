// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The retrieval pipeline is:
//
//	RecordRepository -> Index (Vectorizer) -> Score/Rank -> Session
//
// Index owns the term-weight model, the row matrix and the corpus
// snapshot. Every repository write goes through Index.Mutate so the
// model is rebuilt before the next query can run.
//
// Services are pure Go with no CGO.
package services
