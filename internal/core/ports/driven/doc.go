// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RecordRepository: Question and answer persistence (SQLite or memory)
//   - ProductCatalog: Product records and category ranges
//   - Vectorizer: Builds a term-weight model over the question corpus
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TranscriptParser: Without it, transcript ingestion is disabled.
//   - FlagReporter: Without it, flags are logged and dropped.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or driving package
package driven
