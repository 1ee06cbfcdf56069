// Package sqlite provides a SQLite-based implementation of the record
// repository and the product catalog.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Both stores share a single database
// connection:
//
//   - RecordRepository: Questions, answers and upvotes
//   - ProductCatalog: Products and category ranges
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// A partial unique index on answers enforces at most one primary answer per question.
//
// # Data Location
//
// By default, the database is stored at ~/.repdesk/data/repdesk.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
