// Package domain defines the core business entities for repdesk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Question / Answer: the support knowledge corpus
//   - Vector: a sparse term-weight vector produced by a vectorizer
//   - Match / RankedResult: ranked retrieval output
//   - Product / CategoryPartition: the product catalog and its categories
//   - IngestRecord: a candidate Q&A pair from manual entry or a transcript
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
