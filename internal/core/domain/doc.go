// Package domain defines the core entities for grokpedia.
//
// This package is the innermost layer of the hexagonal architecture.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk: a bounded window of document text tagged with its source
//   - Index: the versioned collection of chunks and their optional vectors
//   - Item and RawDocument: what a document store lists and reads
//   - IngestSummary and BuildSummary: per-run outcomes
//   - SearchResult and AssembledContext: retrieval output
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
