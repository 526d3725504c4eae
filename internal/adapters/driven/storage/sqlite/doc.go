// Package sqlite provides the SQLite implementation of driven.IndexStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files. Entries are stored in collection order with the vector as a
// little-endian float32 BLOB next to its chunk; the single index_meta row
// carries Version, IndexedVersion and the embedding model.
//
// # Data Location
//
// By default, the database is stored at ~/.grokpedia/data/index.db
//
// # Thread Safety
//
// Save replaces the whole snapshot in one transaction, so a reader never
// observes a half-written index. SQLite runs in WAL mode.
package sqlite
