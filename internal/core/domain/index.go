package domain

import "time"

// IndexEntry pairs a chunk with its embedding vector.
// A nil Vector means the embedding is missing: either the index has not been
// built since the entry was added, or the embedding call failed for it.
type IndexEntry struct {
	// Chunk is the retrievable passage.
	Chunk Chunk

	// Vector is the chunk's embedding, or nil when missing.
	Vector []float32
}

// HasVector reports whether the entry carries a usable embedding.
func (e IndexEntry) HasVector() bool {
	return len(e.Vector) > 0
}

// Index is the versioned chunk collection. Every chunk lives in an entry
// next to its own vector, so chunks and vectors cannot drift out of
// alignment. Version counts chunk mutations; vectors are only trusted when
// they were built at the current Version.
type Index struct {
	// Version is incremented on every chunk mutation.
	Version uint64

	// IndexedVersion is the Version at which vectors were last built.
	// Zero means vectors have never been built.
	IndexedVersion uint64

	// Model is the embedding model that produced the vectors.
	Model string

	// Dimensions is the vector size reported by the embedding model.
	Dimensions int

	// BuiltAt is when vectors were last built.
	BuiltAt time.Time

	// Entries is the ordered chunk collection.
	Entries []IndexEntry
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	return len(ix.Entries)
}

// IsEmpty reports whether the index holds no chunks.
func (ix *Index) IsEmpty() bool {
	return len(ix.Entries) == 0
}

// Chunks returns the chunks in collection order.
func (ix *Index) Chunks() []Chunk {
	chunks := make([]Chunk, len(ix.Entries))
	for i, e := range ix.Entries {
		chunks[i] = e.Chunk
	}
	return chunks
}

// Append adds chunks to the end of the collection without vectors.
func (ix *Index) Append(chunks []Chunk) {
	for _, c := range chunks {
		ix.Entries = append(ix.Entries, IndexEntry{Chunk: c})
	}
	ix.Version++
}

// ReplaceRoot removes every entry ingested under root and appends chunks.
// It returns the number of entries removed.
func (ix *Index) ReplaceRoot(root string, chunks []Chunk) int {
	kept := ix.Entries[:0]
	removed := 0
	for _, e := range ix.Entries {
		if e.Chunk.Root == root {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	// Zero the tail so dropped vectors can be collected.
	for i := len(kept); i < len(ix.Entries); i++ {
		ix.Entries[i] = IndexEntry{}
	}
	ix.Entries = kept
	ix.Append(chunks)
	return removed
}

// Clear removes every entry.
func (ix *Index) Clear() {
	ix.Entries = nil
	ix.Version++
	ix.ClearVectors()
}

// ClearVectors drops all vectors and marks the index as never built.
// An aborted build calls this so a partial rebuild reads as absent.
func (ix *Index) ClearVectors() {
	for i := range ix.Entries {
		ix.Entries[i].Vector = nil
	}
	ix.IndexedVersion = 0
	ix.Model = ""
	ix.Dimensions = 0
	ix.BuiltAt = time.Time{}
}

// Stale reports whether chunks changed since vectors were last built.
func (ix *Index) Stale() bool {
	return ix.IndexedVersion != ix.Version
}

// VectorsUsable reports whether vector search may run against the index
// for the given embedding model. An empty model skips the model check.
func (ix *Index) VectorsUsable(model string) bool {
	if ix.IndexedVersion == 0 || ix.Stale() {
		return false
	}
	if model != "" && ix.Model != model {
		return false
	}
	present, _ := ix.VectorCounts()
	return present > 0
}

// VectorCounts returns the number of entries with and without vectors.
func (ix *Index) VectorCounts() (present, missing int) {
	for _, e := range ix.Entries {
		if e.HasVector() {
			present++
		} else {
			missing++
		}
	}
	return present, missing
}

// Clone returns a deep copy of the index. Vectors are shared because
// entries never mutate a vector in place.
func (ix *Index) Clone() *Index {
	c := *ix
	c.Entries = make([]IndexEntry, len(ix.Entries))
	copy(c.Entries, ix.Entries)
	return &c
}

// Status summarises the index for display.
func (ix *Index) Status() IndexStatus {
	present, missing := ix.VectorCounts()
	return IndexStatus{
		Entries:        len(ix.Entries),
		Vectors:        present,
		MissingVectors: missing,
		Version:        ix.Version,
		IndexedVersion: ix.IndexedVersion,
		Stale:          ix.Stale(),
		Model:          ix.Model,
		Dimensions:     ix.Dimensions,
		BuiltAt:        ix.BuiltAt,
		Sources:        ix.sourceCount(),
	}
}

func (ix *Index) sourceCount() int {
	seen := make(map[string]struct{})
	for _, e := range ix.Entries {
		seen[e.Chunk.Root+"\x00"+e.Chunk.ItemID] = struct{}{}
	}
	return len(seen)
}

// IndexStatus is a read-only view of index health.
type IndexStatus struct {
	// Entries is the number of chunks.
	Entries int

	// Vectors is the number of chunks with an embedding.
	Vectors int

	// MissingVectors is the number of chunks without an embedding.
	MissingVectors int

	// Version is the current chunk-mutation counter.
	Version uint64

	// IndexedVersion is the Version vectors were built at.
	IndexedVersion uint64

	// Stale is true when chunks changed since the last build.
	Stale bool

	// Model is the embedding model of the last build.
	Model string

	// Dimensions is the vector size of the last build.
	Dimensions int

	// BuiltAt is when vectors were last built.
	BuiltAt time.Time

	// Sources is the number of distinct ingested items.
	Sources int
}
