package domain

import "time"

// IngestOptions configures a single ingestion walk.
type IngestOptions struct {
	// ChunkSize is the window length in tokens.
	ChunkSize int

	// Overlap is the number of tokens shared by consecutive windows.
	// Nil selects the configured overlap; a pointer to 0 asks for none.
	Overlap *int

	// Append keeps existing chunks from the same root instead of replacing them.
	Append bool
}

// SkipRecord describes an item the walk could not ingest.
type SkipRecord struct {
	// ItemID is the document store identifier.
	ItemID string

	// Name is the display name.
	Name string

	// MIMEType is the declared content type.
	MIMEType string

	// Reason is the error text.
	Reason string

	// Err is the underlying error, for errors.Is checks.
	Err error
}

// IngestSummary aggregates the outcome of one ingestion walk.
type IngestSummary struct {
	// Root is the root URI that was walked.
	Root string

	// Containers is the number of containers listed.
	Containers int

	// Ingested is the number of items that produced chunks.
	Ingested int

	// Skipped is the number of items that could not be ingested.
	Skipped int

	// Chunks is the number of chunks produced.
	Chunks int

	// Replaced is the number of previous chunks removed for this root.
	Replaced int

	// Skips lists every skipped item in walk order.
	Skips []SkipRecord

	// Duration is the wall time of the walk.
	Duration time.Duration
}

// AddSkip records a skipped item.
func (s *IngestSummary) AddSkip(r SkipRecord) {
	s.Skips = append(s.Skips, r)
	s.Skipped++
}

// BuildSummary aggregates the outcome of one index build.
type BuildSummary struct {
	// Total is the number of entries processed.
	Total int

	// Embedded is the number of entries that received a vector.
	Embedded int

	// Missing is the number of entries whose embedding failed.
	Missing int

	// Model is the embedding model used.
	Model string

	// Duration is the wall time of the build.
	Duration time.Duration
}
