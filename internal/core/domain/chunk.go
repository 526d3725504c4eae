package domain

// Chunk is a bounded window of a document's text, tagged with the display
// name of the item it came from. It is the unit of retrieval and is never
// modified after creation.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Text is the window content, tokens joined by single spaces.
	Text string

	// Source is the display name of the item the chunk was extracted from.
	Source string

	// Root is the root URI the item was ingested under.
	// Re-ingesting a root replaces every chunk carrying it.
	Root string

	// ItemID is the document store identifier of the item.
	ItemID string

	// Position is the ordinal position within the item.
	Position int
}
