package domain

// Item is an entry listed by a document store.
// Containers (folders) are walked; leaves are read and extracted.
type Item struct {
	// ID is the document store identifier (path, file ID, API path).
	ID string

	// Name is the display name used to tag chunks.
	Name string

	// MIMEType is the declared content type, if the store reports one.
	MIMEType string

	// IsContainer is true for folders.
	IsContainer bool

	// Size is the content length in bytes, or zero if unknown.
	Size int64
}

// RawDocument represents opaque bytes read from a document store.
// It is the connector's output before text extraction.
type RawDocument struct {
	// Item is the listed entry the bytes belong to.
	Item Item

	// URI is the original location (file path, URL, etc).
	URI string

	// MIMEType is the content type after any store-side export.
	// A Google Doc exported as text reports "text/plain" here.
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}
