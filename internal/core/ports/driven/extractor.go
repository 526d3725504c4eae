package driven

import (
	"context"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// Extractor turns raw document bytes into plain text.
// Each extractor handles specific MIME types (e.g., PDF, HTML).
type Extractor interface {
	// Name identifies the extractor in logs.
	Name() string

	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// SupportedExtensions returns lower-case file extensions, with the dot,
	// used when a store declares no usable MIME type.
	SupportedExtensions() []string

	// Extract returns the plain text of the document.
	// Returns ErrUnreadable if the bytes cannot be decoded.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)
}

// ExtractorRegistry selects the extractor for a document.
type ExtractorRegistry interface {
	// Extract dispatches by MIME type, then by file extension.
	// Returns ErrUnsupportedType when no extractor matches.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)

	// Register adds an extractor. Later registrations win on conflicts.
	Register(extractor Extractor)

	// SupportedMIMETypes returns all MIME types that can be extracted.
	SupportedMIMETypes() []string
}
