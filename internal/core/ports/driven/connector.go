package driven

import (
	"context"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// Connector reads items from a hierarchical document store.
// Each store type (filesystem, Google Drive, GitHub, Dropbox) implements this interface.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// RootID returns the container ID the connector was opened at.
	RootID() string

	// URI returns the canonical root URI. Different spellings of the same
	// root (relative paths, file:// URIs, trailing slashes) return the same URI.
	URI() string

	// ListChildren returns the direct children of a container.
	// The order is stable across calls for an unchanged store.
	ListChildren(ctx context.Context, containerID string) ([]domain.Item, error)

	// Read fetches the bytes of a leaf item.
	// Store-native formats (e.g. Google Docs) are exported to a readable type,
	// reported in RawDocument.MIMEType.
	Read(ctx context.Context, item domain.Item) (*domain.RawDocument, error)

	// Close releases resources.
	Close() error
}

// ConnectorFactory resolves a root URI to a connector.
type ConnectorFactory interface {
	// Open returns a connector for the root URI.
	// Returns ErrUnsupportedType if no connector handles the URI scheme.
	Open(ctx context.Context, root string) (Connector, error)

	// SupportedSchemes returns the URI schemes that can be opened.
	SupportedSchemes() []string
}
