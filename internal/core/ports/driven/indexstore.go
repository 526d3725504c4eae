package driven

import (
	"context"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// IndexStore persists index snapshots.
// A snapshot carries every entry with its chunk and optional vector, so the
// store never holds chunks and vectors that disagree.
type IndexStore interface {
	// Save replaces the stored snapshot with ix.
	Save(ctx context.Context, ix *domain.Index) error

	// Load returns the stored snapshot.
	// Returns ErrNotFound if nothing has been saved.
	Load(ctx context.Context) (*domain.Index, error)

	// Close releases resources.
	Close() error
}
