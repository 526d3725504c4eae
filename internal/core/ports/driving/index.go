package driving

import (
	"context"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// BuildProgress is called after each entry is embedded.
type BuildProgress func(done, total int)

// IndexService manages the chunk collection and its vectors.
type IndexService interface {
	// Build embeds every chunk and persists the result.
	Build(ctx context.Context, progress BuildProgress) (*domain.BuildSummary, error)

	// Search runs vector search. It returns no results when the index is
	// absent or stale, or when the query cannot be embedded.
	Search(ctx context.Context, query string, topK int) []domain.SearchResult

	// Status reports index health.
	Status(ctx context.Context) domain.IndexStatus

	// Clear removes every chunk and vector.
	Clear(ctx context.Context) error
}
