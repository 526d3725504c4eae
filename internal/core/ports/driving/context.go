package driving

import (
	"context"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// ContextService selects passages for a query and renders them.
type ContextService interface {
	// Assemble runs vector search, falls back to substring matching, and
	// renders the selected chunks as attributed blocks.
	Assemble(ctx context.Context, query string, topK int) (*domain.AssembledContext, error)

	// Search runs the strategy named by opts.Mode.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.AssembledContext, error)
}
