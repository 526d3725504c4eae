package driving

import (
	"context"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// IngestService walks a document store and adds its text to the index.
type IngestService interface {
	// Ingest walks root and chunks every readable item.
	// Per-item failures are reported in the summary, not returned.
	Ingest(ctx context.Context, root string, opts domain.IngestOptions) (*domain.IngestSummary, error)
}
