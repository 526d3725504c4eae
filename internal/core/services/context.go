package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driving"
	"github.com/custodia-labs/grokpedia/internal/logger"
	"github.com/custodia-labs/grokpedia/internal/retrieval/keyword"
)

// Ensure ContextService implements the interface.
var _ driving.ContextService = (*ContextService)(nil)

// indexReader exposes the chunk collection and vector search.
type indexReader interface {
	Chunks() []domain.Chunk
	Search(ctx context.Context, query string, topK int) []domain.SearchResult
}

// ContextService selects passages for a query and renders them.
type ContextService struct {
	index       indexReader
	defaultTopK int
}

// NewContextService creates a context service.
// defaultTopK is used when a caller passes topK <= 0.
func NewContextService(index indexReader, defaultTopK int) *ContextService {
	return &ContextService{
		index:       index,
		defaultTopK: defaultTopK,
	}
}

// Assemble runs vector search and falls back to substring matching when
// it selects nothing.
func (s *ContextService) Assemble(ctx context.Context, query string, topK int) (*domain.AssembledContext, error) {
	return s.Search(ctx, query, domain.SearchOptions{Mode: domain.SearchModeAuto, TopK: topK})
}

// Search runs the strategy named by opts.Mode. An empty mode means auto.
func (s *ContextService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.AssembledContext, error) {
	mode := opts.Mode
	if mode == "" {
		mode = domain.SearchModeAuto
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown search mode %q", domain.ErrInvalidInput, mode)
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}

	out := &domain.AssembledContext{Query: query}

	chunks := s.index.Chunks()
	if len(chunks) == 0 {
		logger.Debug("No chunks indexed, returning empty context")
		return out, nil
	}
	if strings.TrimSpace(query) == "" {
		return out, nil
	}

	var results []domain.SearchResult
	switch mode {
	case domain.SearchModeVector:
		results = s.index.Search(ctx, query, topK)
	case domain.SearchModeKeyword:
		results = keyword.Rank(query, chunks, topK)
	case domain.SearchModeSubstring:
		results = keyword.Substring(query, chunks, topK)
	default:
		results = s.index.Search(ctx, query, topK)
		if len(results) == 0 {
			logger.Debug("Vector search returned nothing, falling back to substring match")
			results = keyword.Substring(query, chunks, topK)
		}
	}

	out.Results = results
	out.Text = Render(results)
	if len(results) > 0 {
		out.Strategy = results[0].Strategy
	}
	return out, nil
}

// Render formats results as attributed blocks in selection order:
//
//	[From <source>]
//	<text>
//
// Blocks are separated by a blank line.
func Render(results []domain.SearchResult) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = "[From " + r.Chunk.Source + "]\n" + r.Chunk.Text
	}
	return strings.Join(blocks, "\n\n")
}
