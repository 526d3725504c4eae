package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driving"
	"github.com/custodia-labs/grokpedia/internal/logger"
	"github.com/custodia-labs/grokpedia/internal/retrieval/vector"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// buildBatchSize is the number of entries embedded per request.
const buildBatchSize = 32

// IndexService owns the in-memory index and its persisted snapshot.
//
// Readers work on the live index under a read lock. Writers mutate a
// clone, save it, and swap it in only after the save succeeds, so a
// failed save leaves the previous state visible.
type IndexService struct {
	mu        sync.RWMutex
	index     *domain.Index
	store     driven.IndexStore
	embedding driven.EmbeddingService
	now       func() time.Time
}

// NewIndexService creates an index service.
// embedding may be nil, in which case Build fails and Search returns nothing.
func NewIndexService(store driven.IndexStore, embedding driven.EmbeddingService) *IndexService {
	return &IndexService{
		index:     domain.NewIndex(),
		store:     store,
		embedding: embedding,
		now:       time.Now,
	}
}

// Load replaces the in-memory index with the stored snapshot.
// A store with no snapshot leaves the index empty.
func (s *IndexService) Load(ctx context.Context) error {
	ix, err := s.store.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Debug("No stored index, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	s.mu.Lock()
	s.index = ix
	s.mu.Unlock()

	logger.Debug("Loaded index: %d entries, version %d (indexed %d)",
		ix.Len(), ix.Version, ix.IndexedVersion)
	return nil
}

// Chunks returns the chunks of every entry in collection order.
func (s *IndexService) Chunks() []domain.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Chunks()
}

// Apply runs mutate against a copy of the index, persists the copy and
// then makes it live.
func (s *IndexService) Apply(ctx context.Context, mutate func(ix *domain.Index)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, mutate)
}

func (s *IndexService) commitLocked(ctx context.Context, mutate func(ix *domain.Index)) error {
	next := s.index.Clone()
	mutate(next)

	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	s.index = next
	return nil
}

// Build embeds every entry and persists the vectors.
//
// Entries whose embedding fails keep a nil vector and are counted as
// missing. Cancelling ctx aborts the build and clears every vector, so an
// interrupted rebuild never leaves a half-valid index behind.
func (s *IndexService) Build(ctx context.Context, progress driving.BuildProgress) (*domain.BuildSummary, error) {
	if s.embedding == nil {
		return nil, fmt.Errorf("build index: %w", domain.ErrEmbeddingUnavailable)
	}

	start := s.now()
	s.mu.RLock()
	snapshot := s.index.Clone()
	s.mu.RUnlock()

	total := snapshot.Len()
	logger.Section("Index Build")
	logger.Info("Embedding %d entries with %s", total, s.embedding.ModelName())

	vectors := make([][]float32, total)
	for i := 0; i < total; i += buildBatchSize {
		end := min(i+buildBatchSize, total)
		if err := s.embedRange(ctx, snapshot.Entries[i:end], vectors[i:end]); err != nil {
			return nil, s.abortBuild(err)
		}
		if progress != nil {
			progress(end, total)
		}
	}

	summary := &domain.BuildSummary{
		Total: total,
		Model: s.embedding.ModelName(),
	}
	dimensions := s.embedding.Dimensions()
	for _, v := range vectors {
		if len(v) == 0 {
			summary.Missing++
			continue
		}
		summary.Embedded++
		if dimensions == 0 {
			dimensions = len(v)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index.Version != snapshot.Version {
		return nil, fmt.Errorf("%w: index changed during build, run build again", domain.ErrIndexStale)
	}

	err := s.commitLocked(ctx, func(ix *domain.Index) {
		for i := range ix.Entries {
			ix.Entries[i].Vector = vectors[i]
		}
		ix.IndexedVersion = ix.Version
		ix.Model = summary.Model
		ix.Dimensions = dimensions
		ix.BuiltAt = s.now()
	})
	if err != nil {
		return nil, err
	}

	summary.Duration = s.now().Sub(start)
	logger.Info("Index built: %d embedded, %d missing", summary.Embedded, summary.Missing)
	return summary, nil
}

// embedRange fills out with vectors for entries. A failed batch is retried
// one entry at a time so a single bad input only loses its own vector.
// Only context errors are returned.
func (s *IndexService) embedRange(ctx context.Context, entries []domain.IndexEntry, out [][]float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Chunk.Text
	}

	batch, err := s.embedding.EmbedBatch(ctx, texts)
	if err == nil && len(batch) == len(texts) {
		copy(out, batch)
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	logger.Debug("Batch embedding failed, retrying individually: %v", err)

	for i, text := range texts {
		vec, err := s.embedding.Embed(ctx, text)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			logger.Warn("Embedding failed for chunk %s: %v", entries[i].Chunk.ID, err)
			continue
		}
		out[i] = vec
	}
	return nil
}

// abortBuild clears vectors after a cancelled build and returns cause.
func (s *IndexService) abortBuild(cause error) error {
	logger.Warn("Index build aborted: %v", cause)

	s.mu.Lock()
	defer s.mu.Unlock()

	// The build context is already done; the clear must still reach the store.
	if err := s.commitLocked(context.Background(), (*domain.Index).ClearVectors); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// Search returns the entries most similar to query.
// It returns nothing when the index is absent or stale, when no embedding
// service is configured, or when the query cannot be embedded.
func (s *IndexService) Search(ctx context.Context, query string, topK int) []domain.SearchResult {
	if s.embedding == nil {
		return nil
	}
	model := s.embedding.ModelName()

	s.mu.RLock()
	usable := s.index.VectorsUsable(model)
	s.mu.RUnlock()
	if !usable {
		logger.Debug("Vector index unusable for model %q, skipping vector search", model)
		return nil
	}

	// Embed without holding the lock; the index may change meanwhile.
	qv, err := s.embedding.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.index.VectorsUsable(model) {
		return nil
	}
	return vector.Search(qv, s.index.Entries, topK)
}

// Status reports index health.
func (s *IndexService) Status(_ context.Context) domain.IndexStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := s.index.Status()
	if s.embedding != nil && status.Model != "" && status.Model != s.embedding.ModelName() {
		status.Stale = true
	}
	return status
}

// Clear removes every chunk and vector.
func (s *IndexService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commitLocked(ctx, (*domain.Index).Clear); err != nil {
		return err
	}
	logger.Info("Index cleared")
	return nil
}
