package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore keeps the last saved snapshot in memory.
// Snapshots are cloned on the way in and out, so callers never share
// entries with the store.
type IndexStore struct {
	mu    sync.RWMutex
	saved *domain.Index
	saves int
}

// NewIndexStore creates an empty in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{}
}

// Save replaces the stored snapshot.
func (s *IndexStore) Save(ctx context.Context, ix *domain.Index) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = ix.Clone()
	s.saves++
	return nil
}

// Load returns a copy of the stored snapshot.
func (s *IndexStore) Load(ctx context.Context) (*domain.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.saved == nil {
		return nil, domain.ErrNotFound
	}
	return s.saved.Clone(), nil
}

// Saves returns how many times Save succeeded.
func (s *IndexStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Close is a no-op.
func (s *IndexStore) Close() error {
	return nil
}
