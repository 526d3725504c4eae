package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func sampleIndex() *domain.Index {
	ix := domain.NewIndex()
	ix.Append([]domain.Chunk{
		{ID: "c1", Text: "alpha beta", Source: "a.md", Root: "/docs", ItemID: "/docs/a.md", Position: 0},
		{ID: "c2", Text: "gamma", Source: "b.txt", Root: "/docs", ItemID: "/docs/b.txt", Position: 0},
		{ID: "c3", Text: "delta", Source: "b.txt", Root: "/docs", ItemID: "/docs/b.txt", Position: 1},
	})
	ix.Entries[0].Vector = []float32{0.5, -1.25, 3}
	ix.Entries[2].Vector = []float32{1, 0, 0}
	ix.IndexedVersion = ix.Version
	ix.Model = "nomic-embed-text"
	ix.Dimensions = 3
	ix.BuiltAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return ix
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DBFile), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_ReopenKeepsMigrations(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), sampleIndex()))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	ix, err := reopened.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Len())
}

func TestStore_LoadEmpty(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SaveLoad(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	want := sampleIndex()

	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.Version, got.Version)
	assert.Equal(t, want.IndexedVersion, got.IndexedVersion)
	assert.Equal(t, want.Model, got.Model)
	assert.Equal(t, want.Dimensions, got.Dimensions)
	assert.True(t, want.BuiltAt.Equal(got.BuiltAt))
	assert.Equal(t, want.Entries, got.Entries)
	assert.False(t, got.Entries[1].HasVector())
	assert.True(t, got.VectorsUsable("nomic-embed-text"))
}

func TestStore_SaveReplacesSnapshot(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleIndex()))

	smaller := domain.NewIndex()
	smaller.Append([]domain.Chunk{{ID: "only", Text: "one", Source: "x", Root: "/x"}})
	require.NoError(t, store.Save(ctx, smaller))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "only", got.Entries[0].Chunk.ID)
	assert.Equal(t, uint64(0), got.IndexedVersion)
	assert.Empty(t, got.Model)
	assert.True(t, got.BuiltAt.IsZero())
}

func TestStore_SaveEmptyIndex(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleIndex()))
	cleared := sampleIndex()
	cleared.Clear()
	require.NoError(t, store.Save(ctx, cleared))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.Equal(t, cleared.Version, got.Version)
}

func TestFloat32Conversion(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
	}{
		{"nil", nil},
		{"single", []float32{1.5}},
		{"mixed", []float32{-0.25, 0, 3.75, 1e-6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.in, bytesToFloat32Slice(float32SliceToBytes(tt.in)))
		})
	}
}
