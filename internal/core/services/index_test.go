package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokpedia/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

func seededIndex(t *testing.T, embedding *mockEmbeddingService, texts ...string) (*IndexService, *memory.IndexStore) {
	t.Helper()
	store := memory.NewIndexStore()
	svc := NewIndexService(store, embedding)
	require.NoError(t, svc.Apply(context.Background(), func(ix *domain.Index) {
		ix.Append(textChunks("root", texts...))
	}))
	return svc, store
}

func TestIndexService_BuildAndSearch(t *testing.T) {
	ctx := context.Background()
	svc, store := seededIndex(t, newMockEmbedding(), "go rust", "python garden", "defense network")

	var progress [][2]int
	summary, err := svc.Build(ctx, func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Embedded)
	assert.Equal(t, 0, summary.Missing)
	assert.Equal(t, "mock-embed", summary.Model)
	assert.Equal(t, [][2]int{{3, 3}}, progress)

	results := svc.Search(ctx, "python", 2)
	require.NotEmpty(t, results)
	assert.Equal(t, "python garden", results[0].Chunk.Text)
	assert.Equal(t, domain.StrategyVector, results[0].Strategy)
	assert.LessOrEqual(t, len(results), 2)

	status := svc.Status(ctx)
	assert.Equal(t, 3, status.Entries)
	assert.Equal(t, 3, status.Vectors)
	assert.False(t, status.Stale)
	assert.Equal(t, len(vocab), status.Dimensions)
	assert.False(t, status.BuiltAt.IsZero())

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.Version, saved.IndexedVersion)
	assert.True(t, saved.VectorsUsable("mock-embed"))
}

func TestIndexService_BuildPerEntryFailure(t *testing.T) {
	embedding := newMockEmbedding()
	embedding.fail = []string{"rust"}
	svc, _ := seededIndex(t, embedding, "go rust", "python garden", "defense network")

	summary, err := svc.Build(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Embedded)
	assert.Equal(t, 1, summary.Missing)

	status := svc.Status(context.Background())
	assert.Equal(t, 2, status.Vectors)
	assert.Equal(t, 1, status.MissingVectors)

	// The entry without a vector is never returned by vector search.
	for _, r := range svc.Search(context.Background(), "rust", 10) {
		assert.NotEqual(t, "go rust", r.Chunk.Text)
	}
}

func TestIndexService_BuildWithoutEmbedding(t *testing.T) {
	svc := NewIndexService(memory.NewIndexStore(), nil)

	_, err := svc.Build(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Nil(t, svc.Search(context.Background(), "anything", 5))
}

func TestIndexService_BuildEmptyIndex(t *testing.T) {
	svc := NewIndexService(memory.NewIndexStore(), newMockEmbedding())

	summary, err := svc.Build(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Nil(t, svc.Search(context.Background(), "go", 5))
}

func TestIndexService_CancelledBuildClearsVectors(t *testing.T) {
	embedding := newMockEmbedding()
	texts := make([]string, buildBatchSize+5)
	for i := range texts {
		texts[i] = fmt.Sprintf("go chunk %d", i)
	}
	svc, store := seededIndex(t, embedding, texts...)

	_, err := svc.Build(context.Background(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, svc.Search(context.Background(), "go", 1))

	ctx, cancel := context.WithCancel(context.Background())
	var once sync.Once
	embedding.onEmbed = func() { once.Do(cancel) }

	_, err = svc.Build(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)

	embedding.onEmbed = nil
	status := svc.Status(context.Background())
	assert.Equal(t, 0, status.Vectors)
	assert.Equal(t, uint64(0), status.IndexedVersion)
	assert.Nil(t, svc.Search(context.Background(), "go", 1))

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), saved.IndexedVersion)
	assert.Len(t, saved.Entries, len(texts))
}

func TestIndexService_MutationMakesVectorsStale(t *testing.T) {
	ctx := context.Background()
	svc, _ := seededIndex(t, newMockEmbedding(), "go rust", "python garden")

	_, err := svc.Build(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, svc.Search(ctx, "go", 5))

	require.NoError(t, svc.Apply(ctx, func(ix *domain.Index) {
		ix.Append(textChunks("other", "kitchen"))
	}))

	assert.Nil(t, svc.Search(ctx, "go", 5))
	assert.True(t, svc.Status(ctx).Stale)
}

func TestIndexService_ModelChangeIsStale(t *testing.T) {
	ctx := context.Background()
	store := memory.NewIndexStore()
	first := NewIndexService(store, newMockEmbedding())
	require.NoError(t, first.Apply(ctx, func(ix *domain.Index) { ix.Append(textChunks("r", "go rust")) }))
	_, err := first.Build(ctx, nil)
	require.NoError(t, err)

	other := newMockEmbedding()
	other.model = "other-embed"
	second := NewIndexService(store, other)
	require.NoError(t, second.Load(ctx))

	assert.Nil(t, second.Search(ctx, "go", 5))
	assert.True(t, second.Status(ctx).Stale)
}

func TestIndexService_QueryEmbeddingFailure(t *testing.T) {
	ctx := context.Background()
	embedding := newMockEmbedding()
	svc, _ := seededIndex(t, embedding, "go rust")
	_, err := svc.Build(ctx, nil)
	require.NoError(t, err)

	embedding.embedErr = errors.New("provider down")
	assert.Nil(t, svc.Search(ctx, "go", 5))
}

func TestIndexService_ConcurrentMutationDuringBuild(t *testing.T) {
	ctx := context.Background()
	embedding := newMockEmbedding()
	svc, _ := seededIndex(t, embedding, "go rust", "python garden")

	var once sync.Once
	embedding.onEmbed = func() {
		once.Do(func() {
			require.NoError(t, svc.Apply(ctx, func(ix *domain.Index) {
				ix.Append(textChunks("late", "kitchen"))
			}))
		})
	}

	_, err := svc.Build(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrIndexStale)
	assert.Equal(t, 3, svc.Status(ctx).Entries)
}

func TestIndexService_Clear(t *testing.T) {
	ctx := context.Background()
	svc, store := seededIndex(t, newMockEmbedding(), "go rust", "python garden")
	_, err := svc.Build(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))

	status := svc.Status(ctx)
	assert.Equal(t, 0, status.Entries)
	assert.Equal(t, 0, status.Vectors)
	assert.Empty(t, svc.Chunks())

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved.Entries)
}

func TestIndexService_FailedSaveKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	svc := NewIndexService(failingIndexStore{err: errors.New("disk full")}, newMockEmbedding())

	err := svc.Apply(ctx, func(ix *domain.Index) { ix.Append(textChunks("r", "go")) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, svc.Chunks())
	assert.Equal(t, uint64(0), svc.Status(ctx).Version)
}

func TestIndexService_Load(t *testing.T) {
	ctx := context.Background()
	store := memory.NewIndexStore()

	empty := NewIndexService(store, nil)
	require.NoError(t, empty.Load(ctx))
	assert.Empty(t, empty.Chunks())

	ix := domain.NewIndex()
	ix.Append(textChunks("r", "go", "rust"))
	require.NoError(t, store.Save(ctx, ix))

	loaded := NewIndexService(store, nil)
	require.NoError(t, loaded.Load(ctx))
	assert.Len(t, loaded.Chunks(), 2)
	assert.Equal(t, uint64(1), loaded.Status(ctx).Version)
}
