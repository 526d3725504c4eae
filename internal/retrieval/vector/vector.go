// Package vector ranks index entries by cosine similarity.
package vector

import (
	"math"
	"sort"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// Similarity returns the cosine similarity of a and b in [-1, 1].
// It is 0 when either vector is empty, either norm is zero, or the
// lengths differ.
func Similarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	s := dot / (math.Sqrt(na) * math.Sqrt(nb))
	// Rounding can push parallel vectors just past 1.
	return math.Max(-1, math.Min(1, s))
}

// Search scores every entry that has a vector against query and returns
// at most topK results by descending similarity. Entries without a vector
// are skipped. Equal scores keep collection order.
func Search(query []float32, entries []domain.IndexEntry, topK int) []domain.SearchResult {
	if len(query) == 0 || topK <= 0 {
		return nil
	}

	results := make([]domain.SearchResult, 0, len(entries))
	for _, e := range entries {
		if !e.HasVector() {
			continue
		}
		results = append(results, domain.SearchResult{
			Chunk:    e.Chunk,
			Score:    Similarity(query, e.Vector),
			Strategy: domain.StrategyVector,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}
