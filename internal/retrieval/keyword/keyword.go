// Package keyword scores chunks against a query by vocabulary overlap.
package keyword

import (
	"sort"
	"strings"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// Tokens lower-cases s and returns its whitespace-separated tokens as a set.
func Tokens(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Score returns the number of distinct lower-cased tokens shared by query and text.
func Score(query, text string) int {
	return overlap(Tokens(query), Tokens(text))
}

func overlap(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			n++
		}
	}
	return n
}

// Rank scores every chunk against query and returns those with a positive
// score, highest first. Equal scores keep collection order. topK <= 0
// returns every match.
func Rank(query string, chunks []domain.Chunk, topK int) []domain.SearchResult {
	q := Tokens(query)
	if len(q) == 0 {
		return nil
	}

	var results []domain.SearchResult
	for _, c := range chunks {
		score := overlap(q, Tokens(c.Text))
		if score == 0 {
			continue
		}
		results = append(results, domain.SearchResult{
			Chunk:    c,
			Score:    float64(score),
			Strategy: domain.StrategyKeyword,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return capResults(results, topK)
}

// Substring selects chunks whose lower-cased text contains the lower-cased
// query, in collection order, capped at topK. The query is matched as
// given, surrounding spaces included. A blank query selects nothing.
func Substring(query string, chunks []domain.Chunk, topK int) []domain.SearchResult {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	q := strings.ToLower(query)

	var results []domain.SearchResult
	for _, c := range chunks {
		if topK > 0 && len(results) == topK {
			break
		}
		if strings.Contains(strings.ToLower(c.Text), q) {
			results = append(results, domain.SearchResult{
				Chunk:    c,
				Score:    1,
				Strategy: domain.StrategySubstring,
			})
		}
	}
	return results
}

func capResults(results []domain.SearchResult, topK int) []domain.SearchResult {
	if topK > 0 && len(results) > topK {
		return results[:topK]
	}
	return results
}
