// Package chunker splits document text into overlapping token windows.
package chunker

import (
	"fmt"
	"iter"
	"strings"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// DefaultChunkSize is the default number of tokens per chunk.
const DefaultChunkSize = 200

// DefaultChunkOverlap is the default number of tokens shared by consecutive chunks.
const DefaultChunkOverlap = 40

// Chunk splits text on whitespace and returns windows of size tokens,
// each starting size-overlap tokens after the previous one. Windows are
// joined with single spaces. The final window may be shorter than size.
func Chunk(text string, size, overlap int) ([]string, error) {
	seq, err := Windows(text, size, overlap)
	if err != nil {
		return nil, err
	}
	var chunks []string
	for w := range seq {
		chunks = append(chunks, w)
	}
	return chunks, nil
}

// Windows returns the same windows as Chunk as a lazy sequence.
// The sequence can be ranged over more than once.
func Windows(text string, size, overlap int) (iter.Seq[string], error) {
	if err := Validate(size, overlap); err != nil {
		return nil, err
	}
	tokens := strings.Fields(text)
	stride := size - overlap

	return func(yield func(string) bool) {
		for i := 0; i < len(tokens); i += stride {
			end := min(i+size, len(tokens))
			if !yield(strings.Join(tokens[i:end], " ")) {
				return
			}
			// A window that reaches the last token covers the rest of the
			// text; any later window would be a suffix of it.
			if end == len(tokens) {
				return
			}
		}
	}, nil
}

// Validate checks size > 0 and 0 <= overlap < size.
func Validate(size, overlap int) error {
	if size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidInput, size)
	}
	if overlap < 0 || overlap >= size {
		return fmt.Errorf("%w: overlap must be in [0, %d), got %d", domain.ErrInvalidInput, size, overlap)
	}
	return nil
}
