package driving

import (
	"context"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// AnswerService answers questions from ingested material only.
type AnswerService interface {
	// Ask assembles context for question and asks the LLM to answer from it.
	// Returns ErrNoContext when nothing relevant is indexed and
	// ErrLLMUnavailable when no LLM is configured.
	Ask(ctx context.Context, question string, topK int) (*domain.Answer, error)

	// History returns previous answers, oldest first.
	History() []domain.Answer
}
