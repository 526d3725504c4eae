package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
)

func newAnswerFixture(t *testing.T, llm driven.LLMService, prompts driven.PromptStore, historySize int) *AnswerService {
	t.Helper()
	index := textIndex(t, "preemptive defense policy", "garden tools")
	return NewAnswerService(NewContextService(index, 5), llm, prompts, historySize)
}

func TestAnswerService_Ask(t *testing.T) {
	llm := &mockLLMService{response: "  Defense is preemptive. [From docA]\n"}
	svc := newAnswerFixture(t, llm, nil, 3)

	answer, err := svc.Ask(context.Background(), "defense", 0)
	require.NoError(t, err)

	assert.Equal(t, "defense", answer.Question)
	assert.Equal(t, "Defense is preemptive. [From docA]", answer.Text)
	require.NotNil(t, answer.Context)
	assert.Equal(t, domain.StrategySubstring, answer.Context.Strategy)

	require.Len(t, llm.prompts, 1)
	prompt := llm.prompts[0]
	assert.Contains(t, prompt, "[From docA]\npreemptive defense policy")
	assert.Contains(t, prompt, "=== USER QUESTION ===\ndefense")
	assert.Contains(t, prompt, "(none)")
	assert.NotContains(t, prompt, "garden tools")

	opts := llm.opts[0]
	assert.InDelta(t, 0.15, opts.Temperature, 1e-9)
	assert.Equal(t, AnswerMaxTokens, opts.MaxTokens)
	assert.Contains(t, opts.System, "Answer ONLY using the material")
}

func TestAnswerService_Errors(t *testing.T) {
	tests := []struct {
		name     string
		llm      driven.LLMService
		question string
		wantErr  error
	}{
		{
			name:     "blank question",
			llm:      &mockLLMService{response: "x"},
			question: "  ",
			wantErr:  domain.ErrInvalidInput,
		},
		{
			name:     "no llm configured",
			question: "defense",
			wantErr:  domain.ErrLLMUnavailable,
		},
		{
			name:     "nothing matches",
			llm:      &mockLLMService{response: "x"},
			question: "astronomy",
			wantErr:  domain.ErrNoContext,
		},
		{
			name:     "llm failure",
			llm:      &mockLLMService{err: domain.ErrRateLimited},
			question: "defense",
			wantErr:  domain.ErrRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAnswerFixture(t, tt.llm, nil, 3)

			_, err := svc.Ask(context.Background(), tt.question, 0)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, svc.History())
		})
	}
}

func TestAnswerService_NilLLMInterface(t *testing.T) {
	// A nil LLM must be detected before any context is assembled.
	svc := NewAnswerService(nil, nil, nil, 3)

	_, err := svc.Ask(context.Background(), "defense", 0)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestAnswerService_HistoryIsBounded(t *testing.T) {
	llm := &mockLLMService{}
	svc := newAnswerFixture(t, llm, nil, 2)
	ctx := context.Background()

	for _, resp := range []string{"first", "second", "third"} {
		llm.response = resp
		_, err := svc.Ask(ctx, "defense", 0)
		require.NoError(t, err)
	}

	history := svc.History()
	require.Len(t, history, 2)
	assert.Equal(t, "second", history[0].Text)
	assert.Equal(t, "third", history[1].Text)

	// The third prompt saw the two answers before it.
	assert.Contains(t, llm.prompts[2], "first\n\nsecond")
	assert.NotContains(t, llm.prompts[2], "(none)")

	history[0].Text = "mutated"
	assert.Equal(t, "second", svc.History()[0].Text)
}

func TestAnswerService_NoHistory(t *testing.T) {
	llm := &mockLLMService{response: "answer"}
	svc := newAnswerFixture(t, llm, nil, 0)

	_, err := svc.Ask(context.Background(), "defense", 0)
	require.NoError(t, err)
	assert.Empty(t, svc.History())
}

func TestAnswerService_CustomPrompts(t *testing.T) {
	llm := &mockLLMService{response: "ok"}
	prompts := &mockPromptStore{prompts: map[string]string{
		driven.PromptAnswerSystem: "Be brief.",
		driven.PromptAnswer:       "Q: {{question}}\nS: {{sources}}",
	}}
	svc := newAnswerFixture(t, llm, prompts, 1)

	_, err := svc.Ask(context.Background(), "defense", 1)
	require.NoError(t, err)

	assert.Equal(t, "Be brief.", llm.opts[0].System)
	assert.Equal(t, "Q: defense\nS: [From docA]\npreemptive defense policy", llm.prompts[0])
}

func TestAnswerService_MissingPromptFallsBack(t *testing.T) {
	llm := &mockLLMService{response: "ok"}
	prompts := &mockPromptStore{prompts: map[string]string{}}
	svc := newAnswerFixture(t, llm, prompts, 1)

	_, err := svc.Ask(context.Background(), "defense", 1)
	require.NoError(t, err)
	assert.Contains(t, llm.prompts[0], "=== CONTEXT: RELEVANT SOURCES (SEARCHED) ===")
}
