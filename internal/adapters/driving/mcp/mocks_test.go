package mcp

import (
	"context"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driving"
)

// mockContextService is a mock implementation of driving.ContextService.
type mockContextService struct {
	assembled *domain.AssembledContext
	err       error
	query     string
	opts      domain.SearchOptions
}

func (m *mockContextService) Assemble(ctx context.Context, query string, topK int) (*domain.AssembledContext, error) {
	return m.Search(ctx, query, domain.SearchOptions{Mode: domain.SearchModeAuto, TopK: topK})
}

func (m *mockContextService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.AssembledContext, error) {
	m.query = query
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.assembled == nil {
		return &domain.AssembledContext{Query: query}, nil
	}
	return m.assembled, nil
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	status domain.IndexStatus
}

func (m *mockIndexService) Build(_ context.Context, _ driving.BuildProgress) (*domain.BuildSummary, error) {
	return &domain.BuildSummary{}, nil
}

func (m *mockIndexService) Search(_ context.Context, _ string, _ int) []domain.SearchResult {
	return nil
}

func (m *mockIndexService) Status(_ context.Context) domain.IndexStatus {
	return m.status
}

func (m *mockIndexService) Clear(_ context.Context) error {
	return nil
}

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answer  *domain.Answer
	history []domain.Answer
	err     error
}

func (m *mockAnswerService) Ask(_ context.Context, _ string, _ int) (*domain.Answer, error) {
	return m.answer, m.err
}

func (m *mockAnswerService) History() []domain.Answer {
	return m.history
}

func sampleContext() *domain.AssembledContext {
	return &domain.AssembledContext{
		Query: "defense",
		Text:  "[From policy.md]\npreemptive defense policy",
		Results: []domain.SearchResult{{
			Chunk: domain.Chunk{
				Text:     "preemptive defense policy",
				Source:   "policy.md",
				Root:     "/docs",
				ItemID:   "/docs/policy.md",
				Position: 2,
			},
			Score:    1,
			Strategy: domain.StrategySubstring,
		}},
		Strategy: domain.StrategySubstring,
	}
}
