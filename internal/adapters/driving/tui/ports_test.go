package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driving"
)

// MockContextService implements driving.ContextService for testing.
type MockContextService struct {
	AssembleFunc func(ctx context.Context, query string, topK int) (*domain.AssembledContext, error)
}

func (m *MockContextService) Assemble(ctx context.Context, query string, topK int) (*domain.AssembledContext, error) {
	if m.AssembleFunc != nil {
		return m.AssembleFunc(ctx, query, topK)
	}
	return &domain.AssembledContext{Query: query}, nil
}

func (m *MockContextService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.AssembledContext, error) {
	return m.Assemble(ctx, query, opts.TopK)
}

// MockAnswerService implements driving.AnswerService for testing.
type MockAnswerService struct {
	AskFunc func(ctx context.Context, question string, topK int) (*domain.Answer, error)
}

func (m *MockAnswerService) Ask(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question, topK)
	}
	return &domain.Answer{Question: question}, nil
}

func (m *MockAnswerService) History() []domain.Answer {
	return nil
}

// MockIndexService implements driving.IndexService for testing.
type MockIndexService struct {
	StatusValue domain.IndexStatus
}

func (m *MockIndexService) Build(context.Context, driving.BuildProgress) (*domain.BuildSummary, error) {
	return &domain.BuildSummary{}, nil
}

func (m *MockIndexService) Search(context.Context, string, int) []domain.SearchResult {
	return nil
}

func (m *MockIndexService) Status(context.Context) domain.IndexStatus {
	return m.StatusValue
}

func (m *MockIndexService) Clear(context.Context) error {
	return nil
}

func TestNewPorts(t *testing.T) {
	ctxSvc := &MockContextService{}
	answer := &MockAnswerService{}
	index := &MockIndexService{}

	ports := NewPorts(ctxSvc, answer, index)

	require.NotNil(t, ports)
	assert.Equal(t, ctxSvc, ports.Context)
	assert.Equal(t, answer, ports.Answer)
	assert.Equal(t, index, ports.Index)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"all set", NewPorts(&MockContextService{}, &MockAnswerService{}, &MockIndexService{}), nil},
		{"context only", &Ports{Context: &MockContextService{}}, nil},
		{"missing context", &Ports{Answer: &MockAnswerService{}}, ErrMissingContextService},
		{"nil ports", nil, ErrInvalidPorts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
