package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driving"
	"github.com/custodia-labs/grokpedia/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// Generation parameters for grounded answers.
const (
	AnswerTemperature = 0.15
	AnswerMaxTokens   = 2048
)

// AnswerService answers questions from assembled context only.
// It remembers its most recent answers and offers them to the LLM as
// previous articles.
type AnswerService struct {
	contexts    driving.ContextService
	llm         driven.LLMService
	prompts     driven.PromptStore
	historySize int

	mu      sync.Mutex
	history []domain.Answer
}

// NewAnswerService creates an answer service.
// llm may be nil, in which case Ask returns ErrLLMUnavailable.
// prompts may be nil to use the built-in prompts.
func NewAnswerService(
	contexts driving.ContextService,
	llm driven.LLMService,
	prompts driven.PromptStore,
	historySize int,
) *AnswerService {
	return &AnswerService{
		contexts:    contexts,
		llm:         llm,
		prompts:     prompts,
		historySize: historySize,
	}
}

// Ask assembles context for question and asks the LLM to answer from it.
func (s *AnswerService) Ask(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	assembled, err := s.contexts.Assemble(ctx, question, topK)
	if err != nil {
		return nil, fmt.Errorf("assemble context: %w", err)
	}
	if assembled.IsEmpty() {
		return nil, domain.ErrNoContext
	}
	logger.Debug("Answering from %d passages (%s)", len(assembled.Results), assembled.Strategy)

	prompt := fillAnswerPrompt(
		loadPrompt(s.prompts, driven.PromptAnswer),
		s.previousArticles(),
		assembled.Text,
		question,
	)

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		System:      loadPrompt(s.prompts, driven.PromptAnswerSystem),
		MaxTokens:   AnswerMaxTokens,
		Temperature: AnswerTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer with %s: %w", s.llm.ModelName(), err)
	}

	answer := domain.Answer{
		Question: question,
		Text:     strings.TrimSpace(text),
		Context:  assembled,
	}
	s.remember(answer)
	return &answer, nil
}

// History returns previous answers, oldest first.
func (s *AnswerService) History() []domain.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Answer, len(s.history))
	copy(out, s.history)
	return out
}

func (s *AnswerService) remember(a domain.Answer) {
	if s.historySize <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, a)
	if over := len(s.history) - s.historySize; over > 0 {
		s.history = append(s.history[:0:0], s.history[over:]...)
	}
}

func (s *AnswerService) previousArticles() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	articles := make([]string, len(s.history))
	for i, a := range s.history {
		articles[i] = a.Text
	}
	return strings.Join(articles, "\n\n")
}
