package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
)

// --- Mock implementations ---

// vocab gives mockEmbeddingService a deterministic bag-of-words space.
var vocab = []string{"go", "rust", "python", "defense", "offense", "garden", "kitchen", "network"}

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Texts containing any string in fail are not embedded.
type mockEmbeddingService struct {
	mu         sync.Mutex
	model      string
	fail       []string
	batchErr   error
	embedErr   error
	calls      int
	onEmbed    func()
	dimensions int
}

func newMockEmbedding() *mockEmbeddingService {
	return &mockEmbeddingService{model: "mock-embed", dimensions: len(vocab)}
}

func (m *mockEmbeddingService) vector(text string) ([]float32, error) {
	for _, f := range m.fail {
		if strings.Contains(text, f) {
			return nil, errors.New("mock embedding failure")
		}
	}
	vec := make([]float32, len(vocab))
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		for i, w := range vocab {
			if tok == w {
				vec[i]++
			}
		}
	}
	return vec, nil
}

func (m *mockEmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	hook := m.onEmbed
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector(text)
}

func (m *mockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int { return m.dimensions }
func (m *mockEmbeddingService) ModelName() string { return m.model }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error { return nil }

// mockConnector implements driven.Connector over an in-memory tree.
type mockConnector struct {
	root     string
	children map[string][]domain.Item
	listErr  map[string]error
	content  map[string]string
	mimes    map[string]string
	readErr  map[string]error
	closed   bool
	reads    []string
}

func (m *mockConnector) Type() string { return "mock" }
func (m *mockConnector) RootID() string { return m.root }
func (m *mockConnector) URI() string { return "mock://" + m.root }

func (m *mockConnector) ListChildren(ctx context.Context, containerID string) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.listErr[containerID]; err != nil {
		return nil, err
	}
	return m.children[containerID], nil
}

func (m *mockConnector) Read(_ context.Context, item domain.Item) (*domain.RawDocument, error) {
	m.reads = append(m.reads, item.ID)
	if err := m.readErr[item.ID]; err != nil {
		return nil, err
	}
	mimeType := item.MIMEType
	if mt, ok := m.mimes[item.ID]; ok {
		mimeType = mt
	}
	return &domain.RawDocument{
		Item:     item,
		URI:      "mock://" + item.ID,
		MIMEType: mimeType,
		Content:  []byte(m.content[item.ID]),
	}, nil
}

func (m *mockConnector) Close() error {
	m.closed = true
	return nil
}

// mockConnectorFactory implements driven.ConnectorFactory.
type mockConnectorFactory struct {
	conn    *mockConnector
	openErr error
	opened  []string
}

func (m *mockConnectorFactory) Open(_ context.Context, root string) (driven.Connector, error) {
	m.opened = append(m.opened, root)
	if m.openErr != nil {
		return nil, m.openErr
	}
	return m.conn, nil
}

func (m *mockConnectorFactory) SupportedSchemes() []string { return []string{"mock"} }

// mockExtractorRegistry implements driven.ExtractorRegistry.
// text/plain is decoded as-is, application/x-bad is unreadable and
// anything else is unsupported.
type mockExtractorRegistry struct{}

func (mockExtractorRegistry) Extract(_ context.Context, raw *domain.RawDocument) (string, error) {
	switch raw.MIMEType {
	case "text/plain":
		return string(raw.Content), nil
	case "application/x-bad":
		return "", domain.ErrUnreadable
	default:
		return "", domain.ErrUnsupportedType
	}
}

func (mockExtractorRegistry) Register(driven.Extractor) {}

func (mockExtractorRegistry) SupportedMIMETypes() []string { return []string{"text/plain"} }

// mockLLMService implements driven.LLMService.
type mockLLMService struct {
	response string
	err      error
	prompts  []string
	opts     []driven.GenerateOptions
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }
func (m *mockLLMService) Ping(_ context.Context) error { return nil }
func (m *mockLLMService) Close() error { return nil }

// mockPromptStore implements driven.PromptStore.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return p, nil
}

// mockAIValidator implements driven.AIConfigValidator.
type mockAIValidator struct {
	embeddingErr error
	llmErr       error
	embedding    *domain.EmbeddingSettings
	llm          *domain.LLMSettings
}

func (m *mockAIValidator) ValidateEmbedding(_ context.Context, s *domain.EmbeddingSettings) error {
	m.embedding = s
	return m.embeddingErr
}

func (m *mockAIValidator) ValidateLLM(_ context.Context, s *domain.LLMSettings) error {
	m.llm = s
	return m.llmErr
}

// failingIndexStore fails every save.
type failingIndexStore struct{ err error }

func (f failingIndexStore) Save(context.Context, *domain.Index) error { return f.err }
func (f failingIndexStore) Load(context.Context) (*domain.Index, error) {
	return nil, domain.ErrNotFound
}
func (f failingIndexStore) Close() error { return nil }

func textChunks(root string, texts ...string) []domain.Chunk {
	out := make([]domain.Chunk, len(texts))
	for i, t := range texts {
		out[i] = domain.Chunk{ID: root + "-" + t, Text: t, Source: "doc" + string(rune('A'+i)), Root: root, Position: i}
	}
	return out
}
