package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driving"
)

type mockIngestService struct {
	root    string
	opts    domain.IngestOptions
	summary *domain.IngestSummary
	err     error
}

func (m *mockIngestService) Ingest(_ context.Context, root string, opts domain.IngestOptions) (*domain.IngestSummary, error) {
	m.root, m.opts = root, opts
	if m.err != nil {
		return nil, m.err
	}
	if m.summary != nil {
		return m.summary, nil
	}
	return &domain.IngestSummary{Root: root}, nil
}

type mockIndexService struct {
	summary  *domain.BuildSummary
	buildErr error
	status   domain.IndexStatus
	cleared  bool
	clearErr error
}

func (m *mockIndexService) Build(_ context.Context, progress driving.BuildProgress) (*domain.BuildSummary, error) {
	if m.buildErr != nil {
		return nil, m.buildErr
	}
	s := m.summary
	if s == nil {
		s = &domain.BuildSummary{Model: "test-embed"}
	}
	if progress != nil {
		for i := 1; i <= s.Total; i++ {
			progress(i, s.Total)
		}
	}
	return s, nil
}

func (m *mockIndexService) Search(context.Context, string, int) []domain.SearchResult {
	return nil
}

func (m *mockIndexService) Status(context.Context) domain.IndexStatus {
	return m.status
}

func (m *mockIndexService) Clear(context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = true
	return nil
}

type mockContextService struct {
	query string
	opts  domain.SearchOptions
	ctx   *domain.AssembledContext
	err   error
}

func (m *mockContextService) Assemble(ctx context.Context, query string, topK int) (*domain.AssembledContext, error) {
	return m.Search(ctx, query, domain.SearchOptions{Mode: domain.SearchModeAuto, TopK: topK})
}

func (m *mockContextService) Search(
	_ context.Context, query string, opts domain.SearchOptions,
) (*domain.AssembledContext, error) {
	m.query, m.opts = query, opts
	if m.err != nil {
		return nil, m.err
	}
	if m.ctx != nil {
		return m.ctx, nil
	}
	return &domain.AssembledContext{Query: query}, nil
}

type mockAnswerService struct {
	question string
	topK     int
	answer   *domain.Answer
	err      error
}

func (m *mockAnswerService) Ask(_ context.Context, question string, topK int) (*domain.Answer, error) {
	m.question, m.topK = question, topK
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockAnswerService) History() []domain.Answer {
	return nil
}

type mockSettingsService struct {
	settings domain.Settings
	values   []driving.SettingValue
	setKey   string
	setValue string
	setErr   error
	embedErr error
	llmErr   error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	m.setKey, m.setValue = key, value
	return m.setErr
}

func (m *mockSettingsService) Values() ([]driving.SettingValue, error) {
	return m.values, nil
}

func (m *mockSettingsService) Keys() []string {
	keys := make([]string, len(m.values))
	for i, v := range m.values {
		keys[i] = v.Key
	}
	return keys
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (m *mockSettingsService) ValidateEmbeddingConfig(context.Context) error {
	return m.embedErr
}

func (m *mockSettingsService) ValidateLLMConfig(context.Context) error {
	return m.llmErr
}

func samplePassages() *domain.AssembledContext {
	results := []domain.SearchResult{
		{Chunk: domain.Chunk{Text: "preemptive defense policy", Source: "docA", Position: 0}, Score: 0.91, Strategy: domain.StrategyVector},
		{Chunk: domain.Chunk{Text: "defense   budget\nreview", Source: "docB", Position: 3}, Score: 0.72, Strategy: domain.StrategyVector},
	}
	return &domain.AssembledContext{
		Query:    "defense",
		Text:     "[From docA]\npreemptive defense policy\n\n[From docB]\ndefense   budget\nreview",
		Results:  results,
		Strategy: domain.StrategyVector,
	}
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	ingest   *mockIngestService
	index    *mockIndexService
	context  *mockContextService
	answer   *mockAnswerService
	settings *mockSettingsService
}

// setupTestServices installs fresh mocks and returns them with a cleanup
// that removes them and restores every flag default.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		ingest:   &mockIngestService{},
		index:    &mockIndexService{},
		context:  &mockContextService{},
		answer:   &mockAnswerService{answer: &domain.Answer{Text: "ok"}},
		settings: &mockSettingsService{settings: domain.DefaultSettings()},
	}
	SetServices(&Services{
		Ingest:   ts.ingest,
		Index:    ts.index,
		Context:  ts.context,
		Answer:   ts.answer,
		Settings: ts.settings,
	})
	return ts, func() {
		SetServices(nil)
		resetFlags()
	}
}

func resetFlags() {
	rootCmd.SetArgs(nil)
	verbose, configPath, dataDir = false, "", ""
	ingestAppend, ingestSize, ingestOverlap = false, 0, 0
	ingestCmd.Flags().Lookup("overlap").Changed = false
	searchMode, searchLimit, searchJSON = string(domain.SearchModeAuto), 0, false
	contextLimit, askLimit, tuiLimit = 0, 0, 0
	mcpHTTPAddr = ""
}

// execute runs the root command with args and returns its combined output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

var fixedDuration = 1500 * time.Millisecond
