package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Environment variables that override stored settings.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvOpenAIKey         = "OPENAI_API_KEY"
	EnvAnthropicKey      = "ANTHROPIC_API_KEY"
	EnvOllamaHost        = "OLLAMA_HOST"
	EnvDatabaseURL       = "GROKPEDIA_DATABASE_URL"
	EnvGoogleCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvGitHubToken       = "GITHUB_TOKEN"
	EnvDropboxToken      = "DROPBOX_TOKEN"
)

// setting binds a dotted config key to a Settings field.
type setting struct {
	key    string
	secret bool
	isInt  bool
	get    func(s *domain.Settings) string
	set    func(s *domain.Settings, v string) error
}

func stringSetting(key string, secret bool, field func(s *domain.Settings) *string) setting {
	return setting{
		key:    key,
		secret: secret,
		get:    func(s *domain.Settings) string { return *field(s) },
		set: func(s *domain.Settings, v string) error {
			*field(s) = v
			return nil
		},
	}
}

func intSetting(key string, field func(s *domain.Settings) *int) setting {
	return setting{
		key:   key,
		isInt: true,
		get:   func(s *domain.Settings) string { return strconv.Itoa(*field(s)) },
		set: func(s *domain.Settings, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrInvalidInput, key, v)
			}
			*field(s) = n
			return nil
		},
	}
}

func providerSetting(key string, allowed []domain.AIProvider, field func(s *domain.Settings) *domain.AIProvider) setting {
	return setting{
		key: key,
		get: func(s *domain.Settings) string { return field(s).String() },
		set: func(s *domain.Settings, v string) error {
			p := domain.AIProvider(strings.ToLower(strings.TrimSpace(v)))
			if p == "" {
				*field(s) = p
				return nil
			}
			for _, a := range allowed {
				if a == p {
					*field(s) = p
					return nil
				}
			}
			return fmt.Errorf("%w: %s must be one of %v, got %q", domain.ErrInvalidInput, key, allowed, v)
		},
	}
}

var settingsTable = []setting{
	providerSetting("embedding.provider", domain.AllEmbeddingProviders(),
		func(s *domain.Settings) *domain.AIProvider { return &s.Embedding.Provider }),
	stringSetting("embedding.model", false, func(s *domain.Settings) *string { return &s.Embedding.Model }),
	stringSetting("embedding.base_url", false, func(s *domain.Settings) *string { return &s.Embedding.BaseURL }),
	stringSetting("embedding.api_key", true, func(s *domain.Settings) *string { return &s.Embedding.APIKey }),

	providerSetting("llm.provider", domain.AllLLMProviders(),
		func(s *domain.Settings) *domain.AIProvider { return &s.LLM.Provider }),
	stringSetting("llm.model", false, func(s *domain.Settings) *string { return &s.LLM.Model }),
	stringSetting("llm.base_url", false, func(s *domain.Settings) *string { return &s.LLM.BaseURL }),
	stringSetting("llm.api_key", true, func(s *domain.Settings) *string { return &s.LLM.APIKey }),

	intSetting("chunker.size", func(s *domain.Settings) *int { return &s.Chunker.Size }),
	intSetting("chunker.overlap", func(s *domain.Settings) *int { return &s.Chunker.Overlap }),

	intSetting("retrieval.top_k", func(s *domain.Settings) *int { return &s.Retrieval.TopK }),
	intSetting("retrieval.history_size", func(s *domain.Settings) *int { return &s.Retrieval.HistorySize }),

	{
		key: "storage.backend",
		get: func(s *domain.Settings) string { return string(s.Storage.Backend) },
		set: func(s *domain.Settings, v string) error {
			s.Storage.Backend = domain.StorageBackend(strings.ToLower(strings.TrimSpace(v)))
			return nil
		},
	},
	stringSetting("storage.data_dir", false, func(s *domain.Settings) *string { return &s.Storage.DataDir }),
	stringSetting("storage.database_url", true, func(s *domain.Settings) *string { return &s.Storage.DatabaseURL }),

	stringSetting("connectors.google_credentials_file", false,
		func(s *domain.Settings) *string { return &s.Connectors.GoogleCredentialsFile }),
	stringSetting("connectors.google_token", true, func(s *domain.Settings) *string { return &s.Connectors.GoogleToken }),
	stringSetting("connectors.github_token", true, func(s *domain.Settings) *string { return &s.Connectors.GitHubToken }),
	stringSetting("connectors.dropbox_token", true, func(s *domain.Settings) *string { return &s.Connectors.DropboxToken }),
}

func lookupSetting(key string) (setting, bool) {
	for _, st := range settingsTable {
		if st.key == key {
			return st, true
		}
	}
	return setting{}, false
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
// aiValidator may be nil, in which case provider validation is skipped.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		lookupEnv:   os.LookupEnv,
	}
}

// Get retrieves current application settings: defaults, then stored
// values, then environment overrides.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings, err := s.stored()
	if err != nil {
		return nil, err
	}
	s.applyEnv(settings)
	return settings, nil
}

// stored returns defaults overlaid with the config file.
func (s *SettingsService) stored() (*domain.Settings, error) {
	settings := domain.DefaultSettings()
	for _, st := range settingsTable {
		val, ok := s.configStore.Get(st.key)
		if !ok {
			continue
		}
		if err := st.set(&settings, fmt.Sprint(val)); err != nil {
			return nil, fmt.Errorf("config %s: %w", s.configStore.Path(), err)
		}
	}
	fillModelDefaults(&settings)
	return &settings, nil
}

func fillModelDefaults(settings *domain.Settings) {
	if settings.Embedding.Provider != "" && settings.Embedding.Model == "" {
		settings.Embedding.Model = domain.DefaultEmbeddingModels()[settings.Embedding.Provider]
	}
	if settings.LLM.Provider != "" && settings.LLM.Model == "" {
		settings.LLM.Model = domain.DefaultLLMModels()[settings.LLM.Provider]
	}
}

func (s *SettingsService) applyEnv(settings *domain.Settings) {
	env := func(name string) string {
		v, ok := s.lookupEnv(name)
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}

	if key := env(EnvOpenAIKey); key != "" {
		if settings.Embedding.Provider == domain.AIProviderOpenAI {
			settings.Embedding.APIKey = key
		}
		if settings.LLM.Provider == domain.AIProviderOpenAI {
			settings.LLM.APIKey = key
		}
	}
	if key := env(EnvAnthropicKey); key != "" && settings.LLM.Provider == domain.AIProviderAnthropic {
		settings.LLM.APIKey = key
	}
	if host := env(EnvOllamaHost); host != "" {
		if !strings.Contains(host, "://") {
			host = "http://" + host
		}
		if settings.Embedding.Provider == domain.AIProviderOllama {
			settings.Embedding.BaseURL = host
		}
		if settings.LLM.Provider == domain.AIProviderOllama {
			settings.LLM.BaseURL = host
		}
	}
	if v := env(EnvDatabaseURL); v != "" {
		settings.Storage.DatabaseURL = v
	}
	if v := env(EnvGoogleCredentials); v != "" {
		settings.Connectors.GoogleCredentialsFile = v
	}
	if v := env(EnvGitHubToken); v != "" {
		settings.Connectors.GitHubToken = v
	}
	if v := env(EnvDropboxToken); v != "" {
		settings.Connectors.DropboxToken = v
	}
}

// Set stores a single dotted key. The value is applied to the stored
// settings and the result validated before anything is written.
func (s *SettingsService) Set(key, value string) error {
	st, ok := lookupSetting(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	settings, err := s.stored()
	if err != nil {
		return err
	}
	if err := st.set(settings, value); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	// Store the normalised form, so ints stay ints in the file.
	var stored any = st.get(settings)
	if st.isInt {
		stored, _ = strconv.Atoi(st.get(settings))
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Values lists every settable key with its effective value.
func (s *SettingsService) Values() ([]driving.SettingValue, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	values := make([]driving.SettingValue, len(settingsTable))
	for i, st := range settingsTable {
		values[i] = driving.SettingValue{
			Key:    st.key,
			Value:  st.get(settings),
			Secret: st.secret,
		}
	}
	return values, nil
}

// Keys returns the settable keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingsTable))
	for i, st := range settingsTable {
		keys[i] = st.key
	}
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig(ctx context.Context) error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(ctx, &settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig(ctx context.Context) error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(ctx, &settings.LLM)
}
