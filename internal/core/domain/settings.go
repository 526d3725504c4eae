package domain

import "fmt"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// StorageBackend identifies where index snapshots are persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite stores snapshots in a local SQLite file.
	StorageSQLite StorageBackend = "sqlite"

	// StoragePostgres stores snapshots in Postgres with pgvector columns.
	StoragePostgres StorageBackend = "postgres"

	// StorageMemory keeps snapshots in process memory only.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StoragePostgres, StorageMemory:
		return true
	default:
		return false
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or OpenAI-compatible servers).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
// Anthropic has no embedding API and is never configured here.
func (e EmbeddingSettings) IsConfigured() bool {
	if e.Provider != AIProviderOllama && e.Provider != AIProviderOpenAI {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// ChunkerSettings holds text window configuration.
type ChunkerSettings struct {
	// Size is the window length in tokens.
	Size int

	// Overlap is the number of tokens shared by consecutive windows.
	Overlap int
}

// Validate checks 0 <= Overlap < Size.
func (c ChunkerSettings) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidInput, c.Size)
	}
	if c.Overlap < 0 || c.Overlap >= c.Size {
		return fmt.Errorf("%w: overlap must be in [0, %d), got %d", ErrInvalidInput, c.Size, c.Overlap)
	}
	return nil
}

// RetrievalSettings holds query-time configuration.
type RetrievalSettings struct {
	// TopK is the default number of passages to select.
	TopK int

	// HistorySize is how many previous answers are offered to the LLM.
	HistorySize int
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	// Backend selects the snapshot store.
	Backend StorageBackend

	// DataDir is the directory for the SQLite file.
	DataDir string

	// DatabaseURL is the Postgres connection string.
	DatabaseURL string
}

// ConnectorSettings holds document store credentials.
type ConnectorSettings struct {
	// GoogleCredentialsFile is a service account or authorised-user JSON file.
	GoogleCredentialsFile string

	// GoogleToken is an OAuth access token for Drive.
	GoogleToken string

	// GitHubToken is a personal access token.
	GitHubToken string

	// DropboxToken is an OAuth access token.
	DropboxToken string
}

// Settings holds all application settings.
type Settings struct {
	Embedding  EmbeddingSettings
	LLM        LLMSettings
	Chunker    ChunkerSettings
	Retrieval  RetrievalSettings
	Storage    StorageSettings
	Connectors ConnectorSettings
}

// Validate checks the settings that would make the core misbehave.
func (s Settings) Validate() error {
	if err := s.Chunker.Validate(); err != nil {
		return err
	}
	if s.Retrieval.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalidInput, s.Retrieval.TopK)
	}
	if !s.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidInput, s.Storage.Backend)
	}
	if s.Storage.Backend == StoragePostgres && s.Storage.DatabaseURL == "" {
		return fmt.Errorf("%w: postgres backend requires storage.database_url", ErrInvalidInput)
	}
	return nil
}

// DefaultSettings returns settings with sensible defaults.
// AI providers are left unconfigured; without an embedding provider
// retrieval uses the substring fallback.
func DefaultSettings() Settings {
	return Settings{
		Chunker: ChunkerSettings{
			Size:    200,
			Overlap: 40,
		},
		Retrieval: RetrievalSettings{
			TopK:        5,
			HistorySize: 3,
		},
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4.1",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
