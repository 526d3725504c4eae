package driving

import (
	"context"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// SettingValue is one effective setting for display.
type SettingValue struct {
	Key    string
	Value  string
	Secret bool
}

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with environment overrides applied.
	Get() (*domain.Settings, error)

	// Set stores a single dotted key after validating the resulting settings.
	Set(key, value string) error

	// Values lists every settable key with its effective value.
	Values() ([]SettingValue, error)

	// Keys returns the settable keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// ValidateEmbeddingConfig pings the configured embedding provider.
	ValidateEmbeddingConfig(ctx context.Context) error

	// ValidateLLMConfig pings the configured LLM provider.
	ValidateLLMConfig(ctx context.Context) error
}
