package driven

import (
	"context"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// AIConfigValidator checks provider settings by contacting the provider.
type AIConfigValidator interface {
	// ValidateEmbedding pings the configured embedding provider.
	// Unconfigured settings validate as nil.
	ValidateEmbedding(ctx context.Context, settings *domain.EmbeddingSettings) error

	// ValidateLLM pings the configured LLM provider.
	ValidateLLM(ctx context.Context, settings *domain.LLMSettings) error
}
