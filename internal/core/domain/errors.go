package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown document type or root scheme.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnreadable indicates document bytes could not be decoded to text.
	ErrUnreadable = errors.New("unreadable content")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Answer generation is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Vector search is disabled and retrieval falls back to substring matching.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrIndexStale indicates the vectors no longer match the chunk collection.
	ErrIndexStale = errors.New("index stale")

	// ErrNoContext indicates retrieval selected no passages for a question.
	ErrNoContext = errors.New("no matching context")

	// ErrConfigNotFound indicates no configuration file exists yet.
	ErrConfigNotFound = errors.New("config not found")

	// Connector Errors.

	// ErrAuthRequired indicates the document store requires credentials but none are configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the configured credentials were rejected.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrConnectorClosed indicates the connector has been closed.
	ErrConnectorClosed = errors.New("connector closed")
)
