package mcp

import (
	"github.com/custodia-labs/grokpedia/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Context selects and renders passages.
	Context driving.ContextService

	// Index reports index health.
	Index driving.IndexService

	// Answer generates grounded answers.
	Answer driving.AnswerService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Context == nil {
		return ErrMissingContextService
	}
	// Index and Answer are optional; their tools report unavailability.
	return nil
}
