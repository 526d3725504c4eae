// Package tui provides an interactive terminal user interface for grokpedia.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/grokpedia/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the TUI.
type Ports struct {
	// Context assembles passages for a query. Required.
	Context driving.ContextService

	// Answer generates answers. Optional; ask mode reports the LLM as
	// unavailable without it.
	Answer driving.AnswerService

	// Index reports index status. Optional.
	Index driving.IndexService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	contextService driving.ContextService,
	answer driving.AnswerService,
	index driving.IndexService,
) *Ports {
	return &Ports{
		Context: contextService,
		Answer:  answer,
		Index:   index,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Context == nil {
		return ErrMissingContextService
	}
	return nil
}
