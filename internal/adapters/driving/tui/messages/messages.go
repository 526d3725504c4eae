// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// Mode selects what submitting a query does.
type Mode int

const (
	// ModeSearch assembles context and lists the selected passages.
	ModeSearch Mode = iota
	// ModeAsk generates an answer grounded on the assembled context.
	ModeAsk
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeAsk:
		return "ask"
	default:
		return "unknown"
	}
}

// Next returns the other mode.
func (m Mode) Next() Mode {
	if m == ModeSearch {
		return ModeAsk
	}
	return ModeSearch
}

// SearchCompleted carries an assembled context back to the model.
type SearchCompleted struct {
	Query   string
	Context *domain.AssembledContext
	Err     error
}

// AnswerCompleted carries a generated answer back to the model.
type AnswerCompleted struct {
	Question string
	Answer   *domain.Answer
	Err      error
}

// StatusLoaded carries the index status.
type StatusLoaded struct {
	Status domain.IndexStatus
}

// ErrorOccurred is sent when an operation fails outside a query.
type ErrorOccurred struct {
	Err error
}

// Quit is sent to exit the application.
type Quit struct{}
