package services

import (
	"maps"
	"strings"

	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
)

const defaultAnswerSystemPrompt = `You are a Grokpedia assistant.
Answer ONLY using the material provided by the user.
If a clear source is not present in the material, say that you don't have enough information.
Prefer accuracy over speculation.

When helpful, organise answers with sections such as Overview, Principles, Implications and Conclusion.

Quote or summarise specific passages and cite each one as [From <source>].`

const defaultAnswerPrompt = `=== CONTEXT: PREVIOUS ARTICLES ===
{{previous}}

=== CONTEXT: RELEVANT SOURCES (SEARCHED) ===
{{sources}}

=== USER QUESTION ===
{{question}}`

var defaultPrompts = map[string]string{
	driven.PromptAnswerSystem: defaultAnswerSystemPrompt,
	driven.PromptAnswer:       defaultAnswerPrompt,
}

// DefaultPrompts returns the built-in prompt templates keyed by prompt name.
func DefaultPrompts() map[string]string {
	return maps.Clone(defaultPrompts)
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func loadPrompt(store driven.PromptStore, name string) string {
	if store != nil {
		if prompt, err := store.Load(name); err == nil && prompt != "" {
			return prompt
		}
	}
	return defaultPrompts[name]
}

// fillAnswerPrompt substitutes the answer template placeholders.
func fillAnswerPrompt(template, previous, sources, question string) string {
	if strings.TrimSpace(previous) == "" {
		previous = "(none)"
	}
	return strings.NewReplacer(
		"{{previous}}", previous,
		"{{sources}}", sources,
		"{{question}}", question,
	).Replace(template)
}
