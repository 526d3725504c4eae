package driven

// Prompt names used with PromptStore.
const (
	// PromptAnswerSystem is the system instruction for grounded answers.
	PromptAnswerSystem = "answer_system"

	// PromptAnswer is the user prompt template for grounded answers.
	// Placeholders: {{previous}}, {{sources}}, {{question}}.
	PromptAnswer = "answer"
)

// PromptStore loads user-customisable prompt templates.
type PromptStore interface {
	// Load returns the template for name.
	// Falls back to the built-in default when no custom file exists.
	Load(name string) (string, error)
}
