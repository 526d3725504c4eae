// Package driving defines the interfaces the CLI, TUI and MCP adapters call.
//
// IngestService fills the index from a document store, IndexService embeds
// and inspects it, ContextService retrieves passages and AnswerService turns
// them into a grounded answer. SettingsService manages persisted settings.
//
// Implementations live in internal/core/services.
package driving
