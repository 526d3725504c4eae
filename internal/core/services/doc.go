// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - IngestService walks a document store and chunks extracted text
//   - IndexService owns the chunk collection, its vectors and snapshots
//   - ContextService ranks passages and assembles the context block
//   - AnswerService prompts the language model with assembled context
//   - SettingsService reads and writes persisted settings
//
// Services are pure Go with no CGO or external dependencies.
package services
