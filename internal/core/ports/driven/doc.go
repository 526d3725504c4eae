// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Connector: Lists and reads items from a hierarchical document store
//   - ConnectorFactory: Resolves a root URI to a Connector
//   - Extractor: Turns raw bytes of one content type into plain text
//   - ExtractorRegistry: Selects the extractor for a document
//   - IndexStore: Persists full index snapshots
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it, retrieval
//     uses the substring fallback.
//   - LLMService: Language model operations. Without it, answers are disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or extractor package
package driven
