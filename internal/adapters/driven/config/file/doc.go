// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML or YAML configuration storage with dotted keys
//   - PromptStore: user-editable LLM prompt templates
//
// LoadDotEnv reads a .env file into the environment before settings are
// resolved, so provider keys can live next to a project.
package file
