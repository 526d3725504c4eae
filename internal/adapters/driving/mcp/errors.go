// Package mcp provides an MCP (Model Context Protocol) server adapter for Grokpedia.
// It lets AI assistants assemble context from the local index and ask
// grounded questions.
package mcp

import "errors"

// ErrMissingContextService is returned when the context service is not provided.
var ErrMissingContextService = errors.New("mcp: context service is required")
