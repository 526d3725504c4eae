package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

// ContextInput is the input schema for the assemble_context tool.
type ContextInput struct {
	Query string `json:"query" jsonschema:"the text to find supporting passages for"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of passages (default from settings)"`
}

// ContextOutput is the output schema for the assemble_context tool.
type ContextOutput struct {
	Context  string          `json:"context"`
	Strategy string          `json:"strategy"`
	Passages []PassageOutput `json:"passages"`
	Count    int             `json:"count"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query"`
	Mode  string `json:"mode,omitempty" jsonschema:"auto, vector, keyword or substring (default auto)"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default from settings)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results  []PassageOutput `json:"results"`
	Strategy string          `json:"strategy"`
	Count    int             `json:"count"`
}

// PassageOutput represents a single selected chunk.
type PassageOutput struct {
	Source   string  `json:"source"`
	Root     string  `json:"root"`
	ItemID   string  `json:"item_id"`
	Position int     `json:"position"`
	Text     string  `json:"text"`
	Score    float64 `json:"score"`
	Strategy string  `json:"strategy"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from indexed material"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"maximum number of passages to ground on"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// StatusInput is the input schema for the index_status tool.
type StatusInput struct{}

// StatusOutput is the output schema for the index_status tool.
type StatusOutput struct {
	Entries        int    `json:"entries"`
	Vectors        int    `json:"vectors"`
	MissingVectors int    `json:"missing_vectors"`
	Sources        int    `json:"sources"`
	Stale          bool   `json:"stale"`
	Model          string `json:"model,omitempty"`
	Dimensions     int    `json:"dimensions,omitempty"`
	BuiltAt        string `json:"built_at,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "assemble_context",
		Description: "Select indexed passages relevant to a query and render them with their sources",
	}, s.handleAssembleContext)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search indexed passages with a chosen retrieval strategy",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using only indexed material",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_status",
		Description: "Report chunk and vector counts and whether the vector index is stale",
	}, s.handleIndexStatus)
}

func (s *Server) handleAssembleContext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ContextInput,
) (*mcp.CallToolResult, ContextOutput, error) {
	assembled, err := s.ports.Context.Assemble(ctx, input.Query, input.TopK)
	if err != nil {
		return nil, ContextOutput{}, err
	}

	passages := toPassages(assembled.Results)
	return nil, ContextOutput{
		Context:  assembled.Text,
		Strategy: string(assembled.Strategy),
		Passages: passages,
		Count:    len(passages),
	}, nil
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{
		Mode: domain.SearchMode(input.Mode),
		TopK: input.Limit,
	}
	assembled, err := s.ports.Context.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	results := toPassages(assembled.Results)
	return nil, SearchOutput{
		Results:  results,
		Strategy: string(assembled.Strategy),
		Count:    len(results),
	}, nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Answer == nil {
		return nil, AskOutput{}, domain.ErrLLMUnavailable
	}

	answer, err := s.ports.Answer.Ask(ctx, input.Question, input.TopK)
	if err != nil {
		return nil, AskOutput{}, err
	}

	out := AskOutput{Answer: answer.Text, Sources: []string{}}
	if answer.Context != nil {
		seen := make(map[string]bool)
		for _, r := range answer.Context.Results {
			if !seen[r.Chunk.Source] {
				seen[r.Chunk.Source] = true
				out.Sources = append(out.Sources, r.Chunk.Source)
			}
		}
	}
	return nil, out, nil
}

func (s *Server) handleIndexStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	if s.ports.Index == nil {
		return nil, StatusOutput{}, domain.ErrNotFound
	}
	return nil, toStatusOutput(s.ports.Index.Status(ctx)), nil
}

func toPassages(results []domain.SearchResult) []PassageOutput {
	out := make([]PassageOutput, len(results))
	for i, r := range results {
		out[i] = PassageOutput{
			Source:   r.Chunk.Source,
			Root:     r.Chunk.Root,
			ItemID:   r.Chunk.ItemID,
			Position: r.Chunk.Position,
			Text:     r.Chunk.Text,
			Score:    r.Score,
			Strategy: string(r.Strategy),
		}
	}
	return out
}

func toStatusOutput(st domain.IndexStatus) StatusOutput {
	out := StatusOutput{
		Entries:        st.Entries,
		Vectors:        st.Vectors,
		MissingVectors: st.MissingVectors,
		Sources:        st.Sources,
		Stale:          st.Stale,
		Model:          st.Model,
		Dimensions:     st.Dimensions,
	}
	if !st.BuiltAt.IsZero() {
		out.BuiltAt = st.BuiltAt.UTC().Format(time.RFC3339)
	}
	return out
}
