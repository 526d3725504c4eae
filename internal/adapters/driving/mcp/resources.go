package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Grokpedia resources.
	uriScheme = "grokpedia://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index/status",
		Name:        "index-status",
		Description: "Chunk and vector counts of the local index",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "answers",
		Name:        "answers",
		Description: "Recent answers, oldest first",
		MIMEType:    "application/json",
	}, s.handleAnswersResource)
}

// handleStatusResource returns the index status as JSON.
func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Index == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, toStatusOutput(s.ports.Index.Status(ctx)))
}

// handleAnswersResource returns the answer history.
func (s *Server) handleAnswersResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type answerInfo struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}

	infos := []answerInfo{}
	if s.ports.Answer != nil {
		for _, a := range s.ports.Answer.History() {
			infos = append(infos, answerInfo{Question: a.Question, Answer: a.Text})
		}
	}
	return jsonResource(req.Params.URI, infos)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
