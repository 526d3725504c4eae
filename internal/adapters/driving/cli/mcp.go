package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grokpedia/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can query your
documents.

Tools:
  assemble_context  passages for a query, rendered with [From <source>] tags
  search            passages selected by an explicit strategy
  ask               an answer grounded on the assembled context
  index_status      chunk and vector counts, staleness and model

By default the server communicates over stdio. Use --http to serve the
streamable HTTP transport instead.

Examples:
  # Stdio mode (for desktop assistants)
  grokpedia mcp

  # HTTP mode (for MCP Inspector, remote access)
  grokpedia mcp --http :8080

Assistant configuration:
  {
    "mcpServers": {
      "grokpedia": {
        "command": "/path/to/grokpedia",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve over HTTP at this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{
		Context: contextService,
		Index:   indexService,
		Answer:  answerService,
	}, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", displayAddr(mcpHTTPAddr))
		return server.RunHTTP(commandContext(cmd), mcpHTTPAddr)
	}

	return server.Run(commandContext(cmd))
}

// displayAddr fills in localhost for addresses like ":8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
