package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

var (
	searchMode  string
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search ingested passages",
	Long: `Selects the passages most relevant to a query.

Modes:
  auto       vector search, falling back to substring matching (default)
  vector     cosine similarity against the embedding index only
  keyword    ranks by the number of shared words
  substring  case-insensitive literal match in collection order`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", string(domain.SearchModeAuto), "search mode: auto, vector, keyword or substring")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of passages (default from settings)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

// searchResultJSON is the --json shape of one passage.
type searchResultJSON struct {
	Source   string  `json:"source"`
	Position int     `json:"position"`
	Score    float64 `json:"score"`
	Strategy string  `json:"strategy"`
	Text     string  `json:"text"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if contextService == nil {
		return errors.New("context service not configured")
	}

	mode := domain.SearchMode(strings.ToLower(searchMode))
	if !mode.IsValid() {
		return fmt.Errorf("%w: unknown search mode %q", domain.ErrInvalidInput, searchMode)
	}

	assembled, err := contextService.Search(commandContext(cmd), args[0], domain.SearchOptions{
		Mode: mode,
		TopK: searchLimit,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, assembled.Results)
	}
	return outputSearchTable(cmd, assembled)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	out := make([]searchResultJSON, len(results))
	for i, r := range results {
		out[i] = searchResultJSON{
			Source:   r.Chunk.Source,
			Position: r.Chunk.Position,
			Score:    r.Score,
			Strategy: string(r.Strategy),
			Text:     r.Chunk.Text,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, assembled *domain.AssembledContext) error {
	if assembled.IsEmpty() {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results (%s):\n", assembled.Strategy)
	cmd.Println()
	for i, r := range assembled.Results {
		cmd.Printf("  [%d] %s #%d (%.2f)\n", i+1, r.Chunk.Source, r.Chunk.Position, r.Score)
		cmd.Printf("      %s\n", snippet(r.Chunk.Text, 160))
		cmd.Println()
	}
	return nil
}

// snippet collapses whitespace and cuts s to at most n runes.
func snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
