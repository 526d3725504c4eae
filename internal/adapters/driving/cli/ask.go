package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

var askLimit int

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question from your documents",
	Long: `Assembles context for the question and asks the configured LLM to answer
from that material only, citing each source as "[From <source>]".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askLimit, "limit", "n", 0, "maximum number of passages (default from settings)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	question := strings.Join(args, " ")
	answer, err := answerService.Ask(commandContext(cmd), question, askLimit)
	switch {
	case errors.Is(err, domain.ErrNoContext):
		return fmt.Errorf("%w: ingest documents with 'grokpedia ingest <root>' first", err)
	case errors.Is(err, domain.ErrLLMUnavailable):
		return fmt.Errorf("%w: configure one with 'grokpedia settings set llm.provider <name>'", err)
	case err != nil:
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Text)
	if sources := answerSources(answer); len(sources) > 0 {
		cmd.Println()
		cmd.Printf("Sources: %s\n", strings.Join(sources, ", "))
	}
	return nil
}

// answerSources lists the distinct sources behind an answer in order.
func answerSources(a *domain.Answer) []string {
	if a.Context == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, r := range a.Context.Results {
		if !seen[r.Chunk.Source] {
			seen[r.Chunk.Source] = true
			out = append(out, r.Chunk.Source)
		}
	}
	return out
}
