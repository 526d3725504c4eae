package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grokpedia/internal/adapters/driving/tui"
)

var tuiLimit int

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for grokpedia.

Type a query and press Enter to list the matching passages, or press Tab to
switch to ask mode and have the LLM answer from them.

Controls:
  Enter        Run the query
  Tab          Switch between search and ask
  ↑/k, ↓/j     Select a passage
  PgUp, PgDn   Scroll the reader
  Esc          Edit the query
  Ctrl+S       Refresh the index status
  Ctrl+C       Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVarP(&tuiLimit, "limit", "n", 0, "maximum number of passages per query (default from settings)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(contextService, answerService, indexService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(commandContext(cmd)).WithTopK(tuiLimit)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
