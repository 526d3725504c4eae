package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var contextLimit int

var contextCmd = &cobra.Command{
	Use:   "context [query]",
	Short: "Print the assembled context for a query",
	Long: `Prints the passages an answer would be generated from, each block
prefixed with "[From <source>]". Useful for piping into other tools.`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

func init() {
	contextCmd.Flags().IntVarP(&contextLimit, "limit", "n", 0, "maximum number of passages (default from settings)")
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	if contextService == nil {
		return errors.New("context service not configured")
	}

	assembled, err := contextService.Assemble(commandContext(cmd), args[0], contextLimit)
	if err != nil {
		return fmt.Errorf("assemble context: %w", err)
	}
	if assembled.IsEmpty() {
		cmd.PrintErrln("No matching passages.")
		return nil
	}

	cmd.Println(assembled.Text)
	return nil
}
