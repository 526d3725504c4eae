package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the embedding index",
	Long:  `Build, inspect and clear the chunk collection and its vectors.`,
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Embed every chunk",
	Long: `Embeds every ingested chunk with the configured embedding provider and
saves the result. Chunks whose embedding fails are kept without a vector.
An interrupted build leaves no vectors, so queries fall back to substring
matching until the next successful build.`,
	Args: cobra.NoArgs,
	RunE: runIndexBuild,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index health",
	Args:  cobra.NoArgs,
	RunE:  runIndexStatus,
}

var indexClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every chunk and vector",
	Args:  cobra.NoArgs,
	RunE:  runIndexClear,
}

func init() {
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexStatusCmd)
	indexCmd.AddCommand(indexClearCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexBuild(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("Embedding"),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(30),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
	}

	summary, err := indexService.Build(commandContext(cmd), progress)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	cmd.Printf("Embedded %d of %d chunks with %s\n", summary.Embedded, summary.Total, summary.Model)
	if summary.Missing > 0 {
		cmd.Printf("%s %d chunks have no vector; re-run the build to retry them\n",
			color.New(color.FgYellow).Sprint("Warning:"), summary.Missing)
	}
	cmd.Printf("Duration: %s\n", summary.Duration.Round(time.Millisecond))
	return nil
}

func runIndexStatus(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	printIndexStatus(cmd, indexService.Status(commandContext(cmd)))
	return nil
}

func printIndexStatus(cmd *cobra.Command, st domain.IndexStatus) {
	cmd.Println("Index Status")
	cmd.Println("============")
	cmd.Printf("  Chunks:   %d from %d items\n", st.Entries, st.Sources)
	cmd.Printf("  Vectors:  %d (%d missing)\n", st.Vectors, st.MissingVectors)
	if st.Model != "" {
		cmd.Printf("  Model:    %s (%d dimensions)\n", st.Model, st.Dimensions)
	}
	if !st.BuiltAt.IsZero() {
		cmd.Printf("  Built:    %s\n", st.BuiltAt.Local().Format(time.RFC3339))
	}
	cmd.Printf("  Version:  %d (indexed at %d)\n", st.Version, st.IndexedVersion)

	switch {
	case st.Entries == 0:
		cmd.Println("  State:    empty, run 'grokpedia ingest <root>'")
	case st.Vectors == 0:
		cmd.Println("  State:    " + color.New(color.FgYellow).Sprint("no vectors") + ", run 'grokpedia index build'")
	case st.Stale:
		cmd.Println("  State:    " + color.New(color.FgYellow).Sprint("stale") + ", run 'grokpedia index build'")
	default:
		cmd.Println("  State:    " + color.New(color.FgGreen).Sprint("ready"))
	}
}

func runIndexClear(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if err := indexService.Clear(commandContext(cmd)); err != nil {
		return fmt.Errorf("index clear failed: %w", err)
	}
	cmd.Println("Index cleared.")
	return nil
}
