package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/grokpedia/internal/core/domain"
)

var (
	ingestAppend  bool
	ingestSize    int
	ingestOverlap int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [root]",
	Short: "Ingest documents from a folder or document store",
	Long: `Walks a document store breadth-first, extracts the text of every
readable item and splits it into overlapping chunks.

Roots:
  ./notes, file:///srv/docs           local directory
  gdrive://<folderID>                 Google Drive folder
  github://owner/repo[/path][@ref]    GitHub repository
  dropbox:///path                     Dropbox folder

Re-ingesting a root replaces the chunks it produced before unless --append
is given. Items that cannot be read are reported and skipped. Run
'grokpedia index build' afterwards to embed the new chunks.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestAppend, "append", false, "keep chunks from earlier runs of the same root")
	ingestCmd.Flags().IntVar(&ingestSize, "size", 0, "chunk size in tokens (default from settings)")
	ingestCmd.Flags().IntVar(&ingestOverlap, "overlap", 0, "tokens shared by consecutive chunks (default from settings)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	opts := domain.IngestOptions{
		ChunkSize: ingestSize,
		Append:    ingestAppend,
	}
	if cmd.Flags().Changed("overlap") {
		overlap := ingestOverlap
		opts.Overlap = &overlap
	}

	summary, err := ingestService.Ingest(commandContext(cmd), args[0], opts)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	printIngestSummary(cmd, summary)
	return nil
}

func printIngestSummary(cmd *cobra.Command, s *domain.IngestSummary) {
	cmd.Printf("Ingested %s\n", s.Root)
	cmd.Printf("  Containers: %d\n", s.Containers)
	cmd.Printf("  Items:      %d ingested, %d skipped\n", s.Ingested, s.Skipped)
	if s.Replaced > 0 {
		cmd.Printf("  Chunks:     %d (replaced %d)\n", s.Chunks, s.Replaced)
	} else {
		cmd.Printf("  Chunks:     %d\n", s.Chunks)
	}
	cmd.Printf("  Duration:   %s\n", s.Duration.Round(time.Millisecond))

	if len(s.Skips) > 0 {
		warn := color.New(color.FgYellow).SprintFunc()
		cmd.Println()
		cmd.Println("Skipped:")
		for _, sk := range s.Skips {
			name := sk.Name
			if name == "" {
				name = sk.ItemID
			}
			if sk.MIMEType != "" {
				name = fmt.Sprintf("%s (%s)", name, sk.MIMEType)
			}
			cmd.Printf("  %s %s: %s\n", warn("!"), name, sk.Reason)
		}
	}

	if s.Chunks > 0 {
		cmd.Println()
		cmd.Println("Run 'grokpedia index build' to embed the new chunks.")
	}
}
