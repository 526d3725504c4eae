// Package cli implements the grokpedia command line with cobra.
// It is a driving adapter: commands call core services through the
// driving ports and never touch storage or providers directly.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grokpedia/internal/core/ports/driving"
	"github.com/custodia-labs/grokpedia/internal/logger"
)

// version is set at build time.
var version = "dev"

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

// Options carries the global flag values to the bootstrap function.
type Options struct {
	// ConfigPath is the config file or directory. Empty means ~/.grokpedia.
	ConfigPath string

	// DataDir overrides storage.data_dir when set.
	DataDir string
}

// Services bundles the core services the commands use.
type Services struct {
	Ingest   driving.IngestService
	Index    driving.IndexService
	Context  driving.ContextService
	Answer   driving.AnswerService
	Settings driving.SettingsService

	// Close releases storage and provider resources. May be nil.
	Close func()
}

// BootstrapFunc builds the services once the global flags are parsed.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, error)

var (
	ingestService   driving.IngestService
	indexService    driving.IndexService
	contextService  driving.ContextService
	answerService   driving.AnswerService
	settingsService driving.SettingsService

	bootstrap     BootstrapFunc
	closeServices func()
	servicesReady bool

	verbose    bool
	configPath string
	dataDir    string
)

var rootCmd = &cobra.Command{
	Use:   "grokpedia",
	Short: "Answer questions from your own documents",
	Long: `grokpedia ingests documents from local folders, Google Drive, GitHub and
Dropbox, splits them into overlapping chunks and embeds them. Queries select
the most relevant passages by cosine similarity, falling back to substring
matching when no usable vectors exist, and can be answered by an LLM that
cites its sources.`,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds services on demand.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs services directly, bypassing bootstrap.
func SetServices(s *Services) {
	if s == nil {
		ingestService, indexService, contextService, answerService, settingsService = nil, nil, nil, nil, nil
		closeServices = nil
		servicesReady = false
		return
	}
	ingestService = s.Ingest
	indexService = s.Index
	contextService = s.Context
	answerService = s.Answer
	settingsService = s.Settings
	closeServices = s.Close
	servicesReady = true
}

// Execute runs the root command and releases services afterwards.
func Execute() error {
	defer shutdown()
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	defer shutdown()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress and diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.grokpedia/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for the index database")
}

func prepare(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if servicesReady || bootstrap == nil || cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}

	svc, err := bootstrap(commandContext(cmd), Options{ConfigPath: configPath, DataDir: dataDir})
	if err != nil {
		return err
	}
	if svc == nil {
		return errors.New("bootstrap returned no services")
	}
	SetServices(svc)
	return nil
}

func shutdown() {
	if closeServices != nil {
		closeServices()
		closeServices = nil
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
