// Command grokpedia answers questions from ingested documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/grokpedia/internal/adapters/driven/ai"
	"github.com/custodia-labs/grokpedia/internal/adapters/driven/config/file"
	"github.com/custodia-labs/grokpedia/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/grokpedia/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/grokpedia/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/grokpedia/internal/adapters/driving/cli"
	"github.com/custodia-labs/grokpedia/internal/connectors"
	"github.com/custodia-labs/grokpedia/internal/core/domain"
	"github.com/custodia-labs/grokpedia/internal/core/ports/driven"
	"github.com/custodia-labs/grokpedia/internal/core/services"
	"github.com/custodia-labs/grokpedia/internal/extractors"
	"github.com/custodia-labs/grokpedia/internal/logger"
)

// version is set by the release build via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap wires the adapters into the core services.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	if err := file.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	configStore, err := file.NewConfigStore(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	logger.Debug("Config file: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if opts.DataDir != "" {
		settings.Storage.DataDir = opts.DataDir
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	store, err := openStore(ctx, settings.Storage)
	if err != nil {
		return nil, err
	}

	logger.Section("AI providers")
	aiServices := ai.Initialise(ctx, settings)
	for _, w := range aiServices.Warnings {
		logger.Warn("%s", w)
	}
	if aiServices.FellBack {
		logger.Info("No usable embedding provider, queries use substring matching")
	}

	closeAll := func() {
		aiServices.Close()
		if err := store.Close(); err != nil {
			logger.Warn("closing store: %v", err)
		}
	}

	indexService := services.NewIndexService(store, aiServices.EmbeddingService)
	if err := indexService.Load(ctx); err != nil {
		closeAll()
		return nil, err
	}

	prompts, err := file.NewPromptStore(promptDir(opts.ConfigPath), services.DefaultPrompts())
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("opening prompts: %w", err)
	}

	contextService := services.NewContextService(indexService, settings.Retrieval.TopK)

	return &cli.Services{
		Ingest: services.NewIngestService(
			connectors.NewFactory(settings.Connectors),
			extractors.NewDefaultRegistry(),
			indexService,
			settings.Chunker,
		),
		Index:    indexService,
		Context:  contextService,
		Answer:   services.NewAnswerService(contextService, aiServices.LLMService, prompts, settings.Retrieval.HistorySize),
		Settings: settingsService,
		Close:    closeAll,
	}, nil
}

// openStore opens the snapshot store selected by the settings.
func openStore(ctx context.Context, cfg domain.StorageSettings) (driven.IndexStore, error) {
	switch cfg.Backend {
	case domain.StorageSQLite, "":
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Debug("Index database: %s", store.Path())
		return store, nil
	case domain.StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("%w: storage.database_url is required for postgres", domain.ErrInvalidInput)
		}
		store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return store, nil
	case domain.StorageMemory:
		return memory.NewIndexStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, cfg.Backend)
	}
}

// promptDir keeps prompts next to a custom config file.
// An empty result selects ~/.grokpedia/prompts.
func promptDir(configPath string) string {
	if configPath == "" {
		return ""
	}
	if info, err := os.Stat(configPath); err == nil && info.IsDir() {
		return filepath.Join(configPath, "prompts")
	}
	return filepath.Join(filepath.Dir(configPath), "prompts")
}
