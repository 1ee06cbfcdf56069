// Command repdesk answers customer questions from a team's Q&A history.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/repdesk/internal/adapters/driven/catalog"
	"github.com/custodia-labs/repdesk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/repdesk/internal/adapters/driven/review"
	"github.com/custodia-labs/repdesk/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/repdesk/internal/adapters/driven/transcript"
	"github.com/custodia-labs/repdesk/internal/adapters/driven/vectorizer/tfidf"
	"github.com/custodia-labs/repdesk/internal/adapters/driving/cli"
	"github.com/custodia-labs/repdesk/internal/core/services"
	"github.com/custodia-labs/repdesk/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the adapters and services for one command run.
func bootstrap(_ context.Context, opts cli.Options) (*cli.Services, error) {
	home, err := dataHome(opts.DataDir)
	if err != nil {
		return nil, err
	}

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	retrieval, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	store, err := sqlite.NewStore(filepath.Join(home, "data"))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	repo := store.RecordRepository()
	products := store.ProductCatalog()

	flagsFile := settingsService.FlagsFile()
	if flagsFile == "" {
		flagsFile = filepath.Join(home, "flags.jsonl")
	}
	reporter, err := review.NewFileReporter(flagsFile)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("open flag report: %w", err)
	}

	templates, err := file.NewTemplateStore(filepath.Join(home, "templates"))
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("open templates: %w", err)
	}
	catalogService := services.NewCatalogService(products)
	catalogService.SetTemplateStore(templates)

	seed, err := catalog.Load(os.Getenv("REPDESK_CATALOG"))
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	index := services.NewIndex(repo, tfidf.New())
	ingest := services.NewIngestService(index, repo, products, transcript.NewParser(), retrieval)

	ttl := time.Duration(settingsService.SessionTTLMinutes()) * time.Minute
	sessions := services.NewSessionRegistry(ttl, func() *services.Session {
		return services.NewSession(index, repo, products, reporter, retrieval)
	})

	logger.Debug("Data directory: %s", home)
	logger.Debug("Database: %s", store.Path())

	return &cli.Services{
		Sessions: sessions,
		Ingest:   ingest,
		Catalog:  catalogService,
		Index:    index,
		Settings: settingsService,
		Seed:     services.NewSeedService(seed, products, ingest),
		Flags:    reporter,
		Close:    store.Close,
	}, nil
}

// dataHome resolves the data directory: the flag, then REPDESK_HOME,
// then ~/.repdesk.
func dataHome(flagDir string) (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	if env := os.Getenv("REPDESK_HOME"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("cannot determine home directory; set REPDESK_HOME")
	}
	return filepath.Join(home, ".repdesk"), nil
}
