// Package cli provides the repdesk command-line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
	"github.com/custodia-labs/repdesk/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// FlagLister reads back flags raised for review.
type FlagLister interface {
	List(ctx context.Context) ([]domain.FlagReport, error)
}

// Services holds the core services the commands drive.
type Services struct {
	Sessions driving.SessionProvider
	Ingest   driving.IngestService
	Catalog  driving.CatalogService
	Index    driving.IndexService
	Settings driving.SettingsService
	Seed     driving.SeedService
	Flags    FlagLister

	// Close releases resources such as the database. Optional.
	Close func() error
}

// Options are the global flags handed to the bootstrap function.
type Options struct {
	DataDir string
	Verbose bool
}

// Bootstrap builds the services once global flags are parsed.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	sessionProvider driving.SessionProvider
	ingestService   driving.IngestService
	catalogService  driving.CatalogService
	indexService    driving.IndexService
	settingsService driving.SettingsService
	seedService     driving.SeedService
	flagLister      FlagLister
	closeServices   func() error
)

var (
	bootstrap Bootstrap
	verbose   bool
	dataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "repdesk",
	Short: "Answer customer questions from your team's Q&A history",
	Long: `repdesk helps sales and service reps answer customer questions.

Ask a question in your own words and repdesk ranks the stored questions
closest to it, with their answers. Add new Q&A pairs by hand or straight
from call transcripts, look up products, and vote on the answers that help.`,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline details to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.repdesk)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly, bypassing bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	sessionProvider = s.Sessions
	ingestService = s.Ingest
	catalogService = s.Catalog
	indexService = s.Index
	settingsService = s.Settings
	seedService = s.Seed
	flagLister = s.Flags
	closeServices = s.Close
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer func() {
		if closeServices != nil {
			if err := closeServices(); err != nil {
				logger.Error("close: %v", err)
			}
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func prepare(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil || cmd.Name() == versionCmd.Name() {
		return nil
	}
	services, err := bootstrap(cmd.Context(), Options{DataDir: dataDir, Verbose: verbose})
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

// newSession opens a fresh retrieval session for a one-shot command.
func newSession() (driving.RetrievalSession, error) {
	if sessionProvider == nil {
		return nil, errors.New("retrieval service not configured")
	}
	_, session := sessionProvider.Open("")
	return session, nil
}
