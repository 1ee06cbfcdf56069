package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog and Q&A pairs",
	Long: `Stores the bundled demo products, categories, and Q&A pairs.
Running it again updates products and skips questions already on file.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is indexed",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().Bool("rebuild", false, "rebuild the index before reporting")
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statusCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if seedService == nil {
		return errors.New("seed service not configured")
	}

	report, err := seedService.Seed(cmd.Context())
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	outputReport(cmd, report)
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	rebuild, err := cmd.Flags().GetBool("rebuild")
	if err != nil {
		return fmt.Errorf("getting rebuild flag: %w", err)
	}

	stats := indexService.Stats()
	if rebuild || stats.Generation == 0 {
		stats, err = indexService.Rebuild(cmd.Context())
		if err != nil {
			return fmt.Errorf("rebuild failed: %w", err)
		}
	}

	if stats.Empty {
		cmd.Println(msgNoData)
		return nil
	}
	cmd.Printf("Questions: %d\n", stats.Questions)
	cmd.Printf("Terms:     %d\n", stats.Terms)
	return nil
}
