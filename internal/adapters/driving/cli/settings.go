package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage retrieval settings",
	Long: `View and change how questions are matched and shown.

Thresholds are minimum similarity scores between 0 and 1. A question
must score strictly above the threshold to be shown.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting.

Keys:
  search-threshold   minimum similarity for ask, shell, and MCP (default 0.2)
  similar-threshold  minimum similarity for near-duplicate warnings on add (default 0.3)
  page-size          results shown at a time (default 3)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Walk through each setting, keeping the current value on empty input.`,
	RunE:  runSettingsWizard,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Println("[Retrieval]")
	cmd.Printf("  Search threshold:  %.2f\n", settings.SearchThreshold)
	cmd.Printf("  Similar threshold: %.2f\n", settings.SimilarThreshold)
	cmd.Printf("  Page size:         %d\n", settings.PageSize)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := applySetting(&settings, args[0], args[1]); err != nil {
		return err
	}
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("Set %s to %s\n", args[0], args[1])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Repdesk Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())
	steps := []struct {
		key     string
		prompt  string
		current string
	}{
		{"search-threshold", "Search threshold", strconv.FormatFloat(settings.SearchThreshold, 'f', -1, 64)},
		{"similar-threshold", "Similar-question threshold", strconv.FormatFloat(settings.SimilarThreshold, 'f', -1, 64)},
		{"page-size", "Results per page", strconv.Itoa(settings.PageSize)},
	}
	for _, step := range steps {
		cmd.Printf("%s [%s]: ", step.prompt, step.current)
		input := readLine(reader)
		if input == "" {
			continue
		}
		if err := applySetting(&settings, step.key, input); err != nil {
			return err
		}
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println()
	cmd.Println("Settings saved.")
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Save(settingsService.GetDefaults()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Settings restored to defaults.")
	return nil
}

func applySetting(settings *domain.RetrievalSettings, key, value string) error {
	switch key {
	case "search-threshold", "similar-threshold":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		if key == "search-threshold" {
			settings.SearchThreshold = f
		} else {
			settings.SimilarThreshold = f
		}
	case "page-size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("page-size must be a whole number: %w", err)
		}
		settings.PageSize = n
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return settings.Validate()
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readLineOK is readLine that also reports end of input.
func readLineOK(reader *bufio.Reader) (string, bool) {
	input, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		return "", false
	}
	return strings.TrimSpace(input), true
}
