package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/repdesk/internal/adapters/driving/tui"
	"github.com/custodia-labs/repdesk/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for repdesk.

The TUI walks through a query round: pick a category, type the customer's
question, then page through ranked answers, upvote the helpful ones and
flag the wrong ones. It also offers product lookup, adding Q&A pairs and
retrieval settings.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Submit
  m        - More results
  u / f    - Upvote / Flag an additional answer
  Esc      - Back
  ctrl+c   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the configured services.
func tuiPorts() (*tui.Ports, error) {
	session, err := newSession()
	if err != nil {
		return nil, err
	}
	ports := tui.NewPorts(session, catalogService)
	ports.Ingest = ingestService
	ports.Index = indexService
	ports.Settings = settingsService
	return ports, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports, err := tuiPorts()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	// Log lines would corrupt the alt screen.
	logger.SetVerbose(false)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
