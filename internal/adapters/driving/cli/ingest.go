package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repdesk/internal/adapters/driving/watcher"
)

var ingestExisting bool

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import Q&A pairs from call transcripts",
}

var ingestTranscriptCmd = &cobra.Command{
	Use:   "transcript [file...]",
	Short: "Import Q&A pairs from transcript files",
	Long: `Reads "Speaker: text" call transcripts and stores each answered
customer question. A "Product: <item number>" line sets the product for
the questions after it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngestTranscript,
}

var ingestWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import transcripts as they are saved to a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngestWatch,
}

func init() {
	ingestWatchCmd.Flags().BoolVar(&ingestExisting, "existing", false, "also import transcripts already in the directory")
	ingestCmd.AddCommand(ingestTranscriptCmd)
	ingestCmd.AddCommand(ingestWatchCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngestTranscript(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	for _, path := range args {
		report, err := ingestService.IngestTranscript(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", path, err)
		}
		cmd.Printf("%s: ", path)
		outputReport(cmd, report)
	}
	return nil
}

func runIngestWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var opts []watcher.Option
	if ingestExisting {
		opts = append(opts, watcher.WithExisting())
	}
	w := watcher.New(args[0], ingestService, opts...)
	defer w.Close()

	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s for transcripts (Ctrl+C to stop)\n", args[0])
	for ev := range events {
		if ev.Err != nil {
			cmd.PrintErrf("%s: %v\n", ev.Path, ev.Err)
			continue
		}
		cmd.Printf("%s: ", ev.Path)
		outputReport(cmd, ev.Report)
	}
	return nil
}
