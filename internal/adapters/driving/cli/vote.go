package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

var flagReason string

var upvoteCmd = &cobra.Command{
	Use:   "upvote [answer-id]",
	Short: "Vote for an additional answer that helped",
	Long: `Adds one vote to an additional answer. Answers with more votes are
listed first under their question. Primary answers cannot be voted on.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpvote,
}

var flagCmd = &cobra.Command{
	Use:   "flag [answer-id]",
	Short: "Report an additional answer for review",
	Long: `Sends an additional answer to a reviewer. Flags do not change the
answer or how results are ranked.`,
	Args: cobra.ExactArgs(1),
	RunE: runFlag,
}

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List answers flagged for review",
	Args:  cobra.NoArgs,
	RunE:  runFlags,
}

func init() {
	flagCmd.Flags().StringVarP(&flagReason, "reason", "r", "", "why the answer looks wrong")
	rootCmd.AddCommand(upvoteCmd)
	rootCmd.AddCommand(flagCmd)
	rootCmd.AddCommand(flagsCmd)
}

func runUpvote(cmd *cobra.Command, args []string) error {
	id, err := parseAnswerID(args[0])
	if err != nil {
		return err
	}
	session, err := newSession()
	if err != nil {
		return err
	}

	votes, err := session.Upvote(cmd.Context(), id)
	if err != nil {
		return declineError("upvote", "upvoted", id, err)
	}
	cmd.Printf("Answer %d now has %d votes.\n", id, votes)
	return nil
}

func runFlag(cmd *cobra.Command, args []string) error {
	id, err := parseAnswerID(args[0])
	if err != nil {
		return err
	}
	session, err := newSession()
	if err != nil {
		return err
	}

	report, err := session.Flag(cmd.Context(), id, flagReason)
	if err != nil {
		return declineError("flag", "flagged", id, err)
	}
	cmd.Printf("Answer %d flagged for review (%s).\n", id, report.ID)
	return nil
}

func runFlags(cmd *cobra.Command, _ []string) error {
	if flagLister == nil {
		return errors.New("review queue not configured")
	}

	flags, err := flagLister.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list flags: %w", err)
	}
	if len(flags) == 0 {
		cmd.Println("No answers flagged.")
		return nil
	}
	for _, f := range flags {
		reason := strings.TrimSpace(f.Reason)
		if reason == "" {
			reason = "(no reason given)"
		}
		cmd.Printf("  %s  answer %d (question %d): %s\n",
			f.CreatedAt.Format("2006-01-02 15:04"), f.AnswerID, f.QuestionID, reason)
	}
	return nil
}

func declineError(action, past string, id int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("answer %d not found", id)
	case errors.Is(err, domain.ErrPrimaryAnswer):
		return fmt.Errorf("answer %d is a primary answer; only additional answers can be %s", id, past)
	default:
		return fmt.Errorf("%s failed: %w", action, err)
	}
}
