package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

var (
	askCategory  string
	askThreshold float64
	askAll       bool
	askJSON      bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Find answers to a customer question",
	Long: `Ranks stored questions by similarity to your question and shows the
best matches with their answers.

Matching is lexical: questions sharing distinctive words with yours rank
highest. Use --category to keep only products in one category.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askCategory, "category", "c", "", "only show products in this category")
	askCmd.Flags().Float64Var(&askThreshold, "threshold", 0, "minimum similarity (default from settings)")
	askCmd.Flags().BoolVarP(&askAll, "all", "a", false, "show every match instead of the top page")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	session, err := newSession()
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	opts := domain.QueryOptions{Category: askCategory}
	if cmd.Flags().Changed("threshold") {
		opts.Threshold = &askThreshold
	}
	results, err := session.Query(cmd.Context(), text, opts)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		if askAll {
			return outputJSON(cmd, results)
		}
		return outputJSON(cmd, session.Page().Results)
	}

	if len(results) == 0 {
		if indexService != nil && indexService.Stats().Empty {
			cmd.Println(msgNoData)
			return nil
		}
		cmd.Println(msgNoMatches)
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	if askAll {
		outputResults(cmd, results, 0)
		return nil
	}
	outputPage(cmd, session.Page())
	return nil
}

// parseAnswerID parses an answer id argument.
func parseAnswerID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("answer id must be a positive number")
	}
	return id, nil
}
