package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

var (
	addProduct  string
	addQuestion string
	addAnswer   string
	addExtra    []string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a question and answer",
	Long: `Stores a new question with its answer for a product.

Similar questions already on file are listed first so you can spot
near-duplicates. Exact duplicates for the same product are rejected.`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addProduct, "product", "p", "", "product item number")
	addCmd.Flags().StringVarP(&addQuestion, "question", "q", "", "the customer's question")
	addCmd.Flags().StringVarP(&addAnswer, "answer", "a", "", "the answer you gave")
	addCmd.Flags().StringArrayVarP(&addExtra, "extra", "e", nil, "additional answer (repeatable)")
	_ = addCmd.MarkFlagRequired("product")
	_ = addCmd.MarkFlagRequired("question")
	_ = addCmd.MarkFlagRequired("answer")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	ctx := cmd.Context()

	similar, err := ingestService.SimilarQuestions(ctx, addQuestion)
	if err != nil {
		return fmt.Errorf("check similar questions: %w", err)
	}
	if len(similar) > 0 {
		cmd.Println("Similar questions already on file:")
		for i := range similar {
			cmd.Printf("  - %s (product %d, %.2f)\n",
				similar[i].Question.Text, similar[i].Question.ProductRef, similar[i].Similarity)
		}
		cmd.Println()
	}

	id, err := ingestService.AddRecord(ctx, domain.IngestRecord{
		ProductRef:        addProduct,
		QuestionText:      addQuestion,
		AnswerText:        addAnswer,
		AdditionalAnswers: addExtra,
		Origin:            "cli",
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("product '%s' not found", addProduct)
	case errors.Is(err, domain.ErrAlreadyExists):
		return errors.New("this question already exists for the product")
	case errors.Is(err, domain.ErrMalformedRecord):
		return err
	case err != nil:
		return fmt.Errorf("add failed: %w", err)
	}

	cmd.Printf("New question and answer have been inserted successfully (question %s).\n", strconv.FormatInt(id, 10))
	return nil
}
