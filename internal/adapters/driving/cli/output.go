package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

const (
	msgNoMatches = "No matching questions found. Consider adding this as new data if it's a common query."
	msgNoData    = "No data yet. Add Q&A pairs with 'repdesk add' or load the demo catalog with 'repdesk seed'."
)

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// outputResults prints ranked results, numbering from offset+1.
func outputResults(cmd *cobra.Command, results []domain.RankedResult, offset int) {
	for i := range results {
		r := &results[i]
		cmd.Printf("  [%d] %s (%.2f)\n", offset+i+1, r.Question.Text, r.Similarity)
		cmd.Printf("      Product: %d", r.Question.ProductRef)
		if r.Question.Category != "" {
			cmd.Printf(" (%s)", r.Question.Category)
		}
		cmd.Println()
		if r.PrimaryAnswer != nil {
			cmd.Printf("      Answer: %s\n", r.PrimaryAnswer.Text)
		}
		for _, a := range r.AdditionalAnswers {
			cmd.Printf("        #%d %s (+%d)\n", a.ID, a.Text, a.Upvotes)
		}
		cmd.Println()
	}
}

func outputPage(cmd *cobra.Command, page domain.ResultPage) {
	outputResults(cmd, page.Results, page.Offset)
	if page.HasMore() {
		cmd.Printf("  ...and %d more results.\n", page.Total-page.Offset-len(page.Results))
	}
}

func outputReport(cmd *cobra.Command, report domain.IngestReport) {
	cmd.Printf("Accepted %d of %d records.\n", len(report.Accepted), report.Total())
	for _, rej := range report.Rejected {
		origin := rej.Record.Origin
		if origin == "" {
			origin = fmt.Sprintf("record %d", rej.Index+1)
		}
		cmd.Printf("  skipped %s: %v\n", origin, rej.Err)
	}
}

func outputProduct(cmd *cobra.Command, p *domain.Product) {
	cmd.Printf("%s (%s)\n", p.Name, p.SKU)
	cmd.Printf("  Item: %d", p.ID)
	if p.Category != "" {
		cmd.Printf(" | Category: %s", p.Category)
	}
	cmd.Println()
	cmd.Printf("  Price: %s | Rating: %.1f/5.0\n", p.Price, p.Rating)
	cmd.Printf("  Stock: %d units (%s)\n", p.Stock, p.StockLevel())
	if p.Description != "" {
		cmd.Printf("  %s\n", p.Description)
	}
}

func outputProductList(cmd *cobra.Command, products []domain.Product) {
	for i := range products {
		p := &products[i]
		cmd.Printf("  %d. %s (%s) - %s\n", i+1, p.Name, p.SKU, p.Price)
	}
}
