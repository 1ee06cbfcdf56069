package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repdesk/internal/core/domain"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Look up products, alternatives, and related items",
}

var productLookupCmd = &cobra.Command{
	Use:   "lookup [name or sku]",
	Short: "Find products by SKU or keyword",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProductLookup,
}

var productShowCmd = &cobra.Command{
	Use:   "show [sku]",
	Short: "Show product details",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductShow,
}

var productAlternativesCmd = &cobra.Command{
	Use:   "alternatives [sku]",
	Short: "List substitute products",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductAlternatives,
}

var productRelatedCmd = &cobra.Command{
	Use:   "related [sku]",
	Short: "List products frequently bought together",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductRelated,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List product categories",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	productCmd.AddCommand(productLookupCmd)
	productCmd.AddCommand(productShowCmd)
	productCmd.AddCommand(productAlternativesCmd)
	productCmd.AddCommand(productRelatedCmd)
	rootCmd.AddCommand(productCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func requireCatalog() error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	return nil
}

func runProductLookup(cmd *cobra.Command, args []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}
	query := strings.Join(args, " ")

	products, err := catalogService.Lookup(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	if len(products) == 0 {
		cmd.Printf("No products found matching '%s'.\n", query)
		return nil
	}

	cmd.Println("Search Results:")
	outputProductList(cmd, products)
	return nil
}

func runProductShow(cmd *cobra.Command, args []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}

	p, err := catalogService.Get(cmd.Context(), args[0])
	if err != nil {
		return productError(args[0], err)
	}
	outputProduct(cmd, p)
	return nil
}

func runProductAlternatives(cmd *cobra.Command, args []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}
	ctx := cmd.Context()

	p, err := catalogService.Get(ctx, args[0])
	if err != nil {
		return productError(args[0], err)
	}
	alts, err := catalogService.Alternatives(ctx, args[0])
	if err != nil {
		return productError(args[0], err)
	}

	cmd.Printf("Alternatives to %s:\n", p.Name)
	if len(alts) == 0 {
		cmd.Println("  No alternatives found for this product.")
		return nil
	}
	for i := range alts {
		marker := ""
		if alts[i].Rating > p.Rating {
			marker = "  * higher customer rating"
		}
		cmd.Printf("  %d. %s (%s) - %s%s\n", i+1, alts[i].Name, alts[i].SKU, alts[i].Price, marker)
	}

	suggestion, err := catalogService.AlternativeSuggestion(ctx, args[0])
	if err != nil {
		return productError(args[0], err)
	}
	outputSuggestion(cmd, suggestion)
	return nil
}

func runProductRelated(cmd *cobra.Command, args []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}
	ctx := cmd.Context()

	p, err := catalogService.Get(ctx, args[0])
	if err != nil {
		return productError(args[0], err)
	}
	related, err := catalogService.FrequentlyBoughtTogether(ctx, args[0])
	if err != nil {
		return productError(args[0], err)
	}

	cmd.Printf("Frequently bought together with %s:\n", p.Name)
	if len(related) == 0 {
		cmd.Println("  No frequently bought together items found for this product.")
		return nil
	}
	outputProductList(cmd, related)

	suggestion, err := catalogService.BoughtTogetherSuggestion(ctx, args[0])
	if err != nil {
		return productError(args[0], err)
	}
	outputSuggestion(cmd, suggestion)
	return nil
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if err := requireCatalog(); err != nil {
		return err
	}

	categories, err := catalogService.Categories(cmd.Context())
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		cmd.Println("No categories defined.")
		return nil
	}
	for _, c := range categories {
		cmd.Printf("  %-18s items %d-%d\n", c.Name, c.FirstProduct, c.LastProduct)
	}
	return nil
}

func outputSuggestion(cmd *cobra.Command, suggestion string) {
	if suggestion == "" {
		return
	}
	cmd.Println()
	cmd.Println("Suggested text for customer email:")
	cmd.Printf("  \"%s\"\n", suggestion)
}

func productError(sku string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("product SKU %s not found", sku)
	}
	return err
}
