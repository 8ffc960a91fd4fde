package cmd

import (
	"fmt"

	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/service"

	"github.com/spf13/cobra"
)

var (
	flagIngCategory    string
	flagIngUnit        string
	flagIngSeasonality string
)

var ingredientCmd = &cobra.Command{
	Use:     "ingredient",
	Aliases: []string{"ing"},
	Short:   "Manage the ingredient reference list and market prices",
}

var ingredientAddCmd = &cobra.Command{
	Use:   "add <name> <market-price>",
	Short: "Add an ingredient with its reference market price",
	Args:  cobra.ExactArgs(2),
	RunE:  runIngredientAdd,
}

var ingredientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingredients",
	RunE:  runIngredientList,
}

var ingredientPriceCmd = &cobra.Command{
	Use:   "price <ingredient-id> <market-price>",
	Short: "Update an ingredient's reference market price",
	Long: "Update the reference market price. Client price books keep the reference " +
		"they were assigned with until their own price is updated.",
	Args: cobra.ExactArgs(2),
	RunE: runIngredientPrice,
}

func init() {
	ingredientAddCmd.Flags().StringVar(&flagIngCategory, "category", "", "Category")
	ingredientAddCmd.Flags().StringVar(&flagIngUnit, "unit", "Kg", "Purchase unit")
	ingredientAddCmd.Flags().StringVar(&flagIngSeasonality, "seasonality", "", "Seasonality note")

	ingredientCmd.AddCommand(ingredientAddCmd, ingredientListCmd, ingredientPriceCmd)
	rootCmd.AddCommand(ingredientCmd)
}

func runIngredientAdd(cmd *cobra.Command, args []string) error {
	price, err := parseAmount("market price", args[1])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ing, err := a.svc.CreateIngredient(cmd.Context(), service.NewIngredient{
		Name:        args[0],
		Category:    flagIngCategory,
		Unit:        flagIngUnit,
		MarketPrice: price,
		Seasonality: flagIngSeasonality,
	})
	if err != nil {
		return err
	}

	fmt.Printf("  Ingredient %d %q at %s\n", ing.ID, ing.Name, cli.FormatUnitPrice(ing.MarketPrice, ing.Unit))
	return nil
}

func runIngredientList(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ings, err := a.svc.Ingredients(cmd.Context())
	if err != nil {
		return err
	}
	if len(ings) == 0 {
		fmt.Println("\n  No ingredients.")
		return nil
	}

	rows := make([][]string, 0, len(ings))
	for _, ing := range ings {
		rows = append(rows, []string{
			fmt.Sprintf("%d", ing.ID), ing.Name, ing.Category,
			cli.FormatUnitPrice(ing.MarketPrice, ing.Unit), ing.Seasonality,
			ing.UpdatedAt.Local().Format("2006-01-02"),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Ingrediente", "Categoría", "Mercado", "Temporada", "Actualizado"},
		Rows:    rows,
	}))
	return nil
}

func runIngredientPrice(cmd *cobra.Command, args []string) error {
	id, err := parseID("ingredient id", args[0])
	if err != nil {
		return err
	}
	price, err := parseAmount("market price", args[1])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ing, err := a.svc.UpdateMarketPrice(cmd.Context(), id, price)
	if err != nil {
		return err
	}
	fmt.Printf("  %s: market price now %s\n", ing.Name, cli.FormatUnitPrice(ing.MarketPrice, ing.Unit))
	return nil
}
