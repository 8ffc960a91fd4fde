package cmd

import (
	"fmt"

	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/service"

	"github.com/spf13/cobra"
)

var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "Manage recipe lines",
}

var lineAddCmd = &cobra.Command{
	Use:   "add <dish-id> <ingredient-id> <quantity>",
	Short: "Add an ingredient to a dish at the client's price and recompute",
	Args:  cobra.ExactArgs(3),
	RunE:  runLineAdd,
}

func init() {
	lineCmd.AddCommand(lineAddCmd)
	rootCmd.AddCommand(lineCmd)
}

func runLineAdd(cmd *cobra.Command, args []string) error {
	dishID, err := parseID("dish id", args[0])
	if err != nil {
		return err
	}
	ingID, err := parseID("ingredient id", args[1])
	if err != nil {
		return err
	}
	qty, err := parseAmount("quantity", args[2])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	l, sum, err := a.svc.AddRecipeLine(cmd.Context(), service.NewRecipeLine{
		DishID:       dishID,
		IngredientID: ingID,
		Quantity:     qty,
	})
	if l.ID != 0 {
		fmt.Printf("  %s: %s of %s at %s = %s\n",
			l.DishName, cli.FormatQty(l.Quantity, l.Unit), l.IngredientName,
			cli.FormatUnitPrice(l.UnitCost, l.Unit), cli.FormatMoney(l.LineCost))
	}
	return recomputeOutcome(sum, err)
}
