package cmd

import (
	"fmt"

	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/service"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagPriceSupplier string
	flagPriceNotes    string
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Manage client price books",
}

var priceAssignCmd = &cobra.Command{
	Use:   "assign <client-id> <ingredient-id> <price>",
	Short: "Assign what a client pays for an ingredient",
	Args:  cobra.ExactArgs(3),
	RunE:  runPriceAssign,
}

var priceUpdateCmd = &cobra.Command{
	Use:   "update <client-id> <ingredient-id> <price>",
	Short: "Change a client price and recompute the affected dishes",
	Args:  cobra.ExactArgs(3),
	RunE:  runPriceUpdate,
}

var priceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the price book (all clients, or --client)",
	RunE:  runPriceList,
}

func init() {
	priceAssignCmd.Flags().StringVar(&flagPriceSupplier, "supplier", "", "Supplier name")
	priceAssignCmd.Flags().StringVar(&flagPriceNotes, "notes", "", "Notes")

	priceCmd.AddCommand(priceAssignCmd, priceUpdateCmd, priceListCmd)
	rootCmd.AddCommand(priceCmd)
}

func priceArgs(args []string) (int64, int64, decimal.Decimal, error) {
	clientID, err := parseID("client id", args[0])
	if err != nil {
		return 0, 0, decimal.Zero, err
	}
	ingID, err := parseID("ingredient id", args[1])
	if err != nil {
		return 0, 0, decimal.Zero, err
	}
	price, err := parseAmount("price", args[2])
	if err != nil {
		return 0, 0, decimal.Zero, err
	}
	return clientID, ingID, price, nil
}

func runPriceAssign(cmd *cobra.Command, args []string) error {
	clientID, ingID, price, err := priceArgs(args)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	cp, err := a.svc.AssignPrice(cmd.Context(), service.AssignPriceInput{
		ClientID:     clientID,
		IngredientID: ingID,
		Price:        price,
		Supplier:     flagPriceSupplier,
		Notes:        flagPriceNotes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("  %s for client %d: %s (market %s, %s)\n",
		cp.IngredientName, cp.ClientID,
		cli.FormatUnitPrice(cp.Price, cp.Unit),
		cli.FormatUnitPrice(cp.ReferencePrice, cp.Unit),
		cli.FormatSignedPct(cp.DeviationPct))
	return nil
}

func runPriceUpdate(cmd *cobra.Command, args []string) error {
	clientID, ingID, price, err := priceArgs(args)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	cp, sum, err := a.svc.UpdateClientPrice(cmd.Context(), clientID, ingID, price)
	if err == nil || len(sum.Dishes) > 0 {
		fmt.Printf("  %s for client %d: %s (%s vs market)\n",
			cp.IngredientName, cp.ClientID,
			cli.FormatUnitPrice(cp.Price, cp.Unit),
			cli.FormatSignedPct(cp.DeviationPct))
	}
	return recomputeOutcome(sum, err)
}

func runPriceList(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	prices, err := a.svc.PriceBook(cmd.Context(), flagClient)
	if err != nil {
		return err
	}
	if len(prices) == 0 {
		fmt.Println("\n  No prices assigned.")
		return nil
	}

	warn := a.svc.Thresholds().PriceBookWarnPct
	rows := make([][]string, 0, len(prices))
	for _, p := range prices {
		dev := cli.FormatSignedPct(p.DeviationPct)
		if p.DeviationPct.GreaterThan(warn) {
			dev = cli.RenderWarning(dev)
		}
		rows = append(rows, []string{
			p.ClientName, p.IngredientName,
			cli.FormatUnitPrice(p.Price, p.Unit),
			cli.FormatUnitPrice(p.ReferencePrice, p.Unit),
			dev, p.Supplier,
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Cliente", "Ingrediente", "Precio", "Mercado", "Desviación", "Proveedor"},
		Rows:    rows,
	}))
	return nil
}
