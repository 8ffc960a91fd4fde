package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/service"

	"github.com/spf13/cobra"
)

var flagPurchaseDate string

var purchaseCmd = &cobra.Command{
	Use:   "purchase",
	Short: "Record purchases checked against market prices",
}

var purchaseAddCmd = &cobra.Command{
	Use:   "add <ingredient-id> <quantity> <unit-price>",
	Short: "Record a paid purchase line (use --client to attribute it)",
	Args:  cobra.ExactArgs(3),
	RunE:  runPurchaseAdd,
}

var purchaseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List purchase lines",
	RunE:  runPurchaseList,
}

func init() {
	purchaseAddCmd.Flags().StringVar(&flagPurchaseDate, "date", "", "Purchase date YYYY-MM-DD (default: today)")

	purchaseCmd.AddCommand(purchaseAddCmd, purchaseListCmd)
	rootCmd.AddCommand(purchaseCmd)
}

func runPurchaseAdd(cmd *cobra.Command, args []string) error {
	ingID, err := parseID("ingredient id", args[0])
	if err != nil {
		return err
	}
	qty, err := parseAmount("quantity", args[1])
	if err != nil {
		return err
	}
	price, err := parseAmount("unit price", args[2])
	if err != nil {
		return err
	}
	at := time.Now()
	if flagPurchaseDate != "" {
		if at, err = time.ParseInLocation("2006-01-02", flagPurchaseDate, time.Local); err != nil {
			return fmt.Errorf("invalid date %q", flagPurchaseDate)
		}
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.svc.RecordPurchase(cmd.Context(), service.NewPurchase{
		ClientID:     flagClient,
		IngredientID: ingID,
		Quantity:     qty,
		UnitPrice:    price,
		PurchasedAt:  at,
	})
	if err != nil {
		return err
	}

	name := p.IngredientName
	if name == "" {
		name = fmt.Sprintf("ingredient %d (not in reference list)", p.IngredientID)
	}
	fmt.Printf("  Purchase %d: %s x %s at %s\n", p.ID, name, p.Quantity.String(), cli.FormatMoney(p.UnitPrice))
	return nil
}

func runPurchaseList(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	purchases, err := a.svc.Purchases(cmd.Context(), flagClient)
	if err != nil {
		return err
	}
	if len(purchases) == 0 {
		fmt.Println("\n  No purchases.")
		return nil
	}

	rows := make([][]string, 0, len(purchases))
	for _, p := range purchases {
		client := "-"
		if p.ClientID != 0 {
			client = fmt.Sprintf("%d", p.ClientID)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID), p.PurchasedAt.Local().Format("2006-01-02"), client,
			p.IngredientName, p.Quantity.String(), cli.FormatMoney(p.UnitPrice),
			cli.FormatMoney(p.Quantity.Mul(p.UnitPrice)),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Fecha", "Cliente", "Ingrediente", "Cantidad", "Precio", "Total"},
		Rows:    rows,
	}))
	return nil
}
