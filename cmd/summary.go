package cmd

import (
	"fmt"

	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/model"
	"github.com/theirongolddev/horeca/internal/service"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Portfolio dashboard: clients, menu, price book and top alerts",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	dash, err := a.svc.Dashboard(cmd.Context(), flagClient)
	if err != nil {
		return err
	}

	if dash.Company.Clients == 0 {
		fmt.Println("\n  No clients yet.")
		fmt.Println("  Add one with `horeca client add` or import the legacy workbooks with `horeca import <dir>`.")
		return nil
	}

	floor := a.svc.Thresholds().MarginFloorPct
	title := a.cfg.General.Company
	if flagClient != 0 {
		title += fmt.Sprintf("  ·  cliente %d", flagClient)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	rows := [][]string{
		{"Clientes activos", fmt.Sprintf("%d / %d", dash.Company.ActiveClients, dash.Company.Clients)},
		{"MRR total", cli.FormatMoney(dash.Company.MRR)},
		{"---"},
		{"Platos", cli.FormatNumber(int64(dash.Menu.Dishes))},
		{"Platos activos", cli.FormatNumber(int64(dash.Menu.Active))},
		{"Margen medio", cli.RenderMargin(dash.Menu.AvgMarginPct, floor)},
		{"Estrellas", cli.FormatNumber(int64(dash.Menu.Stars))},
		{"Bajo margen mínimo", cli.FormatNumber(int64(dash.Menu.LowMargin))},
		{"---"},
		{"Ingredientes con precio", cli.FormatNumber(int64(dash.PriceBook.Ingredients))},
		{"Precio medio", cli.FormatMoney(dash.PriceBook.AvgPrice)},
		{"Desviación media", cli.FormatSignedPct(dash.PriceBook.AvgDeviationPct)},
		{"Sobre mercado", cli.FormatNumber(int64(dash.PriceBook.AboveMarket))},
	}
	fmt.Print(cli.RenderTable(cli.Table{Headers: []string{"Métrica", "Valor"}, Rows: rows}))

	if len(dash.Menu.ByClass) > 0 {
		classRows := make([][]string, 0, len(model.Classifications))
		for _, c := range model.Classifications {
			classRows = append(classRows, []string{string(c), c.English(), cli.FormatNumber(int64(dash.Menu.ByClass[c]))})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Ingeniería de menú",
			Headers: []string{"Clase", "", "Platos"},
			Rows:    classRows,
		}))
	}

	printAlerts(a.svc, dash.Alerts, "", flagLimit)
	return nil
}

// printAlerts renders each alert kind, capped at limit rows when limit > 0.
// kind selects one kind ("price", "margin", "foodcost") or all when empty.
func printAlerts(svc *service.Service, al service.Alerts, kind string, limit int) {
	th := svc.Thresholds()

	if al.Count() == 0 {
		fmt.Println()
		fmt.Println("  No alerts.")
		return
	}

	capRows := func(rows [][]string) [][]string {
		if limit > 0 && len(rows) > limit {
			more := len(rows) - limit
			rows = append(rows[:limit:limit], []string{cli.RenderMuted(fmt.Sprintf("… %d más", more))})
		}
		return rows
	}

	if (kind == "" || kind == "price") && len(al.Price) > 0 {
		rows := make([][]string, 0, len(al.Price))
		for _, p := range al.Price {
			rows = append(rows, []string{
				p.Ingredient,
				cli.FormatMoney(p.Paid),
				cli.FormatMoney(p.Reference),
				cli.FormatSignedPct(p.DeviationPct),
				cli.FormatMoney(p.PotentialSavings),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title: fmt.Sprintf("Compras por encima de mercado (> %s)  ahorro potencial %s",
				cli.FormatSignedPct(th.PriceDeviationPct), cli.FormatMoney(al.Savings)),
			Headers: []string{"Ingrediente", "Pagado", "Mercado", "Desviación", "Ahorro"},
			Rows:    capRows(rows),
		}))
	}

	if (kind == "" || kind == "margin") && len(al.Margin) > 0 {
		rows := make([][]string, 0, len(al.Margin))
		for _, m := range al.Margin {
			rows = append(rows, []string{
				m.Dish,
				m.Client,
				cli.FormatMoney(m.SalePrice),
				cli.FormatMoney(m.Cost),
				cli.RenderMargin(m.MarginPct, th.MarginFloorPct),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Margen por debajo de " + cli.FormatPct(th.MarginFloorPct),
			Headers: []string{"Plato", "Cliente", "PVP", "Coste", "Margen"},
			Rows:    capRows(rows),
		}))
	}

	if (kind == "" || kind == "foodcost") && len(al.FoodCost) > 0 {
		rows := make([][]string, 0, len(al.FoodCost))
		for _, f := range al.FoodCost {
			rows = append(rows, []string{f.Dish, f.Client, cli.FormatPct(f.FoodCostPct), cli.FormatPct(f.Ceiling)})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Food cost por encima de " + cli.FormatPct(th.FoodCostCeilingPct),
			Headers: []string{"Plato", "Cliente", "Food cost", "Máximo"},
			Rows:    capRows(rows),
		}))
	}
}
