package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/model"
	"github.com/theirongolddev/horeca/internal/service"
	"github.com/theirongolddev/horeca/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagDishName     string
	flagDishCategory string
	flagDishPrice    string
	flagDishCost     string
	flagDishVolume   int
	flagDishInactive bool
	flagDishNotes    string
)

var dishCmd = &cobra.Command{
	Use:   "dish",
	Short: "Manage client menus",
}

var dishAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a dish (opens a form when --name is not given)",
	RunE:  runDishAdd,
}

var dishListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dishes with cost, margin and classification",
	RunE:  runDishList,
}

var dishShowCmd = &cobra.Command{
	Use:   "show <dish-id>",
	Short: "Show a dish and its recipe lines",
	Args:  cobra.ExactArgs(1),
	RunE:  runDishShow,
}

func init() {
	dishAddCmd.Flags().StringVar(&flagDishName, "name", "", "Dish name")
	dishAddCmd.Flags().StringVar(&flagDishCategory, "category", "", "Menu category")
	dishAddCmd.Flags().StringVar(&flagDishPrice, "price", "", "Sale price (€)")
	dishAddCmd.Flags().StringVar(&flagDishCost, "cost", "0", "Manual cost (€) until recipe lines are added")
	dishAddCmd.Flags().IntVar(&flagDishVolume, "volume", 0, "Monthly units sold")
	dishAddCmd.Flags().BoolVar(&flagDishInactive, "inactive", false, "Add as inactive")
	dishAddCmd.Flags().StringVar(&flagDishNotes, "notes", "", "Notes")

	dishCmd.AddCommand(dishAddCmd, dishListCmd, dishShowCmd)
	rootCmd.AddCommand(dishCmd)
}

func runDishAdd(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var in service.NewDish
	if flagDishName == "" {
		in, err = dishFromForm(cmd, a)
		if err != nil {
			return err
		}
	} else {
		in, err = dishFromFlags()
		if err != nil {
			return err
		}
	}

	d, err := a.svc.CreateDish(cmd.Context(), in)
	if err != nil {
		return err
	}
	fmt.Printf("  Dish %d %q: margin %s, food cost %s, %s\n",
		d.ID, d.Name, cli.RenderMargin(d.MarginPct, a.svc.Thresholds().MarginFloorPct),
		cli.FormatPct(d.FoodCostPct), d.Classification)
	return nil
}

func dishFromFlags() (service.NewDish, error) {
	if flagClient == 0 {
		return service.NewDish{}, errors.New("--client is required with --name")
	}
	price, err := parseAmount("price", flagDishPrice)
	if err != nil {
		return service.NewDish{}, err
	}
	cost, err := parseAmount("cost", flagDishCost)
	if err != nil {
		return service.NewDish{}, err
	}
	return service.NewDish{
		ClientID:      flagClient,
		Name:          flagDishName,
		Category:      flagDishCategory,
		SalePrice:     price,
		ManualCost:    cost,
		MonthlyVolume: flagDishVolume,
		Active:        !flagDishInactive,
		Notes:         flagDishNotes,
	}, nil
}

func dishFromForm(cmd *cobra.Command, a *app) (service.NewDish, error) {
	clients, err := a.svc.Clients(cmd.Context())
	if err != nil {
		return service.NewDish{}, err
	}
	if len(clients) == 0 {
		return service.NewDish{}, errors.New("no clients yet, add one with `horeca client add`")
	}

	vals := tui.NewDishValues(flagClient, clients)
	if err := tui.NewDishForm(clients, &vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return service.NewDish{}, errors.New("cancelled")
		}
		return service.NewDish{}, err
	}
	return vals.Input()
}

func runDishList(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	dishes, err := a.svc.Dishes(cmd.Context(), flagClient)
	if err != nil {
		return err
	}
	if len(dishes) == 0 {
		fmt.Println("\n  No dishes.")
		return nil
	}

	floor := a.svc.Thresholds().MarginFloorPct
	rows := make([][]string, 0, len(dishes))
	for _, d := range dishes {
		rows = append(rows, []string{
			fmt.Sprintf("%d", d.ID), d.Name, d.ClientName,
			cli.FormatMoney(d.SalePrice), cli.FormatMoney(d.TotalCost),
			cli.RenderMargin(d.MarginPct, floor), cli.FormatPct(d.FoodCostPct),
			cli.FormatNumber(int64(d.MonthlyVolume)), string(d.Classification),
			cli.YesNo(d.Active),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Plato", "Cliente", "PVP", "Coste", "Margen", "Food cost", "Uds/mes", "Clase", "Activo"},
		Rows:    rows,
	}))
	return nil
}

func runDishShow(cmd *cobra.Command, args []string) error {
	id, err := parseID("dish id", args[0])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	d, lines, err := a.svc.Recipe(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  ·  %s", d.Name, d.ClientName)))
	fmt.Println()
	printDishFigures(d, a.svc.Thresholds().MarginFloorPct)
	fmt.Println()
	printRecipeLines(lines)
	return nil
}

func printDishFigures(d model.Dish, floor decimal.Decimal) {
	rows := [][]string{
		{"Categoría", d.Category},
		{"PVP", cli.FormatMoney(d.SalePrice)},
		{"Coste", cli.FormatMoney(d.TotalCost)},
		{"Margen", cli.FormatMoney(d.MarginAmount) + "  " + cli.RenderMargin(d.MarginPct, floor)},
		{"Food cost", cli.FormatPct(d.FoodCostPct)},
		{"Uds/mes", cli.FormatNumber(int64(d.MonthlyVolume))},
		{"Clasificación", fmt.Sprintf("%s (%s)", d.Classification, d.Classification.English())},
		{"Precio recomendado", cli.FormatMoney(d.RecommendedPrice)},
		{"Activo", cli.YesNo(d.Active)},
	}
	if d.Notes != "" {
		rows = append(rows, []string{"Notas", d.Notes})
	}
	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))
}

func printRecipeLines(lines []model.RecipeLine) {
	if len(lines) == 0 {
		fmt.Println(cli.RenderMuted("  Sin escandallo: el coste es manual."))
		return
	}
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{
			l.IngredientName,
			cli.FormatQty(l.Quantity, l.Unit),
			cli.FormatUnitPrice(l.UnitCost, l.Unit),
			cli.FormatMoney(l.LineCost),
			cli.FormatPct(l.PctOfDish),
			cli.RenderShareBar(l.PctOfDish, 20),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Escandallo",
		Headers: []string{"Ingrediente", "Cantidad", "Coste unit.", "Coste línea", "% plato", ""},
		Rows:    rows,
	}))
}
