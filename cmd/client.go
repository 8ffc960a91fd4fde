package cmd

import (
	"fmt"

	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/service"

	"github.com/spf13/cobra"
)

var (
	flagClientCity     string
	flagClientService  string
	flagClientMRR      string
	flagClientInactive bool
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage restaurant clients",
}

var clientAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientAdd,
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE:  runClientList,
}

func init() {
	clientAddCmd.Flags().StringVar(&flagClientCity, "city", "", "City")
	clientAddCmd.Flags().StringVar(&flagClientService, "service", "", "Contracted service plan")
	clientAddCmd.Flags().StringVar(&flagClientMRR, "mrr", "0", "Monthly recurring revenue (€)")
	clientAddCmd.Flags().BoolVar(&flagClientInactive, "inactive", false, "Register as inactive")

	clientCmd.AddCommand(clientAddCmd, clientListCmd)
	rootCmd.AddCommand(clientCmd)
}

func runClientAdd(cmd *cobra.Command, args []string) error {
	mrr, err := parseAmount("mrr", flagClientMRR)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.svc.CreateClient(cmd.Context(), service.NewClient{
		Name:    args[0],
		City:    flagClientCity,
		Service: flagClientService,
		MRR:     mrr,
		Active:  !flagClientInactive,
	})
	if err != nil {
		return err
	}

	fmt.Printf("  Client %d %q created\n", c.ID, c.Name)
	return nil
}

func runClientList(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	clients, err := a.svc.Clients(cmd.Context())
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		fmt.Println("\n  No clients.")
		return nil
	}

	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.ID), c.Name, c.City, c.Service, cli.FormatMoney(c.MRR), cli.YesNo(c.Active),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Cliente", "Ciudad", "Servicio", "MRR", "Activo"},
		Rows:    rows,
	}))
	return nil
}
