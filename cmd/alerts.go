package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagAlertKind string

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show price, margin and food cost alerts",
	RunE:  runAlerts,
}

func init() {
	alertsCmd.Flags().StringVar(&flagAlertKind, "kind", "", "Only one kind: price, margin or foodcost")
	rootCmd.AddCommand(alertsCmd)
}

func runAlerts(cmd *cobra.Command, _ []string) error {
	switch flagAlertKind {
	case "", "price", "margin", "foodcost":
	default:
		return fmt.Errorf("unknown alert kind %q (want price, margin or foodcost)", flagAlertKind)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	al, err := a.svc.Alerts(cmd.Context(), flagClient)
	if err != nil {
		return err
	}
	limit := 0
	if cmd.Flags().Changed("limit") {
		limit = flagLimit
	}
	printAlerts(a.svc, al, flagAlertKind, limit)
	return nil
}
