package cmd

import (
	"fmt"

	"github.com/theirongolddev/horeca/internal/report"

	"github.com/spf13/cobra"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export <dish-id>",
	Short: "Write a PDF recipe cost sheet for a dish",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output directory (default: reports.output_dir or .)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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

	dir := flagExportOut
	if dir == "" {
		dir = a.cfg.Reports.OutputDir
	}
	if dir == "" {
		dir = "."
	}

	path, err := report.WriteDishSheet(dir, a.cfg.General.Company, d, lines)
	if err != nil {
		return fmt.Errorf("writing cost sheet: %w", err)
	}
	fmt.Printf("  Wrote %s\n", path)
	return nil
}
