package cmd

import (
	"fmt"
	"sort"

	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/source"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var flagImportDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import the legacy CRM and operations workbooks",
	Long: fmt.Sprintf("Reads %s and %s from <dir>, replaces the stored dataset\n"+
		"and recomputes every dish.", source.CRMWorkbook, source.OperationsWorkbook),
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "Read and report without writing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ds, rep, err := source.ReadDir(args[0])
	if err != nil {
		return fmt.Errorf("reading workbooks: %w", err)
	}
	printImportReport(rep)

	if flagImportDryRun {
		fmt.Println(cli.RenderMuted("  Dry run: nothing written."))
		return nil
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	log.Info().Int("dishes", len(ds.Dishes)).Int("lines", len(ds.Lines)).Msg("importing dataset")
	return recomputeOutcome(a.svc.Import(cmd.Context(), ds))
}

func printImportReport(rep source.Report) {
	fmt.Println()
	for _, f := range rep.Files {
		fmt.Printf("  Read %s\n", f)
	}
	for _, s := range rep.MissingSheets {
		fmt.Println(cli.RenderWarning("  Missing sheet " + s))
	}

	sheets := make([]string, 0, len(rep.Rows))
	for s := range rep.Rows {
		sheets = append(sheets, s)
	}
	sort.Strings(sheets)
	rows := make([][]string, 0, len(sheets))
	for _, s := range sheets {
		rows = append(rows, []string{s, cli.FormatNumber(int64(rep.Rows[s]))})
	}
	if len(rows) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Hoja", "Filas"},
			Rows:    rows,
		}))
	}

	if rep.Placeholders > 0 {
		fmt.Printf("  %d placeholder clients created from names in other sheets\n", rep.Placeholders)
	}
	if len(rep.Errors) > 0 {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("  %d rows skipped:", len(rep.Errors))))
		for _, e := range rep.Errors {
			fmt.Println("    " + e.Error())
		}
	}
}
