package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/horeca/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	dbPath := flagDB
	if dbPath == "" {
		dbPath = config.DBPath(cfg)
	}
	fmt.Printf("  Database:    %s\n", dbPath)
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Company: %s\n", cfg.General.Company)
	fmt.Println()

	fmt.Println("  [Thresholds]")
	fmt.Printf("    Margin floor:      %g%%%s\n", cfg.Thresholds.MarginFloorPct, envNote(config.EnvMarginFloor))
	fmt.Printf("    Food cost ceiling: %g%%%s\n", cfg.Thresholds.FoodCostCeilingPct, envNote(config.EnvFoodCostCeiling))
	fmt.Printf("    Price deviation:   %g%%%s\n", cfg.Thresholds.PriceDeviationPct, envNote(config.EnvPriceDeviation))
	fmt.Printf("    Price book warn:   %g%%\n", cfg.Thresholds.PriceBookWarnPct)
	fmt.Println()

	fmt.Println("  [Policy]")
	fmt.Printf("    Star margin: %g%%\n", cfg.Policy.StarMarginPct)
	fmt.Printf("    Star volume: %d uds/mes\n", cfg.Policy.StarVolume)
	fmt.Printf("    Markup:      x%g\n", cfg.Policy.Markup)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:  %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Interval: %ds\n", cfg.Daemon.IntervalSec)
	fmt.Printf("    Events:   %d\n", cfg.Daemon.EventsBuffer)
	fmt.Println()

	if cfg.Reports.OutputDir != "" {
		fmt.Println("  [Reports]")
		fmt.Printf("    Output dir: %s\n", cfg.Reports.OutputDir)
		fmt.Println()
	}

	fmt.Println("  Run `horeca setup` to reconfigure.")
	return nil
}

func envNote(name string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return fmt.Sprintf("  (from %s)", name)
	}
	return ""
}
