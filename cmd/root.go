// Package cmd implements the horeca CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/theirongolddev/horeca/internal/cli"
	"github.com/theirongolddev/horeca/internal/config"
	"github.com/theirongolddev/horeca/internal/service"
	"github.com/theirongolddev/horeca/internal/source"
	"github.com/theirongolddev/horeca/internal/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagDB      string
	flagClient  int64
	flagQuiet   bool
	flagVerbose bool
	flagLimit   int
)

var rootCmd = &cobra.Command{
	Use:               "horeca",
	Short:             "Recipe costing and menu margins for restaurant clients",
	Long:              "Cost recipes from client price books, classify dishes and flag margin, food cost and purchase price alerts.",
	SilenceUsage:      true,
	PersistentPreRunE: setupRuntime,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default: HORECA_DB or ~/.local/share/horeca/horeca.db)")
	rootCmd.PersistentFlags().Int64VarP(&flagClient, "client", "c", 0, "Restrict to one client ID")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", 5, "Max alerts per kind in the summary")
}

// setupRuntime configures logging and loads the .env file before any command runs.
func setupRuntime(_ *cobra.Command, _ []string) error {
	level := zerolog.InfoLevel
	switch {
	case flagVerbose:
		level = zerolog.DebugLevel
	case flagQuiet:
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	return config.LoadDotEnv()
}

// app bundles what data commands need. Close releases the store.
type app struct {
	cfg    config.Config
	st     *store.Store
	svc    *service.Service
	dbPath string
}

// openApp loads config and opens the store. It is the shared entry of every
// data command.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	path := flagDB
	if path == "" {
		path = config.DBPath(cfg)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("db", path).Msg("store opened")

	return &app{cfg: cfg, st: st, svc: service.New(st, cfg), dbPath: path}, nil
}

func (a *app) Close() {
	if err := a.st.Close(); err != nil {
		log.Warn().Err(err).Msg("closing store")
	}
}

// parseAmount parses a money or percentage argument, accepting a decimal comma.
func parseAmount(name, raw string) (decimal.Decimal, error) {
	d, err := source.ParseAmount(raw)
	if err != nil {
		return d, fmt.Errorf("invalid %s %q", name, raw)
	}
	return d, nil
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// recomputeOutcome prints what a recompute produced. A persistence failure
// still shows the computed values, then returns the error with a retry hint.
func recomputeOutcome(sum service.RecomputeSummary, err error) error {
	if err != nil && errors.Is(err, service.ErrValidation) {
		return err
	}
	if err != nil && len(sum.Dishes) == 0 {
		return err
	}

	if len(sum.Dishes) > 0 {
		rows := make([][]string, 0, len(sum.Dishes))
		for _, d := range sum.Dishes {
			rows = append(rows, []string{
				d.Name,
				cli.FormatMoney(d.TotalCost),
				cli.FormatPct(d.MarginPct),
				cli.FormatPct(d.FoodCostPct),
				string(d.Classification),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Platos recalculados",
			Headers: []string{"Plato", "Coste", "Margen", "Food cost", "Clase"},
			Rows:    rows,
		}))
	}

	if err != nil {
		return fmt.Errorf("%w\n  The values above were computed but not saved; run `horeca recompute` to retry", err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %d dishes and %d lines updated in %s\n",
			sum.DishesUpdated, sum.LinesUpdated, sum.Elapsed.Round(time.Millisecond))
	}
	return nil
}
