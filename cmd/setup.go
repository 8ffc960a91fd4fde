package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/horeca/internal/config"
	"github.com/theirongolddev/horeca/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("config unreadable, starting from defaults")
		cfg = config.DefaultConfig()
	}

	clients := 0
	if a, err := openApp(); err == nil {
		if list, err := a.svc.Clients(cmd.Context()); err == nil {
			clients = len(list)
		}
		a.Close()
	}

	vals := tui.NewSetupValues(cfg)
	if err := tui.NewSetupForm(clients, &vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled.")
			return nil
		}
		return err
	}

	if cfg, err = vals.Apply(cfg); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `horeca setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
