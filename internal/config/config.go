// Package config loads horeca settings from TOML, .env files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all horeca configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Thresholds ThresholdsConfig `toml:"thresholds"`
	Policy     PolicyConfig     `toml:"policy"`
	Appearance AppearanceConfig `toml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon"`
	Reports    ReportsConfig    `toml:"reports"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Company string `toml:"company"`
	DBPath  string `toml:"db_path,omitempty"`
}

// ThresholdsConfig holds alerting thresholds, all in percent.
type ThresholdsConfig struct {
	MarginFloorPct     float64 `toml:"margin_floor_pct"`
	FoodCostCeilingPct float64 `toml:"food_cost_ceiling_pct"`
	PriceDeviationPct  float64 `toml:"price_deviation_pct"`
	PriceBookWarnPct   float64 `toml:"price_book_warn_pct"`
}

// PolicyConfig holds the menu-engineering constants.
type PolicyConfig struct {
	StarMarginPct float64 `toml:"star_margin_pct"`
	StarVolume    int     `toml:"star_volume"`
	Markup        float64 `toml:"markup"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DaemonConfig holds alert monitor settings.
type DaemonConfig struct {
	Addr         string `toml:"addr"`
	IntervalSec  int    `toml:"interval_sec"`
	EventsBuffer int    `toml:"events_buffer"`
}

// ReportsConfig holds export settings.
type ReportsConfig struct {
	OutputDir string `toml:"output_dir,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Company: "HORECA Consulting",
		},
		Thresholds: ThresholdsConfig{
			MarginFloorPct:     20,
			FoodCostCeilingPct: 35,
			PriceDeviationPct:  15,
			PriceBookWarnPct:   10,
		},
		Policy: PolicyConfig{
			StarMarginPct: 60,
			StarVolume:    50,
			Markup:        3,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8787",
			IntervalSec:  30,
			EventsBuffer: 200,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "horeca")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "horeca")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "horeca")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "horeca")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied on top of the file.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// DBPath returns the database location: HORECA_DB, then general.db_path,
// then horeca.db under the data directory.
func DBPath(cfg Config) string {
	if p := os.Getenv("HORECA_DB"); p != "" {
		return p
	}
	if cfg.General.DBPath != "" {
		return cfg.General.DBPath
	}
	return filepath.Join(DataDir(), "horeca.db")
}
