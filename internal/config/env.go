package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names understood by horeca.
const (
	EnvMarginFloor     = "UMBRAL_MARGEN_MINIMO"
	EnvFoodCostCeiling = "UMBRAL_FOOD_COST_MAXIMO"
	EnvPriceDeviation  = "UMBRAL_DESVIACION_PRECIO"
	EnvDB              = "HORECA_DB"
)

// LoadDotEnv loads a .env file from the working directory or from the
// given paths. Variables already set in the environment win. A missing
// file is not an error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	overrides := []struct {
		name string
		dst  *float64
	}{
		{EnvMarginFloor, &cfg.Thresholds.MarginFloorPct},
		{EnvFoodCostCeiling, &cfg.Thresholds.FoodCostCeilingPct},
		{EnvPriceDeviation, &cfg.Thresholds.PriceDeviationPct},
	}
	for _, o := range overrides {
		raw, ok := os.LookupEnv(o.name)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", o.name, raw, err)
		}
		*o.dst = v
	}
	return nil
}
