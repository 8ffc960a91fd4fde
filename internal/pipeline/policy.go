// Package pipeline implements recipe costing, menu classification and alerting.
// Every function here is pure over in-memory slices; storage lives elsewhere.
package pipeline

import (
	"github.com/shopspring/decimal"
	"github.com/theirongolddev/horeca/internal/config"
)

var hundred = decimal.NewFromInt(100)

// Policy holds the menu-engineering constants.
type Policy struct {
	StarMarginPct decimal.Decimal // margin % at or above which a dish is high-margin
	StarVolume    int             // monthly units at or above which a dish is high-volume
	Markup        decimal.Decimal // recommended price = cost * Markup
}

// Thresholds holds alerting thresholds in percent.
type Thresholds struct {
	MarginFloorPct     decimal.Decimal
	FoodCostCeilingPct decimal.Decimal
	PriceDeviationPct  decimal.Decimal
	PriceBookWarnPct   decimal.Decimal
}

// DefaultPolicy returns the standard 60% / 50 units / x3 policy.
func DefaultPolicy() Policy {
	return PolicyFromConfig(config.DefaultConfig())
}

// DefaultThresholds returns the standard alerting thresholds.
func DefaultThresholds() Thresholds {
	return ThresholdsFromConfig(config.DefaultConfig())
}

// PolicyFromConfig converts the configured policy to decimals.
func PolicyFromConfig(cfg config.Config) Policy {
	return Policy{
		StarMarginPct: decimal.NewFromFloat(cfg.Policy.StarMarginPct),
		StarVolume:    cfg.Policy.StarVolume,
		Markup:        decimal.NewFromFloat(cfg.Policy.Markup),
	}
}

// ThresholdsFromConfig converts the configured thresholds to decimals.
func ThresholdsFromConfig(cfg config.Config) Thresholds {
	t := cfg.Thresholds
	return Thresholds{
		MarginFloorPct:     decimal.NewFromFloat(t.MarginFloorPct),
		FoodCostCeilingPct: decimal.NewFromFloat(t.FoodCostCeilingPct),
		PriceDeviationPct:  decimal.NewFromFloat(t.PriceDeviationPct),
		PriceBookWarnPct:   decimal.NewFromFloat(t.PriceBookWarnPct),
	}
}
