package pipeline

import (
	"github.com/shopspring/decimal"
	"github.com/theirongolddev/horeca/internal/model"
)

// ratioPlaces is the precision kept for stored percentages.
const ratioPlaces = 4

// Result holds the derived economics of a dish.
type Result struct {
	MarginAmount     decimal.Decimal
	MarginPct        decimal.Decimal
	FoodCostPct      decimal.Decimal
	Classification   model.Classification
	RecommendedPrice decimal.Decimal
}

// MarginPct returns (sale - cost) / sale * 100, or zero when sale is not positive.
func MarginPct(sale, cost decimal.Decimal) decimal.Decimal {
	return marginRatio(sale, cost).Round(ratioPlaces)
}

// FoodCostPct returns cost / sale * 100, or zero when sale is not positive.
func FoodCostPct(sale, cost decimal.Decimal) decimal.Decimal {
	return foodCostRatio(sale, cost).Round(ratioPlaces)
}

// marginRatio and foodCostRatio are the unrounded percentages that
// thresholds are compared against. Rounding is for storage and display only.
func marginRatio(sale, cost decimal.Decimal) decimal.Decimal {
	if !sale.IsPositive() {
		return decimal.Zero
	}
	return sale.Sub(cost).Div(sale).Mul(hundred)
}

func foodCostRatio(sale, cost decimal.Decimal) decimal.Decimal {
	if !sale.IsPositive() {
		return decimal.Zero
	}
	return cost.Div(sale).Mul(hundred)
}

// dishMargin is the exact margin of d. Dishes without a positive sale price
// fall back to the stored percentage.
func dishMargin(d model.Dish) decimal.Decimal {
	if d.SalePrice.IsPositive() {
		return marginRatio(d.SalePrice, d.TotalCost)
	}
	return d.MarginPct
}

func dishFoodCost(d model.Dish) decimal.Decimal {
	if d.SalePrice.IsPositive() {
		return foodCostRatio(d.SalePrice, d.TotalCost)
	}
	return d.FoodCostPct
}

// Label picks the menu-engineering quadrant.
func Label(marginPct decimal.Decimal, volume int, p Policy) model.Classification {
	highMargin := marginPct.GreaterThanOrEqual(p.StarMarginPct)
	highVolume := volume >= p.StarVolume
	switch {
	case highMargin && highVolume:
		return model.Estrella
	case highMargin:
		return model.Rompecabezas
	case highVolume:
		return model.Caballo
	default:
		return model.Perro
	}
}

// Classify derives margin, food cost, label and recommended price. The label
// is decided on the unrounded margin.
func Classify(sale, cost decimal.Decimal, volume int, p Policy) Result {
	margin := marginRatio(sale, cost)
	return Result{
		MarginAmount:     sale.Sub(cost),
		MarginPct:        margin.Round(ratioPlaces),
		FoodCostPct:      FoodCostPct(sale, cost),
		Classification:   Label(margin, volume, p),
		RecommendedPrice: cost.Mul(p.Markup),
	}
}

// ApplyClassification returns d with its derived fields rewritten from
// SalePrice, TotalCost and MonthlyVolume.
func ApplyClassification(d model.Dish, p Policy) model.Dish {
	r := Classify(d.SalePrice, d.TotalCost, d.MonthlyVolume, p)
	d.MarginAmount = r.MarginAmount
	d.MarginPct = r.MarginPct
	d.FoodCostPct = r.FoodCostPct
	d.Classification = r.Classification
	d.RecommendedPrice = r.RecommendedPrice
	return d
}
