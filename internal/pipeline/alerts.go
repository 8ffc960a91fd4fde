package pipeline

import (
	"github.com/shopspring/decimal"
	"github.com/theirongolddev/horeca/internal/model"
)

// FindPriceAlerts flags purchase lines paid more than thresholdPct above the
// ingredient's reference price. Lines whose ingredient is missing or has no
// positive reference are skipped. Output follows purchase order.
func FindPriceAlerts(purchases []model.PurchaseLine, ingredients []model.Ingredient, thresholdPct decimal.Decimal) []model.PriceAlert {
	refs := make(map[int64]model.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		if _, seen := refs[ing.ID]; !seen {
			refs[ing.ID] = ing
		}
	}

	var alerts []model.PriceAlert
	for _, p := range purchases {
		ing, ok := refs[p.IngredientID]
		if !ok || !ing.MarketPrice.IsPositive() {
			continue
		}
		dev := p.UnitPrice.Sub(ing.MarketPrice).Div(ing.MarketPrice).Mul(hundred)
		if !dev.GreaterThan(thresholdPct) {
			continue
		}
		name := p.IngredientName
		if name == "" {
			name = ing.Name
		}
		alerts = append(alerts, model.PriceAlert{
			IngredientID:     p.IngredientID,
			Ingredient:       name,
			Paid:             p.UnitPrice,
			Reference:        ing.MarketPrice,
			DeviationPct:     dev.Round(1),
			PotentialSavings: p.UnitPrice.Sub(ing.MarketPrice).Mul(p.Quantity),
		})
	}
	return alerts
}

// FindMarginAlerts flags active dishes whose margin is below floorPct.
// Output follows dish order.
func FindMarginAlerts(dishes []model.Dish, floorPct decimal.Decimal) []model.MarginAlert {
	var alerts []model.MarginAlert
	for _, d := range dishes {
		if !d.Active || !dishMargin(d).LessThan(floorPct) {
			continue
		}
		alerts = append(alerts, model.MarginAlert{
			DishID:    d.ID,
			Client:    d.ClientName,
			Dish:      d.Name,
			MarginPct: d.MarginPct.Round(1),
			SalePrice: d.SalePrice,
			Cost:      d.TotalCost,
		})
	}
	return alerts
}

// FindFoodCostAlerts flags active dishes whose food cost exceeds ceilingPct.
func FindFoodCostAlerts(dishes []model.Dish, ceilingPct decimal.Decimal) []model.FoodCostAlert {
	var alerts []model.FoodCostAlert
	for _, d := range dishes {
		if !d.Active || !dishFoodCost(d).GreaterThan(ceilingPct) {
			continue
		}
		alerts = append(alerts, model.FoodCostAlert{
			DishID:      d.ID,
			Client:      d.ClientName,
			Dish:        d.Name,
			FoodCostPct: d.FoodCostPct.Round(1),
			Ceiling:     ceilingPct,
		})
	}
	return alerts
}

// TotalSavings sums the potential savings of a set of price alerts.
func TotalSavings(alerts []model.PriceAlert) decimal.Decimal {
	total := decimal.Zero
	for _, a := range alerts {
		total = total.Add(a.PotentialSavings)
	}
	return total
}
