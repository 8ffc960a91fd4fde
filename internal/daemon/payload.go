package daemon

import (
	"github.com/shopspring/decimal"
	"github.com/theirongolddev/horeca/internal/service"
)

type priceAlertJSON struct {
	IngredientID     int64           `json:"ingredient_id"`
	Ingredient       string          `json:"ingredient"`
	Paid             decimal.Decimal `json:"paid"`
	Reference        decimal.Decimal `json:"reference"`
	DeviationPct     decimal.Decimal `json:"deviation_pct"`
	PotentialSavings decimal.Decimal `json:"potential_savings"`
}

type marginAlertJSON struct {
	DishID    int64           `json:"dish_id"`
	Client    string          `json:"client"`
	Dish      string          `json:"dish"`
	MarginPct decimal.Decimal `json:"margin_pct"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Cost      decimal.Decimal `json:"cost"`
}

type foodCostAlertJSON struct {
	DishID      int64           `json:"dish_id"`
	Client      string          `json:"client"`
	Dish        string          `json:"dish"`
	FoodCostPct decimal.Decimal `json:"food_cost_pct"`
	Ceiling     decimal.Decimal `json:"ceiling_pct"`
}

// AlertsResponse is served at /v1/alerts.
type AlertsResponse struct {
	Price    []priceAlertJSON    `json:"price"`
	Margin   []marginAlertJSON   `json:"margin"`
	FoodCost []foodCostAlertJSON `json:"food_cost"`
	Savings  decimal.Decimal     `json:"potential_savings_eur"`
}

func alertsPayload(a service.Alerts) AlertsResponse {
	out := AlertsResponse{
		Price:    make([]priceAlertJSON, 0, len(a.Price)),
		Margin:   make([]marginAlertJSON, 0, len(a.Margin)),
		FoodCost: make([]foodCostAlertJSON, 0, len(a.FoodCost)),
		Savings:  a.Savings,
	}
	for _, p := range a.Price {
		out.Price = append(out.Price, priceAlertJSON(p))
	}
	for _, m := range a.Margin {
		out.Margin = append(out.Margin, marginAlertJSON(m))
	}
	for _, f := range a.FoodCost {
		out.FoodCost = append(out.FoodCost, foodCostAlertJSON(f))
	}
	return out
}
