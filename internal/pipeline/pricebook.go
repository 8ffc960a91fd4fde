package pipeline

import (
	"github.com/shopspring/decimal"
	"github.com/theirongolddev/horeca/internal/model"
)

// DeviationPct returns (price - reference) / reference * 100 rounded to
// 2 decimals, or zero when the reference is not positive.
func DeviationPct(price, reference decimal.Decimal) decimal.Decimal {
	if !reference.IsPositive() {
		return decimal.Zero
	}
	return price.Sub(reference).Div(reference).Mul(hundred).Round(2)
}

// AssignPrice builds a client price entry with its deviation snapshot.
func AssignPrice(clientID, ingredientID int64, price, reference decimal.Decimal) model.ClientPrice {
	return model.ClientPrice{
		ClientID:       clientID,
		IngredientID:   ingredientID,
		Price:          price,
		ReferencePrice: reference,
		DeviationPct:   DeviationPct(price, reference),
	}
}

// Reprice returns cp with a new price and the deviation recomputed against
// the stored reference.
func Reprice(cp model.ClientPrice, price decimal.Decimal) model.ClientPrice {
	cp.Price = price
	cp.DeviationPct = DeviationPct(price, cp.ReferencePrice)
	return cp
}

// SyncLineCosts sets each line's unit cost to what the dish's client pays
// for the ingredient and recomputes its line cost. Lines whose client has
// no price for the ingredient keep their stored unit cost.
func SyncLineCosts(lines []model.RecipeLine, dishes []model.Dish, prices []model.ClientPrice) []model.RecipeLine {
	owner := make(map[int64]int64, len(dishes))
	for _, d := range dishes {
		owner[d.ID] = d.ClientID
	}
	type key struct{ client, ingredient int64 }
	book := make(map[key]decimal.Decimal, len(prices))
	for _, cp := range prices {
		book[key{cp.ClientID, cp.IngredientID}] = cp.Price
	}

	out := make([]model.RecipeLine, len(lines))
	for i, l := range lines {
		if price, ok := book[key{owner[l.DishID], l.IngredientID}]; ok && !price.Equal(l.UnitCost) {
			l.UnitCost = price
			l.LineCost = LineCost(l.Quantity, price)
		}
		out[i] = l
	}
	return out
}
