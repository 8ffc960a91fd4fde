package pipeline

import (
	"github.com/shopspring/decimal"
	"github.com/theirongolddev/horeca/internal/model"
)

// LineCost returns quantity * unit cost.
func LineCost(qty, unitCost decimal.Decimal) decimal.Decimal {
	return qty.Mul(unitCost)
}

// DishCost sums the line costs of a dish. No lines costs zero.
func DishCost(lines []model.RecipeLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineCost)
	}
	return total
}

// FilterLinesByDish returns the lines belonging to dishID, in input order.
func FilterLinesByDish(lines []model.RecipeLine, dishID int64) []model.RecipeLine {
	var out []model.RecipeLine
	for _, l := range lines {
		if l.DishID == dishID {
			out = append(out, l)
		}
	}
	return out
}

// RecomputeAll totals every dish that appears in lines.
// Dishes without lines have no entry.
func RecomputeAll(lines []model.RecipeLine) map[int64]decimal.Decimal {
	totals := make(map[int64]decimal.Decimal)
	for _, l := range lines {
		totals[l.DishID] = totals[l.DishID].Add(l.LineCost)
	}
	return totals
}

// LineShares returns copies of lines with PctOfDish set to the line's share
// of its dish total, rounded to 2 decimals. A zero total gives zero shares.
func LineShares(lines []model.RecipeLine, totals map[int64]decimal.Decimal) []model.RecipeLine {
	out := make([]model.RecipeLine, len(lines))
	for i, l := range lines {
		total := totals[l.DishID]
		if total.IsPositive() {
			l.PctOfDish = l.LineCost.Div(total).Mul(hundred).Round(2)
		} else {
			l.PctOfDish = decimal.Zero
		}
		out[i] = l
	}
	return out
}

// RefreshResult is the outcome of a full recompute.
type RefreshResult struct {
	Dishes       []model.Dish
	Lines        []model.RecipeLine
	ChangedDish  map[int64]bool
	ChangedLines map[int64]bool
}

// Refresh recomputes line costs, dish totals, line shares and the
// classification of every dish. Dishes with no lines keep their stored
// total cost. The result is idempotent: refreshing it again changes nothing.
func Refresh(dishes []model.Dish, lines []model.RecipeLine, p Policy) RefreshResult {
	costed := make([]model.RecipeLine, len(lines))
	for i, l := range lines {
		l.LineCost = LineCost(l.Quantity, l.UnitCost)
		costed[i] = l
	}

	totals := RecomputeAll(costed)
	shared := LineShares(costed, totals)

	res := RefreshResult{
		Dishes:       make([]model.Dish, len(dishes)),
		Lines:        shared,
		ChangedDish:  make(map[int64]bool),
		ChangedLines: make(map[int64]bool),
	}

	for i, d := range dishes {
		next := d
		if total, ok := totals[d.ID]; ok {
			next.TotalCost = total
		}
		next = ApplyClassification(next, p)
		if dishChanged(d, next) {
			res.ChangedDish[d.ID] = true
		}
		res.Dishes[i] = next
	}

	for i, l := range shared {
		prev := lines[i]
		if !prev.LineCost.Equal(l.LineCost) || !prev.PctOfDish.Equal(l.PctOfDish) {
			res.ChangedLines[l.ID] = true
		}
	}

	return res
}

func dishChanged(a, b model.Dish) bool {
	return !a.TotalCost.Equal(b.TotalCost) ||
		!a.MarginAmount.Equal(b.MarginAmount) ||
		!a.MarginPct.Equal(b.MarginPct) ||
		!a.FoodCostPct.Equal(b.FoodCostPct) ||
		!a.RecommendedPrice.Equal(b.RecommendedPrice) ||
		a.Classification != b.Classification
}
