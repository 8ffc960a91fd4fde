package pipeline

import (
	"github.com/shopspring/decimal"
	"github.com/theirongolddev/horeca/internal/model"
)

// FilterDishesByClient returns the dishes of one client. Zero keeps all.
func FilterDishesByClient(dishes []model.Dish, clientID int64) []model.Dish {
	if clientID == 0 {
		return dishes
	}
	var out []model.Dish
	for _, d := range dishes {
		if d.ClientID == clientID {
			out = append(out, d)
		}
	}
	return out
}

// FilterPricesByClient returns the price book of one client. Zero keeps all.
func FilterPricesByClient(prices []model.ClientPrice, clientID int64) []model.ClientPrice {
	if clientID == 0 {
		return prices
	}
	var out []model.ClientPrice
	for _, p := range prices {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out
}

// SummarizeMenu computes menu metrics. The average margin is taken over all
// dishes; low-margin counts only active ones, as margin alerts do.
func SummarizeMenu(dishes []model.Dish, floorPct decimal.Decimal) model.MenuSummary {
	s := model.MenuSummary{
		Dishes:       len(dishes),
		AvgMarginPct: decimal.Zero,
		ByClass:      make(map[model.Classification]int),
	}
	if len(dishes) == 0 {
		return s
	}

	sum := decimal.Zero
	for _, d := range dishes {
		sum = sum.Add(d.MarginPct)
		if d.Active {
			s.Active++
			if dishMargin(d).LessThan(floorPct) {
				s.LowMargin++
			}
		}
		if d.Classification == model.Estrella {
			s.Stars++
		}
		if d.Classification != "" {
			s.ByClass[d.Classification]++
		}
	}
	s.AvgMarginPct = sum.Div(decimal.NewFromInt(int64(len(dishes)))).Round(2)
	return s
}

// SummarizePriceBook computes price book metrics. AboveMarket counts entries
// whose deviation is above warnPct.
func SummarizePriceBook(prices []model.ClientPrice, warnPct decimal.Decimal) model.PriceBookSummary {
	s := model.PriceBookSummary{
		Ingredients:     len(prices),
		AvgPrice:        decimal.Zero,
		AvgDeviationPct: decimal.Zero,
	}
	if len(prices) == 0 {
		return s
	}

	priceSum, devSum := decimal.Zero, decimal.Zero
	for _, p := range prices {
		priceSum = priceSum.Add(p.Price)
		devSum = devSum.Add(p.DeviationPct)
		if p.DeviationPct.GreaterThan(warnPct) {
			s.AboveMarket++
		}
	}
	n := decimal.NewFromInt(int64(len(prices)))
	s.AvgPrice = priceSum.Div(n).Round(2)
	s.AvgDeviationPct = devSum.Div(n).Round(2)
	return s
}

// SummarizeCompany computes portfolio metrics. MRR counts active clients only.
func SummarizeCompany(clients []model.Client) model.CompanySummary {
	s := model.CompanySummary{Clients: len(clients), MRR: decimal.Zero}
	for _, c := range clients {
		if c.Active {
			s.ActiveClients++
			s.MRR = s.MRR.Add(c.MRR)
		}
	}
	return s
}
