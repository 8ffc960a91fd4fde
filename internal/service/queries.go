package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/horeca/internal/model"
	"github.com/theirongolddev/horeca/internal/pipeline"
)

// Alerts groups every alert kind for one scope.
type Alerts struct {
	Price    []model.PriceAlert
	Margin   []model.MarginAlert
	FoodCost []model.FoodCostAlert
	Savings  decimal.Decimal
}

// Count returns the number of alerts of any kind.
func (a Alerts) Count() int {
	return len(a.Price) + len(a.Margin) + len(a.FoodCost)
}

// Dashboard is the portfolio overview shown by the TUI and the daemon.
type Dashboard struct {
	Company   model.CompanySummary
	Menu      model.MenuSummary
	PriceBook model.PriceBookSummary
	Alerts    Alerts
}

// Snapshot loads the whole dataset.
func (s *Service) Snapshot(ctx context.Context) (model.Dataset, error) {
	return s.store.Load(ctx)
}

// Alerts loads the dataset and evaluates alerts for clientID (0 = all).
func (s *Service) Alerts(ctx context.Context, clientID int64) (Alerts, error) {
	ds, err := s.store.Load(ctx)
	if err != nil {
		return Alerts{}, err
	}
	return s.AlertsFrom(ds, clientID), nil
}

// AlertsFrom evaluates alerts over an already loaded dataset.
func (s *Service) AlertsFrom(ds model.Dataset, clientID int64) Alerts {
	purchases := ds.Purchases
	if clientID != 0 {
		purchases = nil
		for _, p := range ds.Purchases {
			if p.ClientID == clientID {
				purchases = append(purchases, p)
			}
		}
	}
	dishes := pipeline.FilterDishesByClient(ds.Dishes, clientID)

	a := Alerts{
		Price:    pipeline.FindPriceAlerts(purchases, ds.Ingredients, s.thresholds.PriceDeviationPct),
		Margin:   pipeline.FindMarginAlerts(dishes, s.thresholds.MarginFloorPct),
		FoodCost: pipeline.FindFoodCostAlerts(dishes, s.thresholds.FoodCostCeilingPct),
	}
	a.Savings = pipeline.TotalSavings(a.Price)
	return a
}

// Dashboard loads the dataset and summarizes it for clientID (0 = all).
func (s *Service) Dashboard(ctx context.Context, clientID int64) (Dashboard, error) {
	ds, err := s.store.Load(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return s.DashboardFrom(ds, clientID), nil
}

// DashboardFrom summarizes an already loaded dataset.
func (s *Service) DashboardFrom(ds model.Dataset, clientID int64) Dashboard {
	return Dashboard{
		Company:   pipeline.SummarizeCompany(ds.Clients),
		Menu:      pipeline.SummarizeMenu(pipeline.FilterDishesByClient(ds.Dishes, clientID), s.thresholds.MarginFloorPct),
		PriceBook: pipeline.SummarizePriceBook(pipeline.FilterPricesByClient(ds.Prices, clientID), s.thresholds.PriceBookWarnPct),
		Alerts:    s.AlertsFrom(ds, clientID),
	}
}

// Clients lists every client.
func (s *Service) Clients(ctx context.Context) ([]model.Client, error) {
	return s.store.Clients(ctx)
}

// Ingredients lists the reference ingredients.
func (s *Service) Ingredients(ctx context.Context) ([]model.Ingredient, error) {
	return s.store.Ingredients(ctx)
}

// PriceBook lists client prices for clientID (0 = all).
func (s *Service) PriceBook(ctx context.Context, clientID int64) ([]model.ClientPrice, error) {
	return s.store.ClientPrices(ctx, clientID)
}

// Dishes lists the menu of clientID (0 = all).
func (s *Service) Dishes(ctx context.Context, clientID int64) ([]model.Dish, error) {
	return s.store.Dishes(ctx, clientID)
}

// Recipe returns a dish with its recipe lines.
func (s *Service) Recipe(ctx context.Context, dishID int64) (model.Dish, []model.RecipeLine, error) {
	d, err := s.store.Dish(ctx, dishID)
	if err != nil {
		return d, nil, err
	}
	lines, err := s.store.RecipeLines(ctx, dishID)
	return d, lines, err
}

// Purchases lists purchase lines for clientID (0 = all).
func (s *Service) Purchases(ctx context.Context, clientID int64) ([]model.PurchaseLine, error) {
	return s.store.PurchaseLines(ctx, clientID)
}

// Import bulk loads a dataset and recomputes everything.
func (s *Service) Import(ctx context.Context, ds model.Dataset) (RecomputeSummary, error) {
	if err := s.store.Import(ctx, ds); err != nil {
		return RecomputeSummary{}, err
	}
	return s.recompute(ctx)
}
