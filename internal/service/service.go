// Package service implements the user-facing costing operations on top of
// the store and the pure pipeline.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/theirongolddev/horeca/internal/config"
	"github.com/theirongolddev/horeca/internal/model"
	"github.com/theirongolddev/horeca/internal/pipeline"
	"github.com/theirongolddev/horeca/internal/store"
)

// Service errors.
var (
	ErrValidation      = errors.New("invalid input")
	ErrAlreadyAssigned = errors.New("ingredient already has a price for this client, update it instead")
	ErrNotInPriceBook  = errors.New("ingredient has no price for the dish's client, assign one first")
)

// Service runs costing operations against a store.
type Service struct {
	store      *store.Store
	policy     pipeline.Policy
	thresholds pipeline.Thresholds

	// beforeSave runs between computing and persisting a recompute.
	beforeSave func(ctx context.Context)
}

// New returns a service using the policy and thresholds from cfg.
func New(st *store.Store, cfg config.Config) *Service {
	return &Service{
		store:      st,
		policy:     pipeline.PolicyFromConfig(cfg),
		thresholds: pipeline.ThresholdsFromConfig(cfg),
	}
}

// Policy returns the menu-engineering policy in use.
func (s *Service) Policy() pipeline.Policy { return s.policy }

// Thresholds returns the alerting thresholds in use.
func (s *Service) Thresholds() pipeline.Thresholds { return s.thresholds }

// NewClient is the input of CreateClient.
type NewClient struct {
	Name    string          `validate:"required,max=120"`
	City    string          `validate:"max=80"`
	Service string          `validate:"max=80"`
	MRR     decimal.Decimal `validate:"gte=0"`
	Active  bool
}

// CreateClient registers a client.
func (s *Service) CreateClient(ctx context.Context, in NewClient) (model.Client, error) {
	if err := check(in); err != nil {
		return model.Client{}, err
	}
	c := model.Client{Name: in.Name, City: in.City, Service: in.Service, MRR: in.MRR, Active: in.Active}
	if err := s.store.CreateClient(ctx, &c); err != nil {
		return c, err
	}
	log.Debug().Int64("client", c.ID).Str("name", c.Name).Msg("client created")
	return c, nil
}

// NewIngredient is the input of CreateIngredient.
type NewIngredient struct {
	Name        string          `validate:"required,max=120"`
	Category    string          `validate:"max=60"`
	Unit        string          `validate:"max=20"`
	MarketPrice decimal.Decimal `validate:"gt=0"`
	Seasonality string
}

// CreateIngredient adds an ingredient to the reference store.
func (s *Service) CreateIngredient(ctx context.Context, in NewIngredient) (model.Ingredient, error) {
	if err := check(in); err != nil {
		return model.Ingredient{}, err
	}
	ing := model.Ingredient{
		Name: in.Name, Category: in.Category, Unit: in.Unit,
		MarketPrice: in.MarketPrice, Seasonality: in.Seasonality,
	}
	if err := s.store.CreateIngredient(ctx, &ing); err != nil {
		return ing, err
	}
	log.Debug().Int64("ingredient", ing.ID).Str("name", ing.Name).Msg("ingredient created")
	return ing, nil
}

type marketPriceInput struct {
	Price decimal.Decimal `validate:"gt=0"`
}

// UpdateMarketPrice sets the reference price of an ingredient. Existing
// client prices keep the reference they were assigned against.
func (s *Service) UpdateMarketPrice(ctx context.Context, ingredientID int64, price decimal.Decimal) (model.Ingredient, error) {
	if err := check(marketPriceInput{Price: price}); err != nil {
		return model.Ingredient{}, err
	}
	ing, err := s.store.Ingredient(ctx, ingredientID)
	if err != nil {
		return ing, err
	}
	ing.MarketPrice = price
	if err := s.store.UpdateIngredient(ctx, &ing); err != nil {
		return ing, err
	}
	log.Debug().Int64("ingredient", ing.ID).Str("price", price.String()).Msg("market price updated")
	return ing, nil
}

// AssignPriceInput is the input of AssignPrice.
type AssignPriceInput struct {
	ClientID     int64           `validate:"gt=0"`
	IngredientID int64           `validate:"gt=0"`
	Price        decimal.Decimal `validate:"gt=0"`
	Supplier     string
	Notes        string
}

// AssignPrice adds an ingredient to a client's price book, snapshotting the
// current market price as the reference.
func (s *Service) AssignPrice(ctx context.Context, in AssignPriceInput) (model.ClientPrice, error) {
	if err := check(in); err != nil {
		return model.ClientPrice{}, err
	}
	client, err := s.store.Client(ctx, in.ClientID)
	if err != nil {
		return model.ClientPrice{}, err
	}
	ing, err := s.store.Ingredient(ctx, in.IngredientID)
	if err != nil {
		return model.ClientPrice{}, err
	}

	_, err = s.store.ClientPrice(ctx, in.ClientID, in.IngredientID)
	switch {
	case err == nil:
		return model.ClientPrice{}, fmt.Errorf("%s for %s: %w", ing.Name, client.Name, ErrAlreadyAssigned)
	case !errors.Is(err, store.ErrNotFound):
		return model.ClientPrice{}, err
	}

	cp := pipeline.AssignPrice(client.ID, ing.ID, in.Price, ing.MarketPrice)
	cp.ClientName = client.Name
	cp.IngredientName = ing.Name
	cp.Unit = ing.Unit
	cp.Supplier = in.Supplier
	cp.Notes = in.Notes

	if err := s.store.CreateClientPrice(ctx, &cp); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return cp, fmt.Errorf("%s for %s: %w", ing.Name, client.Name, ErrAlreadyAssigned)
		}
		return cp, err
	}
	log.Debug().Int64("client", client.ID).Int64("ingredient", ing.ID).
		Str("deviation", cp.DeviationPct.String()).Msg("price assigned")
	return cp, nil
}

type clientPriceInput struct {
	Price decimal.Decimal `validate:"gt=0"`
}

// UpdateClientPrice changes what a client pays for an ingredient. The
// deviation is recomputed against the stored reference and every dish is
// recomputed, which carries the new price into the client's recipe lines.
func (s *Service) UpdateClientPrice(ctx context.Context, clientID, ingredientID int64, price decimal.Decimal) (model.ClientPrice, RecomputeSummary, error) {
	if err := check(clientPriceInput{Price: price}); err != nil {
		return model.ClientPrice{}, RecomputeSummary{}, err
	}
	cp, err := s.store.ClientPrice(ctx, clientID, ingredientID)
	if err != nil {
		return cp, RecomputeSummary{}, err
	}
	cp = pipeline.Reprice(cp, price)
	if err := s.store.UpdateClientPrice(ctx, &cp); err != nil {
		return cp, RecomputeSummary{}, err
	}
	log.Debug().Int64("client", clientID).Int64("ingredient", ingredientID).
		Str("deviation", cp.DeviationPct.String()).Msg("client price updated")

	sum, err := s.recompute(ctx)
	return cp, sum, err
}

// NewDish is the input of CreateDish.
type NewDish struct {
	ClientID      int64           `validate:"gt=0"`
	Name          string          `validate:"required,max=120"`
	Category      string          `validate:"max=60"`
	SalePrice     decimal.Decimal `validate:"gt=0"`
	ManualCost    decimal.Decimal `validate:"gte=0"`
	MonthlyVolume int             `validate:"gte=0"`
	Active        bool
	Notes         string
}

// CreateDish adds a dish to a client's menu and classifies it. ManualCost
// stands until the dish gets recipe lines.
func (s *Service) CreateDish(ctx context.Context, in NewDish) (model.Dish, error) {
	if err := check(in); err != nil {
		return model.Dish{}, err
	}
	client, err := s.store.Client(ctx, in.ClientID)
	if err != nil {
		return model.Dish{}, err
	}

	d := model.Dish{
		ClientID:      client.ID,
		ClientName:    client.Name,
		Name:          in.Name,
		Category:      in.Category,
		SalePrice:     in.SalePrice,
		TotalCost:     in.ManualCost,
		MonthlyVolume: in.MonthlyVolume,
		Active:        in.Active,
		Notes:         in.Notes,
	}
	d = pipeline.ApplyClassification(d, s.policy)
	if err := s.store.CreateDish(ctx, &d); err != nil {
		return d, err
	}
	log.Debug().Int64("dish", d.ID).Str("class", string(d.Classification)).Msg("dish created")
	return d, nil
}

// NewRecipeLine is the input of AddRecipeLine.
type NewRecipeLine struct {
	DishID       int64           `validate:"gt=0"`
	IngredientID int64           `validate:"gt=0"`
	Quantity     decimal.Decimal `validate:"gt=0"`
}

// AddRecipeLine adds an ingredient line to a dish, copying unit cost, unit
// and supplier from the owning client's price book, then recomputes.
func (s *Service) AddRecipeLine(ctx context.Context, in NewRecipeLine) (model.RecipeLine, RecomputeSummary, error) {
	if err := check(in); err != nil {
		return model.RecipeLine{}, RecomputeSummary{}, err
	}
	dish, err := s.store.Dish(ctx, in.DishID)
	if err != nil {
		return model.RecipeLine{}, RecomputeSummary{}, err
	}
	cp, err := s.store.ClientPrice(ctx, dish.ClientID, in.IngredientID)
	if errors.Is(err, store.ErrNotFound) {
		return model.RecipeLine{}, RecomputeSummary{}, fmt.Errorf("ingredient %d for %s: %w", in.IngredientID, dish.ClientName, ErrNotInPriceBook)
	}
	if err != nil {
		return model.RecipeLine{}, RecomputeSummary{}, err
	}

	l := model.RecipeLine{
		DishID:         dish.ID,
		DishName:       dish.Name,
		IngredientID:   cp.IngredientID,
		IngredientName: cp.IngredientName,
		Quantity:       in.Quantity,
		Unit:           cp.Unit,
		UnitCost:       cp.Price,
		LineCost:       pipeline.LineCost(in.Quantity, cp.Price),
		Supplier:       cp.Supplier,
	}
	if err := s.store.CreateRecipeLine(ctx, &l); err != nil {
		return l, RecomputeSummary{}, err
	}
	log.Debug().Int64("dish", dish.ID).Int64("line", l.ID).Str("cost", l.LineCost.String()).Msg("recipe line added")

	sum, err := s.recompute(ctx)
	for _, rl := range sum.Lines {
		if rl.ID == l.ID {
			l = rl
		}
	}
	return l, sum, err
}

// NewPurchase is the input of RecordPurchase.
type NewPurchase struct {
	ClientID     int64           `validate:"gte=0"`
	IngredientID int64           `validate:"gt=0"`
	Quantity     decimal.Decimal `validate:"gt=0"`
	UnitPrice    decimal.Decimal `validate:"gt=0"`
	PurchasedAt  time.Time
}

// RecordPurchase stores a paid purchase line. The ingredient does not have
// to exist in the reference store; such lines never raise price alerts.
func (s *Service) RecordPurchase(ctx context.Context, in NewPurchase) (model.PurchaseLine, error) {
	if err := check(in); err != nil {
		return model.PurchaseLine{}, err
	}
	p := model.PurchaseLine{
		ClientID:     in.ClientID,
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		PurchasedAt:  in.PurchasedAt,
	}
	if ing, err := s.store.Ingredient(ctx, in.IngredientID); err == nil {
		p.IngredientName = ing.Name
	} else if !errors.Is(err, store.ErrNotFound) {
		return p, err
	}
	if err := s.store.CreatePurchaseLine(ctx, &p); err != nil {
		return p, err
	}
	return p, nil
}
