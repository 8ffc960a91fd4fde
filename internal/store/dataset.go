package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/theirongolddev/horeca/internal/model"
)

// Load reads every table into memory.
func (s *Store) Load(ctx context.Context) (model.Dataset, error) {
	var ds model.Dataset
	var err error

	if ds.Clients, err = s.Clients(ctx); err != nil {
		return ds, fmt.Errorf("loading clients: %w", err)
	}
	if ds.Ingredients, err = s.Ingredients(ctx); err != nil {
		return ds, fmt.Errorf("loading ingredients: %w", err)
	}
	if ds.Prices, err = s.ClientPrices(ctx, 0); err != nil {
		return ds, fmt.Errorf("loading client prices: %w", err)
	}
	if ds.Dishes, err = s.Dishes(ctx, 0); err != nil {
		return ds, fmt.Errorf("loading dishes: %w", err)
	}
	if ds.Lines, err = s.RecipeLines(ctx, 0); err != nil {
		return ds, fmt.Errorf("loading recipe lines: %w", err)
	}
	if ds.Purchases, err = s.PurchaseLines(ctx, 0); err != nil {
		return ds, fmt.Errorf("loading purchase lines: %w", err)
	}
	return ds, nil
}

// SaveRecompute writes the given dishes and lines in one transaction. Each
// row must still carry the version it was read with; on any conflict
// nothing is written. On success the versions in both slices are bumped.
func (s *Store) SaveRecompute(ctx context.Context, dishes []model.Dish, lines []model.RecipeLine) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for i := range dishes {
			if err := updateDish(ctx, tx, &dishes[i]); err != nil {
				return err
			}
		}
		for i := range lines {
			if err := updateRecipeLine(ctx, tx, &lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving recompute: %w", err)
	}

	for i := range dishes {
		dishes[i].Version++
	}
	for i := range lines {
		lines[i].Version++
	}
	return nil
}

// Import inserts a dataset keeping its IDs, in one transaction.
func (s *Store) Import(ctx context.Context, ds model.Dataset) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for i := range ds.Clients {
			if err := insertClient(ctx, tx, &ds.Clients[i]); err != nil {
				return fmt.Errorf("client %q: %w", ds.Clients[i].Name, err)
			}
		}
		for i := range ds.Ingredients {
			if err := insertIngredient(ctx, tx, &ds.Ingredients[i]); err != nil {
				return fmt.Errorf("ingredient %q: %w", ds.Ingredients[i].Name, err)
			}
		}
		for i := range ds.Prices {
			if err := insertClientPrice(ctx, tx, &ds.Prices[i]); err != nil {
				return fmt.Errorf("price %d: %w", ds.Prices[i].ID, err)
			}
		}
		for i := range ds.Dishes {
			if err := insertDish(ctx, tx, &ds.Dishes[i]); err != nil {
				return fmt.Errorf("dish %q: %w", ds.Dishes[i].Name, err)
			}
		}
		for i := range ds.Lines {
			if err := insertRecipeLine(ctx, tx, &ds.Lines[i]); err != nil {
				return fmt.Errorf("recipe line %d: %w", ds.Lines[i].ID, err)
			}
		}
		for i := range ds.Purchases {
			if err := insertPurchaseLine(ctx, tx, &ds.Purchases[i]); err != nil {
				return fmt.Errorf("purchase line %d: %w", ds.Purchases[i].ID, err)
			}
		}
		return nil
	})
}
