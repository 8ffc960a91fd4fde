package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/horeca/internal/model"
)

const ingredientCols = `id, name, category, unit, market_price, seasonality, updated_at, version`

// CreateIngredient inserts ing and sets its ID and version.
func (s *Store) CreateIngredient(ctx context.Context, ing *model.Ingredient) error {
	return insertIngredient(ctx, s.db, ing)
}

func insertIngredient(ctx context.Context, q querier, ing *model.Ingredient) error {
	var id any
	if ing.ID != 0 {
		id = ing.ID
	}
	updated := formatTime(ing.UpdatedAt)
	res, err := q.ExecContext(ctx, `INSERT INTO ingredients (`+ingredientCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, 1)`,
		id, ing.Name, ing.Category, ing.Unit, ing.MarketPrice, ing.Seasonality, updated)
	if err != nil {
		return fmt.Errorf("inserting ingredient: %w", mapInsertErr(err))
	}
	if ing.ID, err = lastID(res); err != nil {
		return err
	}
	ing.UpdatedAt = parseTime(updated)
	ing.Version = 1
	return nil
}

// Ingredients returns the whole reference store ordered by ID.
func (s *Store) Ingredients(ctx context.Context) ([]model.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+ingredientCols+` FROM ingredients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

// Ingredient returns one ingredient.
func (s *Store) Ingredient(ctx context.Context, id int64) (model.Ingredient, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+ingredientCols+` FROM ingredients WHERE id = ?`, id)
	ing, err := scanIngredient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ing, fmt.Errorf("ingredient %d: %w", id, ErrNotFound)
	}
	return ing, err
}

// UpdateIngredient writes ing if its version is still current and bumps it.
func (s *Store) UpdateIngredient(ctx context.Context, ing *model.Ingredient) error {
	updated := now()
	res, err := s.db.ExecContext(ctx, `UPDATE ingredients
		SET name = ?, category = ?, unit = ?, market_price = ?, seasonality = ?,
		    updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?`,
		ing.Name, ing.Category, ing.Unit, ing.MarketPrice, ing.Seasonality,
		updated, ing.ID, ing.Version)
	if err != nil {
		return fmt.Errorf("updating ingredient: %w", err)
	}
	if err := checkVersioned(ctx, s.db, res, "ingredients", ing.ID); err != nil {
		return err
	}
	ing.Version++
	ing.UpdatedAt = parseTime(updated)
	return nil
}

func scanIngredient(r scanner) (model.Ingredient, error) {
	var ing model.Ingredient
	var updated string
	err := r.Scan(&ing.ID, &ing.Name, &ing.Category, &ing.Unit, &ing.MarketPrice,
		&ing.Seasonality, &updated, &ing.Version)
	ing.UpdatedAt = parseTime(updated)
	return ing, err
}

const priceSelect = `SELECT
	cp.id, cp.client_id, c.name, cp.ingredient_id, i.name, cp.price, cp.unit,
	cp.reference_price, cp.deviation_pct, cp.supplier, cp.notes, cp.updated_at, cp.version
	FROM client_prices cp
	JOIN clients c ON c.id = cp.client_id
	JOIN ingredients i ON i.id = cp.ingredient_id`

// CreateClientPrice inserts a price book entry. A second entry for the same
// client and ingredient fails with ErrDuplicate.
func (s *Store) CreateClientPrice(ctx context.Context, cp *model.ClientPrice) error {
	return insertClientPrice(ctx, s.db, cp)
}

func insertClientPrice(ctx context.Context, q querier, cp *model.ClientPrice) error {
	var id any
	if cp.ID != 0 {
		id = cp.ID
	}
	updated := formatTime(cp.UpdatedAt)
	res, err := q.ExecContext(ctx, `INSERT INTO client_prices
		(id, client_id, ingredient_id, price, unit, reference_price, deviation_pct,
		 supplier, notes, updated_at, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		id, cp.ClientID, cp.IngredientID, cp.Price, cp.Unit, cp.ReferencePrice,
		cp.DeviationPct, cp.Supplier, cp.Notes, updated)
	if err != nil {
		return fmt.Errorf("inserting client price: %w", mapInsertErr(err))
	}
	if cp.ID, err = lastID(res); err != nil {
		return err
	}
	cp.UpdatedAt = parseTime(updated)
	cp.Version = 1
	return nil
}

// ClientPrices returns the price book of clientID, or of every client when
// clientID is zero, ordered by ID.
func (s *Store) ClientPrices(ctx context.Context, clientID int64) ([]model.ClientPrice, error) {
	query := priceSelect + ` ORDER BY cp.id`
	args := []any{}
	if clientID != 0 {
		query = priceSelect + ` WHERE cp.client_id = ? ORDER BY cp.id`
		args = append(args, clientID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.ClientPrice
	for rows.Next() {
		cp, err := scanClientPrice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

// ClientPrice returns the entry for one client and ingredient.
func (s *Store) ClientPrice(ctx context.Context, clientID, ingredientID int64) (model.ClientPrice, error) {
	row := s.db.QueryRowContext(ctx, priceSelect+` WHERE cp.client_id = ? AND cp.ingredient_id = ?`,
		clientID, ingredientID)
	cp, err := scanClientPrice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return cp, fmt.Errorf("price of ingredient %d for client %d: %w", ingredientID, clientID, ErrNotFound)
	}
	return cp, err
}

// UpdateClientPrice writes cp if its version is still current and bumps it.
func (s *Store) UpdateClientPrice(ctx context.Context, cp *model.ClientPrice) error {
	updated := now()
	res, err := s.db.ExecContext(ctx, `UPDATE client_prices
		SET price = ?, unit = ?, reference_price = ?, deviation_pct = ?, supplier = ?,
		    notes = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?`,
		cp.Price, cp.Unit, cp.ReferencePrice, cp.DeviationPct, cp.Supplier,
		cp.Notes, updated, cp.ID, cp.Version)
	if err != nil {
		return fmt.Errorf("updating client price: %w", err)
	}
	if err := checkVersioned(ctx, s.db, res, "client_prices", cp.ID); err != nil {
		return err
	}
	cp.Version++
	cp.UpdatedAt = parseTime(updated)
	return nil
}

func scanClientPrice(r scanner) (model.ClientPrice, error) {
	var cp model.ClientPrice
	var updated string
	err := r.Scan(&cp.ID, &cp.ClientID, &cp.ClientName, &cp.IngredientID, &cp.IngredientName,
		&cp.Price, &cp.Unit, &cp.ReferencePrice, &cp.DeviationPct, &cp.Supplier, &cp.Notes,
		&updated, &cp.Version)
	cp.UpdatedAt = parseTime(updated)
	return cp, err
}
