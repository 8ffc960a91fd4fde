package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/horeca/internal/model"
)

const dishSelect = `SELECT
	d.id, d.client_id, c.name, d.name, d.category, d.sale_price, d.total_cost,
	d.margin_amount, d.margin_pct, d.food_cost_pct, d.monthly_volume, d.classification,
	d.recommended_price, d.active, d.notes, d.version
	FROM dishes d
	JOIN clients c ON c.id = d.client_id`

// CreateDish inserts d and sets its ID and version.
func (s *Store) CreateDish(ctx context.Context, d *model.Dish) error {
	return insertDish(ctx, s.db, d)
}

func insertDish(ctx context.Context, q querier, d *model.Dish) error {
	var id any
	if d.ID != 0 {
		id = d.ID
	}
	res, err := q.ExecContext(ctx, `INSERT INTO dishes
		(id, client_id, name, category, sale_price, total_cost, margin_amount, margin_pct,
		 food_cost_pct, monthly_volume, classification, recommended_price, active, notes, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		id, d.ClientID, d.Name, d.Category, d.SalePrice, d.TotalCost, d.MarginAmount, d.MarginPct,
		d.FoodCostPct, d.MonthlyVolume, string(d.Classification), d.RecommendedPrice,
		boolInt(d.Active), d.Notes)
	if err != nil {
		return fmt.Errorf("inserting dish: %w", mapInsertErr(err))
	}
	if d.ID, err = lastID(res); err != nil {
		return err
	}
	d.Version = 1
	return nil
}

// Dishes returns the dishes of clientID, or all dishes when clientID is
// zero, ordered by ID.
func (s *Store) Dishes(ctx context.Context, clientID int64) ([]model.Dish, error) {
	query := dishSelect + ` ORDER BY d.id`
	args := []any{}
	if clientID != 0 {
		query = dishSelect + ` WHERE d.client_id = ? ORDER BY d.id`
		args = append(args, clientID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Dish
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Dish returns one dish.
func (s *Store) Dish(ctx context.Context, id int64) (model.Dish, error) {
	d, err := scanDish(s.db.QueryRowContext(ctx, dishSelect+` WHERE d.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return d, fmt.Errorf("dish %d: %w", id, ErrNotFound)
	}
	return d, err
}

// UpdateDish writes d if its version is still current and bumps it.
func (s *Store) UpdateDish(ctx context.Context, d *model.Dish) error {
	if err := updateDish(ctx, s.db, d); err != nil {
		return err
	}
	d.Version++
	return nil
}

func updateDish(ctx context.Context, q querier, d *model.Dish) error {
	res, err := q.ExecContext(ctx, `UPDATE dishes
		SET name = ?, category = ?, sale_price = ?, total_cost = ?, margin_amount = ?,
		    margin_pct = ?, food_cost_pct = ?, monthly_volume = ?, classification = ?,
		    recommended_price = ?, active = ?, notes = ?, version = version + 1
		WHERE id = ? AND version = ?`,
		d.Name, d.Category, d.SalePrice, d.TotalCost, d.MarginAmount,
		d.MarginPct, d.FoodCostPct, d.MonthlyVolume, string(d.Classification),
		d.RecommendedPrice, boolInt(d.Active), d.Notes, d.ID, d.Version)
	if err != nil {
		return fmt.Errorf("updating dish: %w", err)
	}
	return checkVersioned(ctx, q, res, "dishes", d.ID)
}

func scanDish(r scanner) (model.Dish, error) {
	var d model.Dish
	var class string
	var active int
	err := r.Scan(&d.ID, &d.ClientID, &d.ClientName, &d.Name, &d.Category, &d.SalePrice,
		&d.TotalCost, &d.MarginAmount, &d.MarginPct, &d.FoodCostPct, &d.MonthlyVolume,
		&class, &d.RecommendedPrice, &active, &d.Notes, &d.Version)
	d.Classification = model.Classification(class)
	d.Active = active != 0
	return d, err
}

const lineSelect = `SELECT
	l.id, l.dish_id, d.name, l.ingredient_id, i.name, l.quantity, l.unit, l.unit_cost,
	l.line_cost, l.pct_of_dish, l.supplier, l.updated_at, l.version
	FROM recipe_lines l
	JOIN dishes d ON d.id = l.dish_id
	JOIN ingredients i ON i.id = l.ingredient_id`

// CreateRecipeLine inserts l and sets its ID and version.
func (s *Store) CreateRecipeLine(ctx context.Context, l *model.RecipeLine) error {
	return insertRecipeLine(ctx, s.db, l)
}

func insertRecipeLine(ctx context.Context, q querier, l *model.RecipeLine) error {
	var id any
	if l.ID != 0 {
		id = l.ID
	}
	updated := formatTime(l.UpdatedAt)
	res, err := q.ExecContext(ctx, `INSERT INTO recipe_lines
		(id, dish_id, ingredient_id, quantity, unit, unit_cost, line_cost, pct_of_dish,
		 supplier, updated_at, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		id, l.DishID, l.IngredientID, l.Quantity, l.Unit, l.UnitCost, l.LineCost,
		l.PctOfDish, l.Supplier, updated)
	if err != nil {
		return fmt.Errorf("inserting recipe line: %w", mapInsertErr(err))
	}
	if l.ID, err = lastID(res); err != nil {
		return err
	}
	l.UpdatedAt = parseTime(updated)
	l.Version = 1
	return nil
}

// RecipeLines returns the lines of dishID, or every line when dishID is
// zero, in insertion order.
func (s *Store) RecipeLines(ctx context.Context, dishID int64) ([]model.RecipeLine, error) {
	query := lineSelect + ` ORDER BY l.id`
	args := []any{}
	if dishID != 0 {
		query = lineSelect + ` WHERE l.dish_id = ? ORDER BY l.id`
		args = append(args, dishID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.RecipeLine
	for rows.Next() {
		var l model.RecipeLine
		var updated string
		err := rows.Scan(&l.ID, &l.DishID, &l.DishName, &l.IngredientID, &l.IngredientName,
			&l.Quantity, &l.Unit, &l.UnitCost, &l.LineCost, &l.PctOfDish, &l.Supplier,
			&updated, &l.Version)
		if err != nil {
			return nil, err
		}
		l.UpdatedAt = parseTime(updated)
		out = append(out, l)
	}
	return out, rows.Err()
}

func updateRecipeLine(ctx context.Context, q querier, l *model.RecipeLine) error {
	res, err := q.ExecContext(ctx, `UPDATE recipe_lines
		SET quantity = ?, unit = ?, unit_cost = ?, line_cost = ?, pct_of_dish = ?,
		    supplier = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?`,
		l.Quantity, l.Unit, l.UnitCost, l.LineCost, l.PctOfDish,
		l.Supplier, now(), l.ID, l.Version)
	if err != nil {
		return fmt.Errorf("updating recipe line: %w", err)
	}
	return checkVersioned(ctx, q, res, "recipe_lines", l.ID)
}
