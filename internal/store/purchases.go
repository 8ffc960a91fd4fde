package store

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/horeca/internal/model"
)

// CreatePurchaseLine records a paid purchase line.
func (s *Store) CreatePurchaseLine(ctx context.Context, p *model.PurchaseLine) error {
	return insertPurchaseLine(ctx, s.db, p)
}

func insertPurchaseLine(ctx context.Context, q querier, p *model.PurchaseLine) error {
	var id any
	if p.ID != 0 {
		id = p.ID
	}
	if p.PurchasedAt.IsZero() {
		p.PurchasedAt = time.Now().UTC()
	}
	res, err := q.ExecContext(ctx, `INSERT INTO purchase_lines
		(id, client_id, ingredient_id, ingredient_name, quantity, unit_price, purchased_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, p.ClientID, p.IngredientID, p.IngredientName, p.Quantity, p.UnitPrice,
		p.PurchasedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting purchase line: %w", mapInsertErr(err))
	}
	if p.ID, err = lastID(res); err != nil {
		return err
	}
	return nil
}

// PurchaseLines returns purchase lines of clientID, or all when zero,
// in insertion order.
func (s *Store) PurchaseLines(ctx context.Context, clientID int64) ([]model.PurchaseLine, error) {
	query := `SELECT id, client_id, ingredient_id, ingredient_name, quantity, unit_price, purchased_at
		FROM purchase_lines`
	args := []any{}
	if clientID != 0 {
		query += ` WHERE client_id = ?`
		args = append(args, clientID)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.PurchaseLine
	for rows.Next() {
		var p model.PurchaseLine
		var at string
		if err := rows.Scan(&p.ID, &p.ClientID, &p.IngredientID, &p.IngredientName,
			&p.Quantity, &p.UnitPrice, &at); err != nil {
			return nil, err
		}
		p.PurchasedAt = parseTime(at)
		out = append(out, p)
	}
	return out, rows.Err()
}
