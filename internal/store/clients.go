package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/horeca/internal/model"
)

const clientCols = `id, name, city, service, mrr, active`

// CreateClient inserts c and sets its ID. A non-zero ID is kept.
func (s *Store) CreateClient(ctx context.Context, c *model.Client) error {
	return insertClient(ctx, s.db, c)
}

func insertClient(ctx context.Context, q querier, c *model.Client) error {
	var id any
	if c.ID != 0 {
		id = c.ID
	}
	res, err := q.ExecContext(ctx, `INSERT INTO clients (`+clientCols+`) VALUES (?, ?, ?, ?, ?, ?)`,
		id, c.Name, c.City, c.Service, c.MRR, boolInt(c.Active))
	if err != nil {
		return fmt.Errorf("inserting client: %w", mapInsertErr(err))
	}
	if c.ID, err = lastID(res); err != nil {
		return err
	}
	return nil
}

// Clients returns every client ordered by ID.
func (s *Store) Clients(ctx context.Context) ([]model.Client, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+clientCols+` FROM clients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Client returns one client.
func (s *Store) Client(ctx context.Context, id int64) (model.Client, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+clientCols+` FROM clients WHERE id = ?`, id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return c, fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	return c, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(r scanner) (model.Client, error) {
	var c model.Client
	var active int
	if err := r.Scan(&c.ID, &c.Name, &c.City, &c.Service, &c.MRR, &active); err != nil {
		return c, err
	}
	c.Active = active != 0
	return c, nil
}
