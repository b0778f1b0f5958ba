package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/inventory"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const itemColumns = `id, name, category, stock, unit, cost_per_unit, min_stock, created_at, updated_at`

func scanItem(s scanner) (*inventory.Item, error) {
	var item inventory.Item

	if err := s.Scan(
		&item.ID, &item.Name, &item.Category, &item.Stock, &item.Unit,
		&item.CostPerUnit, &item.MinStock, &item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &item, nil
}

func (s *Store) CreateItem(ctx context.Context, item *inventory.Item) error {
	query := `
		INSERT INTO inventory_items (name, category, stock, unit, cost_per_unit, min_stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		item.Name, item.Category, item.Stock, item.Unit, item.CostPerUnit, item.MinStock,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating inventory item: %w", err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, inventory.ErrNotFound
		}

		return nil, fmt.Errorf("getting inventory item: %w", err)
	}

	return item, nil
}

func (s *Store) UpdateItem(ctx context.Context, item *inventory.Item) error {
	query := `
		UPDATE inventory_items
		SET name = $2, category = $3, stock = $4, unit = $5, cost_per_unit = $6,
			min_stock = $7, updated_at = NOW()
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Category, item.Stock, item.Unit,
		item.CostPerUnit, item.MinStock,
	)
	if err != nil {
		return fmt.Errorf("updating inventory item: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return inventory.ErrNotFound
	}

	return nil
}

func (s *Store) ListItems(ctx context.Context) ([]*inventory.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing inventory items: %w", err)
	}
	defer rows.Close()

	var items []*inventory.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning inventory item: %w", err)
		}

		items = append(items, item)
	}

	return items, rows.Err()
}
