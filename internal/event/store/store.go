package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/event"
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

const eventColumns = `
	id, title, client_id, client_name, start_date, end_date, location, budget,
	status, tasks, materials, expenses, total_paid, helpers, suppliers, notes,
	created_at, updated_at
`

func scanEvent(s scanner) (*event.Event, error) {
	var (
		ev        event.Event
		statusStr string

		tasksJSON, matsJSON, helpersJSON, suppliersJSON []byte
	)

	if err := s.Scan(
		&ev.ID, &ev.Title, &ev.ClientID, &ev.ClientName, &ev.StartDate, &ev.EndDate,
		&ev.Location, &ev.Budget, &statusStr, &tasksJSON, &matsJSON,
		&ev.Expenses, &ev.TotalPaid, &helpersJSON, &suppliersJSON, &ev.Notes,
		&ev.CreatedAt, &ev.UpdatedAt,
	); err != nil {
		return nil, err
	}

	ev.Status = event.Status(statusStr)

	for raw, dest := range map[*[]byte]any{
		&tasksJSON:     &ev.Tasks,
		&matsJSON:      &ev.Materials,
		&helpersJSON:   &ev.Helpers,
		&suppliersJSON: &ev.Suppliers,
	} {
		if err := json.Unmarshal(*raw, dest); err != nil {
			return nil, fmt.Errorf("decoding event lists: %w", err)
		}
	}

	return &ev, nil
}

func encodeLists(ev *event.Event) (tasks, mats, helpers, suppliers []byte, err error) {
	marshal := func(v any) []byte {
		if err != nil {
			return nil
		}

		var out []byte

		out, err = json.Marshal(v)

		return out
	}

	tasks = marshal(orEmpty(ev.Tasks))
	mats = marshal(orEmpty(ev.Materials))
	helpers = marshal(orEmpty(ev.Helpers))
	suppliers = marshal(orEmpty(ev.Suppliers))

	return tasks, mats, helpers, suppliers, err
}

func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}

	return list
}

func (s *Store) CreateEvent(ctx context.Context, ev *event.Event) error {
	tasks, mats, helpers, suppliers, err := encodeLists(ev)
	if err != nil {
		return fmt.Errorf("encoding event lists: %w", err)
	}

	query := `
		INSERT INTO events (title, client_id, client_name, start_date, end_date, location,
			budget, status, tasks, materials, expenses, total_paid, helpers, suppliers,
			notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
		RETURNING id, created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		ev.Title, ev.ClientID, ev.ClientName, ev.StartDate, ev.EndDate, ev.Location,
		ev.Budget, ev.Status, tasks, mats, ev.Expenses, ev.TotalPaid, helpers,
		suppliers, ev.Notes,
	).Scan(&ev.ID, &ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}

	return nil
}

func (s *Store) GetEvent(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	ev, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, event.ErrNotFound
		}

		return nil, fmt.Errorf("getting event: %w", err)
	}

	return ev, nil
}

func (s *Store) UpdateEvent(ctx context.Context, ev *event.Event) error {
	tasks, mats, helpers, suppliers, err := encodeLists(ev)
	if err != nil {
		return fmt.Errorf("encoding event lists: %w", err)
	}

	query := `
		UPDATE events
		SET title = $2, client_name = $3, start_date = $4, end_date = $5, location = $6,
			budget = $7, status = $8, tasks = $9, materials = $10, expenses = $11,
			total_paid = $12, helpers = $13, suppliers = $14, notes = $15,
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query,
		ev.ID, ev.Title, ev.ClientName, ev.StartDate, ev.EndDate, ev.Location,
		ev.Budget, ev.Status, tasks, mats, ev.Expenses, ev.TotalPaid, helpers,
		suppliers, ev.Notes,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return event.ErrNotFound
	}

	return nil
}

func (s *Store) ListEvents(ctx context.Context, filter event.ListFilter) ([]*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND client_id = $%d", argIdx)
		args = append(args, *filter.ClientID)
		argIdx++
	}

	// Range filters select events whose span intersects [From, To].
	if filter.From != nil {
		query += fmt.Sprintf(" AND end_date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND start_date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	query += " ORDER BY start_date, created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []*event.Event

	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}

		events = append(events, ev)
	}

	return events, rows.Err()
}
