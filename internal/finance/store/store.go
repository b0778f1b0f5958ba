package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/fieldbook/internal/finance"
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

const paymentColumns = `id, job_id, event_id, amount, method, date, type, created_at`

func scanPayment(s scanner) (*finance.Payment, error) {
	var (
		p       finance.Payment
		typeStr string
	)

	if err := s.Scan(
		&p.ID, &p.JobID, &p.EventID, &p.Amount, &p.Method, &p.Date,
		&typeStr, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Type = finance.PaymentType(typeStr)

	return &p, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *finance.Payment) error {
	query := `
		INSERT INTO payments (job_id, event_id, amount, method, date, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.JobID, p.EventID, p.Amount, p.Method, p.Date, p.Type,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) ListPayments(ctx context.Context, filter finance.ListFilter) ([]*finance.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.JobID != nil {
		query += fmt.Sprintf(" AND job_id = $%d", argIdx)
		args = append(args, *filter.JobID)
		argIdx++
	}

	if filter.EventID != nil {
		query += fmt.Sprintf(" AND event_id = $%d", argIdx)
		args = append(args, *filter.EventID)
		argIdx++
	}

	query += " ORDER BY created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*finance.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	return payments, rows.Err()
}
