package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	"github.com/MrJamesThe3rd/fieldbook/internal/material"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const jobColumns = `
	id, client_id, client_name, service, date, time_of_day, location,
	amount, paid_amount, expenses, notes, materials, status,
	converted_to_event_id, created_at, updated_at
`

func scanJob(s scanner) (*booking.Job, error) {
	var (
		job       booking.Job
		statusStr string
		matsJSON  []byte
	)

	if err := s.Scan(
		&job.ID, &job.ClientID, &job.ClientName, &job.Service, &job.Date,
		&job.TimeOfDay, &job.Location, &job.Amount, &job.PaidAmount,
		&job.Expenses, &job.Notes, &matsJSON, &statusStr,
		&job.ConvertedToEventID, &job.CreatedAt, &job.UpdatedAt,
	); err != nil {
		return nil, err
	}

	job.Status = booking.Status(statusStr)

	if err := json.Unmarshal(matsJSON, &job.Materials); err != nil {
		return nil, fmt.Errorf("decoding materials: %w", err)
	}

	return &job, nil
}

func encodeMaterials(materials []material.Material) ([]byte, error) {
	if materials == nil {
		materials = []material.Material{}
	}

	return json.Marshal(materials)
}

func (s *Store) CreateJob(ctx context.Context, job *booking.Job) error {
	mats, err := encodeMaterials(job.Materials)
	if err != nil {
		return fmt.Errorf("encoding materials: %w", err)
	}

	query := `
		INSERT INTO jobs (client_id, client_name, service, date, time_of_day, location,
			amount, paid_amount, expenses, notes, materials, status, converted_to_event_id,
			created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING id, created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		job.ClientID, job.ClientName, job.Service, job.Date, job.TimeOfDay,
		job.Location, job.Amount, job.PaidAmount, job.Expenses, job.Notes,
		mats, job.Status, job.ConvertedToEventID,
	).Scan(&job.ID, &job.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating job: %w", err)
	}

	return nil
}

func (s *Store) GetJob(ctx context.Context, id uuid.UUID) (*booking.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, booking.ErrNotFound
		}

		return nil, fmt.Errorf("getting job: %w", err)
	}

	return job, nil
}

func (s *Store) UpdateJob(ctx context.Context, job *booking.Job) error {
	mats, err := encodeMaterials(job.Materials)
	if err != nil {
		return fmt.Errorf("encoding materials: %w", err)
	}

	query := `
		UPDATE jobs
		SET client_name = $2, service = $3, date = $4, time_of_day = $5, location = $6,
			amount = $7, paid_amount = $8, expenses = $9, notes = $10, materials = $11,
			status = $12, converted_to_event_id = $13, updated_at = NOW()
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query,
		job.ID, job.ClientName, job.Service, job.Date, job.TimeOfDay, job.Location,
		job.Amount, job.PaidAmount, job.Expenses, job.Notes, mats, job.Status,
		job.ConvertedToEventID,
	)
	if err != nil {
		return fmt.Errorf("updating job: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return booking.ErrNotFound
	}

	return nil
}

func (s *Store) ListJobs(ctx context.Context, filter booking.ListFilter) ([]*booking.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`

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

	if filter.Date != nil {
		query += fmt.Sprintf(" AND date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	query += " ORDER BY date, created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*booking.Job

	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}

		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}
