// Package database opens the shared connection pool and bootstraps the
// schema at startup.
//
// Stores issue single-row statements without a wrapping transaction.
// Cross-aggregate flows (a payment and its paid total, completion and stock,
// conversion and the job close) write sequentially, so a failure mid-sequence
// leaves the earlier writes applied.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func New(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// schema is idempotent; a single-operator deployment runs it at every boot
// instead of carrying a migration tool.
const schema = `
CREATE TABLE IF NOT EXISTS clients (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	client_id UUID NOT NULL REFERENCES clients(id),
	client_name TEXT NOT NULL DEFAULT '',
	service TEXT NOT NULL,
	date DATE NOT NULL,
	time_of_day TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	amount BIGINT NOT NULL,
	paid_amount BIGINT NOT NULL DEFAULT 0,
	expenses BIGINT NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT '',
	materials JSONB NOT NULL DEFAULT '[]',
	status TEXT NOT NULL,
	converted_to_event_id UUID,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS jobs_date_idx ON jobs(date);
CREATE INDEX IF NOT EXISTS jobs_client_idx ON jobs(client_id);

CREATE TABLE IF NOT EXISTS events (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	title TEXT NOT NULL,
	client_id UUID NOT NULL REFERENCES clients(id),
	client_name TEXT NOT NULL DEFAULT '',
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	budget BIGINT NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	tasks JSONB NOT NULL DEFAULT '[]',
	materials JSONB NOT NULL DEFAULT '[]',
	expenses BIGINT NOT NULL DEFAULT 0,
	total_paid BIGINT NOT NULL DEFAULT 0,
	helpers JSONB NOT NULL DEFAULT '[]',
	suppliers JSONB NOT NULL DEFAULT '[]',
	notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ,
	CHECK (end_date >= start_date)
);

CREATE INDEX IF NOT EXISTS events_client_idx ON events(client_id);

CREATE TABLE IF NOT EXISTS payments (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	job_id UUID REFERENCES jobs(id),
	event_id UUID REFERENCES events(id),
	amount BIGINT NOT NULL,
	method TEXT NOT NULL DEFAULT '',
	date TIMESTAMPTZ NOT NULL,
	type TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CHECK ((job_id IS NULL) <> (event_id IS NULL))
);

CREATE TABLE IF NOT EXISTS inventory_items (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
	unit TEXT NOT NULL DEFAULT '',
	cost_per_unit BIGINT NOT NULL DEFAULT 0,
	min_stock INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ
);
`

// EnsureSchema creates any missing tables and indexes.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}

	return nil
}
