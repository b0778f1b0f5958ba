package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("client not found")
	ErrInvalidInput = errors.New("invalid client input")
)

// Client is a person or business the operator works for. Clients are never
// deleted; their running totals are derived on read, never stored.
type Client struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	Email     string
	Location  string
	Notes     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Summary carries the derived totals for a client.
type Summary struct {
	TotalJobs  int
	TotalSpent int64 // cents
}
