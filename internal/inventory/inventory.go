package inventory

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("inventory item not found")
	ErrInvalidInput = errors.New("invalid inventory input")
)

// Item is a stocked material definition. Stock is the sole source of truth
// for availability and never goes below zero.
type Item struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Stock       int
	Unit        string
	CostPerUnit int64 // cents
	MinStock    int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// LowStock reports whether the item is at or below its reorder threshold.
func (i *Item) LowStock() bool {
	return i.Stock <= i.MinStock
}
