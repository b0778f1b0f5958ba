package event

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/material"
)

var (
	ErrNotFound     = errors.New("event not found")
	ErrInvalidInput = errors.New("invalid event input")
)

// Status represents the lifecycle state of an event.
type Status string

const (
	StatusPlanning  Status = "planning"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Event is a multi-day engagement for one client. EndDate is never before
// StartDate; the event occupies every date of the span on the calendar.
type Event struct {
	ID         uuid.UUID
	Title      string
	ClientID   uuid.UUID
	ClientName string
	StartDate  time.Time
	EndDate    time.Time
	Location   string
	Budget     int64 // cents
	Status     Status
	Tasks      []Task
	Materials  []material.Material
	Expenses   int64 // cents, cumulative
	TotalPaid  int64 // cents, cumulative
	Helpers    []string
	Suppliers  []string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Task is a dated checklist entry on an event.
type Task struct {
	ID        uuid.UUID
	Title     string
	Deadline  time.Time
	Completed bool
}

// OccupiesDate reports whether the event span covers the given date. Used by
// calendar views only; events are not part of the time-conflict check.
func (e *Event) OccupiesDate(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(e.StartDate.Truncate(24*time.Hour)) && !d.After(e.EndDate.Truncate(24*time.Hour))
}
