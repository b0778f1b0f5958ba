package finance

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	"github.com/MrJamesThe3rd/fieldbook/internal/event"
)

var (
	ErrNotFound     = errors.New("payment target not found")
	ErrInvalidInput = errors.New("invalid payment input")
)

// PaymentType records whether a payment cleared the outstanding balance at
// the moment it was recorded.
type PaymentType string

const (
	PaymentFull    PaymentType = "full"
	PaymentPartial PaymentType = "partial"
)

// Payment is an immutable receipt tagged with exactly one of JobID or
// EventID. Receipts are append-only; they are never edited or deleted.
type Payment struct {
	ID        uuid.UUID
	JobID     *uuid.UUID
	EventID   *uuid.UUID
	Amount    int64 // cents
	Method    string
	Date      time.Time
	Type      PaymentType
	CreatedAt time.Time
}

// Derived figures are computed on read, never stored, so they cannot drift
// from the amounts and accumulators they are built from.

// JobPending is the outstanding balance on a job.
func JobPending(j *booking.Job) int64 {
	return j.Amount - j.PaidAmount
}

// EventPending is the outstanding balance on an event's budget.
func EventPending(e *event.Event) int64 {
	return e.Budget - e.TotalPaid
}

// Profit is receipts minus expenses for an event.
func Profit(e *event.Event) int64 {
	return e.TotalPaid - e.Expenses
}

// RemainingBudget is the event budget left after expenses.
func RemainingBudget(e *event.Event) int64 {
	return e.Budget - e.Expenses
}

// JobProfit is receipts minus expenses for a job.
func JobProfit(j *booking.Job) int64 {
	return j.PaidAmount - j.Expenses
}
