package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/material"
)

var (
	ErrNotFound          = errors.New("job not found")
	ErrInvalidInput      = errors.New("invalid job input")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Status represents the lifecycle state of a job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether no transition leaves the status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Action is an explicit operator request against the job state machine.
type Action string

const (
	ActionApprove  Action = "approve"  // pending -> scheduled
	ActionStart    Action = "start"    // scheduled -> in_progress
	ActionComplete Action = "complete" // in_progress -> completed
	ActionDecline  Action = "decline"  // pending|scheduled -> cancelled
)

// transitions maps each action to its legal source states and the resulting
// state.
var transitions = map[Action]struct {
	from []Status
	to   Status
}{
	ActionApprove:  {from: []Status{StatusPending}, to: StatusScheduled},
	ActionStart:    {from: []Status{StatusScheduled}, to: StatusInProgress},
	ActionComplete: {from: []Status{StatusInProgress}, to: StatusCompleted},
	ActionDecline:  {from: []Status{StatusPending, StatusScheduled}, to: StatusCancelled},
}

// Next returns the status the action leads to from the current one, or
// ErrInvalidTransition when the action is not legal there.
func Next(current Status, action Action) (Status, error) {
	t, ok := transitions[action]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}

	for _, from := range t.from {
		if from == current {
			return t.to, nil
		}
	}

	return "", fmt.Errorf("%w: cannot %s a %s job", ErrInvalidTransition, action, current)
}

// Job is a single bookable engagement for one client.
type Job struct {
	ID         uuid.UUID
	ClientID   uuid.UUID
	ClientName string
	Service    string
	Date       time.Time
	TimeOfDay  string // "15:04"; free-form, skipped by conflict checks if unparseable
	Location   string
	Amount     int64 // agreed price, cents
	PaidAmount int64 // cumulative receipts, cents
	Expenses   int64 // cumulative expenses, cents
	Notes      string
	Materials  []material.Material
	Status     Status
	// ConvertedToEventID links a cancelled job to the event it became.
	ConvertedToEventID *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// Active reports whether the job occupies its calendar slot. Pending jobs are
// not yet commitments and cancelled jobs never were.
func (j *Job) Active() bool {
	return j.Status != StatusPending && j.Status != StatusCancelled
}
