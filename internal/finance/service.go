package finance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	"github.com/MrJamesThe3rd/fieldbook/internal/event"
	"github.com/MrJamesThe3rd/fieldbook/internal/material"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=finance
type Repository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	ListPayments(ctx context.Context, filter ListFilter) ([]*Payment, error)
}

// JobStore is the slice of the booking repository reconciliation needs.
type JobStore interface {
	GetJob(ctx context.Context, id uuid.UUID) (*booking.Job, error)
	UpdateJob(ctx context.Context, job *booking.Job) error
}

// EventStore is the slice of the event repository reconciliation needs.
type EventStore interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*event.Event, error)
	UpdateEvent(ctx context.Context, ev *event.Event) error
}

// Ledger is the stock side of material reconciliation.
type Ledger interface {
	Consume(ctx context.Context, materialName string, qty int) (newStock int, ok bool, err error)
	Restore(ctx context.Context, materialName string, qty int) (newStock int, ok bool, err error)
}

type ListFilter struct {
	JobID   *uuid.UUID
	EventID *uuid.UUID
}

// Options select the stricter behaviors the reference flow leaves off.
type Options struct {
	// StrictPayments rejects payments above the outstanding balance instead
	// of letting paid totals run past the agreed amount.
	StrictPayments bool
	// RestoreOnReduction puts stock back when a material selection shrinks.
	// Off by default: the reference flow only ever consumes positive deltas.
	RestoreOnReduction bool
}

type Service struct {
	repo      Repository
	jobs      JobStore
	events    EventStore
	inventory Ledger
	opts      Options
}

func NewService(repo Repository, jobs JobStore, events EventStore, inventory Ledger, opts Options) *Service {
	return &Service{repo: repo, jobs: jobs, events: events, inventory: inventory, opts: opts}
}

type PaymentParams struct {
	JobID   *uuid.UUID
	EventID *uuid.UUID
	Amount  int64
	Method  string
	Date    time.Time
}

// RecordPayment appends a receipt to a job or event and bumps its cumulative
// paid figure. The receipt is typed "full" when it clears the balance
// outstanding at the moment it is recorded, else "partial".
func (s *Service) RecordPayment(ctx context.Context, params PaymentParams) (*Payment, error) {
	if (params.JobID == nil) == (params.EventID == nil) {
		return nil, fmt.Errorf("%w: exactly one of job or event must be set", ErrInvalidInput)
	}

	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	payment := &Payment{
		JobID:   params.JobID,
		EventID: params.EventID,
		Amount:  params.Amount,
		Method:  params.Method,
		Date:    date,
	}

	if params.JobID != nil {
		job, err := s.jobs.GetJob(ctx, *params.JobID)
		if err != nil {
			return nil, err
		}

		payment.Type, err = s.classify(params.Amount, JobPending(job))
		if err != nil {
			return nil, err
		}

		if err := s.repo.CreatePayment(ctx, payment); err != nil {
			return nil, err
		}

		job.PaidAmount += params.Amount

		if err := s.jobs.UpdateJob(ctx, job); err != nil {
			return nil, fmt.Errorf("updating paid amount: %w", err)
		}

		return payment, nil
	}

	ev, err := s.events.GetEvent(ctx, *params.EventID)
	if err != nil {
		return nil, err
	}

	payment.Type, err = s.classify(params.Amount, EventPending(ev))
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	ev.TotalPaid += params.Amount

	if err := s.events.UpdateEvent(ctx, ev); err != nil {
		return nil, fmt.Errorf("updating paid total: %w", err)
	}

	return payment, nil
}

func (s *Service) classify(amount, pending int64) (PaymentType, error) {
	if s.opts.StrictPayments && amount > pending {
		return "", fmt.Errorf("%w: payment of %d exceeds outstanding balance of %d", ErrInvalidInput, amount, pending)
	}

	if amount >= pending {
		return PaymentFull, nil
	}

	return PaymentPartial, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, filter)
}

// RecordExpense adds to the target's cumulative expenses accumulator.
// Derived profit and remaining-budget figures pick it up on read.
func (s *Service) RecordExpense(ctx context.Context, targetID uuid.UUID, description string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: expense amount must be positive", ErrInvalidInput)
	}

	if err := s.withTarget(ctx, targetID, func(job *booking.Job, ev *event.Event) {
		if job != nil {
			job.Expenses += amount
		} else {
			ev.Expenses += amount
		}
	}); err != nil {
		return err
	}

	slog.Info("expense recorded", "target", targetID, "description", description, "amount", amount)

	return nil
}

// AddMaterials reconciles the incoming selection against the target's
// current material list: same-named lines are replaced, new names appended,
// and only the positive quantity delta per name is consumed from stock. The
// expenses accumulator moves by the cost delta of the merge. Reductions
// restore stock only when Options.RestoreOnReduction is set.
func (s *Service) AddMaterials(ctx context.Context, targetID uuid.UUID, materials []material.Material) error {
	for _, m := range materials {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("%w: material name is required", ErrInvalidInput)
		}

		if m.Qty <= 0 {
			return fmt.Errorf("%w: material quantity must be positive", ErrInvalidInput)
		}
	}

	var current, merged []material.Material

	if err := s.withTarget(ctx, targetID, func(job *booking.Job, ev *event.Event) {
		if job != nil {
			current = job.Materials
			merged = material.Merge(current, materials)
			job.Materials = merged
			job.Expenses += material.SumCost(merged) - material.SumCost(current)
		} else {
			current = ev.Materials
			merged = material.Merge(current, materials)
			ev.Materials = merged
			ev.Expenses += material.SumCost(merged) - material.SumCost(current)
		}
	}); err != nil {
		return err
	}

	for name, delta := range material.Deltas(current, merged) {
		switch {
		case delta > 0:
			if _, _, err := s.inventory.Consume(ctx, name, delta); err != nil {
				return fmt.Errorf("consuming %q: %w", name, err)
			}
		case s.opts.RestoreOnReduction:
			if _, _, err := s.inventory.Restore(ctx, name, -delta); err != nil {
				return fmt.Errorf("restoring %q: %w", name, err)
			}
		}
	}

	return nil
}

// withTarget resolves targetID as a job first, then as an event, applies the
// mutation and persists it. Exactly one of the callback arguments is non-nil.
func (s *Service) withTarget(ctx context.Context, targetID uuid.UUID, fn func(*booking.Job, *event.Event)) error {
	job, err := s.jobs.GetJob(ctx, targetID)
	if err == nil {
		fn(job, nil)
		return s.jobs.UpdateJob(ctx, job)
	}

	ev, evErr := s.events.GetEvent(ctx, targetID)
	if evErr != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, targetID)
	}

	fn(nil, ev)

	return s.events.UpdateEvent(ctx, ev)
}
