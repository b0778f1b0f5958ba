package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/event"
	"github.com/MrJamesThe3rd/fieldbook/internal/material"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=booking
type Repository interface {
	CreateJob(ctx context.Context, job *Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*Job, error)
	UpdateJob(ctx context.Context, job *Job) error
	ListJobs(ctx context.Context, filter ListFilter) ([]*Job, error)
}

// ConflictChecker guards reschedules. A nil error means the slot is free;
// a schedule.ConflictError carries the overlapping jobs.
type ConflictChecker interface {
	Check(ctx context.Context, date time.Time, timeOfDay string, exclude uuid.UUID) error
}

// EventCreator persists the event produced by a job conversion. Satisfied by
// the event repository.
type EventCreator interface {
	CreateEvent(ctx context.Context, ev *event.Event) error
}

// MaterialConsumer deducts consumed materials from stock. Satisfied by the
// inventory service.
type MaterialConsumer interface {
	Consume(ctx context.Context, materialName string, qty int) (newStock int, ok bool, err error)
}

type ListFilter struct {
	Status   *Status
	ClientID *uuid.UUID
	Date     *time.Time
	From     *time.Time
	To       *time.Time
}

type Service struct {
	repo      Repository
	conflicts ConflictChecker
	events    EventCreator
	inventory MaterialConsumer
}

func NewService(repo Repository, conflicts ConflictChecker, events EventCreator, inventory MaterialConsumer) *Service {
	return &Service{repo: repo, conflicts: conflicts, events: events, inventory: inventory}
}

type CreateParams struct {
	ClientID   uuid.UUID
	ClientName string
	Service    string
	Date       time.Time
	TimeOfDay  string
	Location   string
	Amount     int64
	Notes      string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Job, error) {
	if params.ClientID == uuid.Nil {
		return nil, fmt.Errorf("%w: client is required", ErrInvalidInput)
	}

	if strings.TrimSpace(params.Service) == "" {
		return nil, fmt.Errorf("%w: service description is required", ErrInvalidInput)
	}

	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	if params.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	job := &Job{
		ClientID:   params.ClientID,
		ClientName: params.ClientName,
		Service:    strings.TrimSpace(params.Service),
		Date:       params.Date,
		TimeOfDay:  params.TimeOfDay,
		Location:   params.Location,
		Amount:     params.Amount,
		Notes:      params.Notes,
		Status:     StatusPending,
	}
	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Job, error) {
	return s.repo.GetJob(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Job, error) {
	return s.repo.ListJobs(ctx, filter)
}

// Transition applies an operator action to the job state machine.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, action Action) (*Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := Next(job.Status, action)
	if err != nil {
		return nil, err
	}

	job.Status = next
	if err := s.repo.UpdateJob(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

type CompleteParams struct {
	// Materials newly selected while closing out the job; consumed from stock.
	Materials []material.Material
	// Review overwrites the job notes when non-empty.
	Review string
}

// Complete finishes an in-progress job, optionally appending closing
// materials and overwriting the notes with a review.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, params CompleteParams) (*Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := Next(job.Status, ActionComplete)
	if err != nil {
		return nil, err
	}

	job.Status = next
	job.Materials = append(job.Materials, params.Materials...)
	job.Expenses += material.SumCost(params.Materials)

	if params.Review != "" {
		job.Notes = params.Review
	}

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		return nil, err
	}

	for _, m := range params.Materials {
		stock, ok, err := s.inventory.Consume(ctx, m.Name, m.Qty)
		if err != nil {
			return nil, fmt.Errorf("consuming %q: %w", m.Name, err)
		}

		if ok {
			slog.Info("stock consumed", "material", m.Name, "qty", m.Qty, "stock", stock)
		}
	}

	return job, nil
}

// Reschedule moves the job to a new date/time after the conflict detector
// clears the slot. A conflicting reschedule is rejected and the job left
// unchanged. Rescheduling a pending job also approves it.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, date time.Time, timeOfDay string) (*Job, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if job.Status.Terminal() {
		return nil, fmt.Errorf("%w: cannot reschedule a %s job", ErrInvalidTransition, job.Status)
	}

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := s.conflicts.Check(ctx, date, timeOfDay, id); err != nil {
		return nil, err
	}

	job.Date = date
	job.TimeOfDay = timeOfDay

	if job.Status == StatusPending {
		job.Status = StatusScheduled
	}

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// ConvertToEvent promotes a scheduled or in-progress job into a single-day
// event and closes the job as a linked historical record. One-way: there is
// no event-to-job conversion.
func (s *Service) ConvertToEvent(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if job.Status != StatusScheduled && job.Status != StatusInProgress {
		return nil, fmt.Errorf("%w: cannot convert a %s job", ErrInvalidTransition, job.Status)
	}

	materials := make([]material.Material, len(job.Materials))
	copy(materials, job.Materials)

	ev := &event.Event{
		Title:      fmt.Sprintf("%s - %s", job.Service, job.ClientName),
		ClientID:   job.ClientID,
		ClientName: job.ClientName,
		StartDate:  job.Date,
		EndDate:    job.Date,
		Location:   job.Location,
		Budget:     job.Amount,
		Status:     event.StatusPlanning,
		Tasks: []event.Task{{
			ID:       uuid.New(),
			Title:    job.Service,
			Deadline: job.Date,
		}},
		Materials: materials,
		Expenses:  material.SumCost(materials),
		TotalPaid: job.PaidAmount,
	}
	if err := s.events.CreateEvent(ctx, ev); err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	job.Status = StatusCancelled
	job.ConvertedToEventID = &ev.ID

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("closing converted job: %w", err)
	}

	return ev, nil
}
