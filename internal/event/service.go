package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=event
type Repository interface {
	CreateEvent(ctx context.Context, ev *Event) error
	GetEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	UpdateEvent(ctx context.Context, ev *Event) error
	ListEvents(ctx context.Context, filter ListFilter) ([]*Event, error)
}

type ListFilter struct {
	Status   *Status
	ClientID *uuid.UUID
	// From/To select events whose [StartDate, EndDate] span intersects the range.
	From *time.Time
	To   *time.Time
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Title      string
	ClientID   uuid.UUID
	ClientName string
	StartDate  time.Time
	EndDate    time.Time
	Location   string
	Budget     int64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Event, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if params.ClientID == uuid.Nil {
		return nil, fmt.Errorf("%w: client is required", ErrInvalidInput)
	}

	if params.EndDate.Before(params.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	ev := &Event{
		Title:      strings.TrimSpace(params.Title),
		ClientID:   params.ClientID,
		ClientName: params.ClientName,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		Location:   params.Location,
		Budget:     params.Budget,
		Status:     StatusPlanning,
	}
	if err := s.repo.CreateEvent(ctx, ev); err != nil {
		return nil, err
	}

	return ev, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.repo.GetEvent(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Event, error) {
	return s.repo.ListEvents(ctx, filter)
}

// OnDate returns the events whose span covers the given date.
func (s *Service) OnDate(ctx context.Context, date time.Time) ([]*Event, error) {
	return s.repo.ListEvents(ctx, ListFilter{From: &date, To: &date})
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Event, error) {
	switch status {
	case StatusPlanning, StatusOngoing, StatusCompleted, StatusCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	return s.mutate(ctx, id, func(ev *Event) error {
		ev.Status = status
		return nil
	})
}

func (s *Service) AddTask(ctx context.Context, id uuid.UUID, title string, deadline time.Time) (*Event, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: task title is required", ErrInvalidInput)
	}

	return s.mutate(ctx, id, func(ev *Event) error {
		ev.Tasks = append(ev.Tasks, Task{
			ID:       uuid.New(),
			Title:    strings.TrimSpace(title),
			Deadline: deadline,
		})

		return nil
	})
}

func (s *Service) ToggleTask(ctx context.Context, id, taskID uuid.UUID) (*Event, error) {
	return s.mutate(ctx, id, func(ev *Event) error {
		for i := range ev.Tasks {
			if ev.Tasks[i].ID == taskID {
				ev.Tasks[i].Completed = !ev.Tasks[i].Completed
				return nil
			}
		}

		return fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	})
}

func (s *Service) AddHelper(ctx context.Context, id uuid.UUID, name string) (*Event, error) {
	return s.addToRoster(ctx, id, name, func(ev *Event) *[]string { return &ev.Helpers })
}

func (s *Service) RemoveHelper(ctx context.Context, id uuid.UUID, name string) (*Event, error) {
	return s.removeFromRoster(ctx, id, name, func(ev *Event) *[]string { return &ev.Helpers })
}

func (s *Service) AddSupplier(ctx context.Context, id uuid.UUID, name string) (*Event, error) {
	return s.addToRoster(ctx, id, name, func(ev *Event) *[]string { return &ev.Suppliers })
}

func (s *Service) RemoveSupplier(ctx context.Context, id uuid.UUID, name string) (*Event, error) {
	return s.removeFromRoster(ctx, id, name, func(ev *Event) *[]string { return &ev.Suppliers })
}

func (s *Service) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*Event, error) {
	return s.mutate(ctx, id, func(ev *Event) error {
		ev.Notes = notes
		return nil
	})
}

// addToRoster appends a free-text name to a helper/supplier roster. Rosters
// are not normalized entities; duplicates are rejected, order is preserved.
func (s *Service) addToRoster(ctx context.Context, id uuid.UUID, name string, roster func(*Event) *[]string) (*Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	return s.mutate(ctx, id, func(ev *Event) error {
		list := roster(ev)
		for _, existing := range *list {
			if strings.EqualFold(existing, name) {
				return fmt.Errorf("%w: %q already listed", ErrInvalidInput, name)
			}
		}

		*list = append(*list, name)

		return nil
	})
}

func (s *Service) removeFromRoster(ctx context.Context, id uuid.UUID, name string, roster func(*Event) *[]string) (*Event, error) {
	return s.mutate(ctx, id, func(ev *Event) error {
		list := roster(ev)
		for i, existing := range *list {
			if strings.EqualFold(existing, name) {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return nil
			}
		}

		return fmt.Errorf("%w: %q not on roster", ErrNotFound, name)
	})
}

func (s *Service) mutate(ctx context.Context, id uuid.UUID, fn func(*Event) error) (*Event, error) {
	ev, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(ev); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateEvent(ctx, ev); err != nil {
		return nil, err
	}

	return ev, nil
}
