package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	"github.com/MrJamesThe3rd/fieldbook/internal/event"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	ListClients(ctx context.Context) ([]*Client, error)
}

// JobSource and EventSource feed the derived totals. Satisfied by the
// booking and event repositories.
type JobSource interface {
	ListJobs(ctx context.Context, filter booking.ListFilter) ([]*booking.Job, error)
}

type EventSource interface {
	ListEvents(ctx context.Context, filter event.ListFilter) ([]*event.Event, error)
}

type Service struct {
	repo   Repository
	jobs   JobSource
	events EventSource
}

func NewService(repo Repository, jobs JobSource, events EventSource) *Service {
	return &Service{repo: repo, jobs: jobs, events: events}
}

type CreateParams struct {
	Name     string
	Phone    string
	Email    string
	Location string
	Notes    string
}

func (s *Service) Add(ctx context.Context, params CreateParams) (*Client, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	c := &Client{
		Name:     strings.TrimSpace(params.Name),
		Phone:    params.Phone,
		Email:    params.Email,
		Location: params.Location,
		Notes:    params.Notes,
	}
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.ListClients(ctx)
}

func (s *Service) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*Client, error) {
	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Notes = notes
	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Summarize derives the client's running totals from their jobs and events.
// A converted job still counts as a booking, but its money is taken from the
// event it became: the job keeps its historical PaidAmount, the live figure
// is the event's TotalPaid.
func (s *Service) Summarize(ctx context.Context, id uuid.UUID) (*Summary, error) {
	if _, err := s.repo.GetClient(ctx, id); err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListJobs(ctx, booking.ListFilter{ClientID: &id})
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}

	events, err := s.events.ListEvents(ctx, event.ListFilter{ClientID: &id})
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	var summary Summary

	for _, job := range jobs {
		summary.TotalJobs++

		if job.ConvertedToEventID != nil {
			continue
		}

		summary.TotalSpent += job.PaidAmount
	}

	for _, ev := range events {
		summary.TotalSpent += ev.TotalPaid
	}

	return &summary, nil
}
