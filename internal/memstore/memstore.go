// Package memstore is the default storage backend: a single in-memory
// aggregate guarding every entity collection behind one lock, so each engine
// operation commits as one indivisible update. Reads and writes exchange
// clones, never live pointers — a rejected operation can therefore never
// leak a half-mutated entity back into the store.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	"github.com/MrJamesThe3rd/fieldbook/internal/client"
	"github.com/MrJamesThe3rd/fieldbook/internal/event"
	"github.com/MrJamesThe3rd/fieldbook/internal/finance"
	"github.com/MrJamesThe3rd/fieldbook/internal/inventory"
	"github.com/MrJamesThe3rd/fieldbook/internal/material"
)

type Store struct {
	mu       sync.RWMutex
	clients  map[uuid.UUID]*client.Client
	jobs     map[uuid.UUID]*booking.Job
	events   map[uuid.UUID]*event.Event
	payments []*finance.Payment
	items    map[uuid.UUID]*inventory.Item
}

func New() *Store {
	return &Store{
		clients: make(map[uuid.UUID]*client.Client),
		jobs:    make(map[uuid.UUID]*booking.Job),
		events:  make(map[uuid.UUID]*event.Event),
		items:   make(map[uuid.UUID]*inventory.Item),
	}
}

// Clients

func (s *Store) CreateClient(_ context.Context, c *client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	s.clients[c.ID] = cloneClient(c)

	return nil
}

func (s *Store) GetClient(_ context.Context, id uuid.UUID) (*client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, client.ErrNotFound
	}

	return cloneClient(c), nil
}

func (s *Store) UpdateClient(_ context.Context, c *client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[c.ID]; !ok {
		return client.ErrNotFound
	}

	now := time.Now()
	c.UpdatedAt = &now
	s.clients[c.ID] = cloneClient(c)

	return nil
}

func (s *Store) ListClients(_ context.Context) ([]*client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clients := make([]*client.Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, cloneClient(c))
	}

	sort.Slice(clients, func(i, j int) bool { return clients[i].Name < clients[j].Name })

	return clients, nil
}

// Jobs

func (s *Store) CreateJob(_ context.Context, job *booking.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job.ID = uuid.New()
	job.CreatedAt = time.Now()
	s.jobs[job.ID] = cloneJob(job)

	return nil
}

func (s *Store) GetJob(_ context.Context, id uuid.UUID) (*booking.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, booking.ErrNotFound
	}

	return cloneJob(job), nil
}

func (s *Store) UpdateJob(_ context.Context, job *booking.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.ID]; !ok {
		return booking.ErrNotFound
	}

	now := time.Now()
	job.UpdatedAt = &now
	s.jobs[job.ID] = cloneJob(job)

	return nil
}

func (s *Store) ListJobs(_ context.Context, filter booking.ListFilter) ([]*booking.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var jobs []*booking.Job

	for _, job := range s.jobs {
		if filter.Status != nil && job.Status != *filter.Status {
			continue
		}

		if filter.ClientID != nil && job.ClientID != *filter.ClientID {
			continue
		}

		if filter.Date != nil && !sameDay(job.Date, *filter.Date) {
			continue
		}

		if filter.From != nil && job.Date.Before(dayStart(*filter.From)) {
			continue
		}

		if filter.To != nil && job.Date.After(dayEnd(*filter.To)) {
			continue
		}

		jobs = append(jobs, cloneJob(job))
	}

	sort.Slice(jobs, func(i, j int) bool {
		if !jobs[i].Date.Equal(jobs[j].Date) {
			return jobs[i].Date.Before(jobs[j].Date)
		}

		return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
	})

	return jobs, nil
}

// Events

func (s *Store) CreateEvent(_ context.Context, ev *event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev.ID = uuid.New()
	ev.CreatedAt = time.Now()
	s.events[ev.ID] = cloneEvent(ev)

	return nil
}

func (s *Store) GetEvent(_ context.Context, id uuid.UUID) (*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	if !ok {
		return nil, event.ErrNotFound
	}

	return cloneEvent(ev), nil
}

func (s *Store) UpdateEvent(_ context.Context, ev *event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[ev.ID]; !ok {
		return event.ErrNotFound
	}

	now := time.Now()
	ev.UpdatedAt = &now
	s.events[ev.ID] = cloneEvent(ev)

	return nil
}

func (s *Store) ListEvents(_ context.Context, filter event.ListFilter) ([]*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []*event.Event

	for _, ev := range s.events {
		if filter.Status != nil && ev.Status != *filter.Status {
			continue
		}

		if filter.ClientID != nil && ev.ClientID != *filter.ClientID {
			continue
		}

		// Range filters select events whose span intersects [From, To].
		if filter.From != nil && ev.EndDate.Before(dayStart(*filter.From)) {
			continue
		}

		if filter.To != nil && ev.StartDate.After(dayEnd(*filter.To)) {
			continue
		}

		events = append(events, cloneEvent(ev))
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].StartDate.Equal(events[j].StartDate) {
			return events[i].StartDate.Before(events[j].StartDate)
		}

		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})

	return events, nil
}

// Payments

func (s *Store) CreatePayment(_ context.Context, p *finance.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	s.payments = append(s.payments, clonePayment(p))

	return nil
}

func (s *Store) ListPayments(_ context.Context, filter finance.ListFilter) ([]*finance.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payments []*finance.Payment

	for _, p := range s.payments {
		if filter.JobID != nil && (p.JobID == nil || *p.JobID != *filter.JobID) {
			continue
		}

		if filter.EventID != nil && (p.EventID == nil || *p.EventID != *filter.EventID) {
			continue
		}

		payments = append(payments, clonePayment(p))
	}

	return payments, nil
}

// Inventory

func (s *Store) CreateItem(_ context.Context, item *inventory.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	s.items[item.ID] = cloneItem(item)

	return nil
}

func (s *Store) GetItem(_ context.Context, id uuid.UUID) (*inventory.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, inventory.ErrNotFound
	}

	return cloneItem(item), nil
}

func (s *Store) UpdateItem(_ context.Context, item *inventory.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; !ok {
		return inventory.ErrNotFound
	}

	now := time.Now()
	item.UpdatedAt = &now
	s.items[item.ID] = cloneItem(item)

	return nil
}

func (s *Store) ListItems(_ context.Context) ([]*inventory.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*inventory.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, cloneItem(item))
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	return items, nil
}

// Clone helpers

func cloneClient(c *client.Client) *client.Client {
	out := *c
	out.UpdatedAt = cloneTime(c.UpdatedAt)

	return &out
}

func cloneJob(job *booking.Job) *booking.Job {
	out := *job
	out.Materials = cloneMaterials(job.Materials)
	out.UpdatedAt = cloneTime(job.UpdatedAt)

	if job.ConvertedToEventID != nil {
		id := *job.ConvertedToEventID
		out.ConvertedToEventID = &id
	}

	return &out
}

func cloneEvent(ev *event.Event) *event.Event {
	out := *ev
	out.Tasks = append([]event.Task(nil), ev.Tasks...)
	out.Materials = cloneMaterials(ev.Materials)
	out.Helpers = append([]string(nil), ev.Helpers...)
	out.Suppliers = append([]string(nil), ev.Suppliers...)
	out.UpdatedAt = cloneTime(ev.UpdatedAt)

	return &out
}

func clonePayment(p *finance.Payment) *finance.Payment {
	out := *p

	if p.JobID != nil {
		id := *p.JobID
		out.JobID = &id
	}

	if p.EventID != nil {
		id := *p.EventID
		out.EventID = &id
	}

	return &out
}

func cloneItem(item *inventory.Item) *inventory.Item {
	out := *item
	out.UpdatedAt = cloneTime(item.UpdatedAt)

	return &out
}

func cloneMaterials(materials []material.Material) []material.Material {
	return append([]material.Material(nil), materials...)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	out := *t

	return &out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return dayStart(t).Add(24*time.Hour - time.Nanosecond)
}
