package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	"github.com/MrJamesThe3rd/fieldbook/internal/client"
	"github.com/MrJamesThe3rd/fieldbook/internal/event"
	"github.com/MrJamesThe3rd/fieldbook/internal/finance"
	"github.com/MrJamesThe3rd/fieldbook/internal/inventory"
	"github.com/MrJamesThe3rd/fieldbook/internal/material"
	"github.com/MrJamesThe3rd/fieldbook/internal/memstore"
)

func TestStore_Clients(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	c := &client.Client{Name: "Ayse Demir"}
	require.NoError(t, store.CreateClient(ctx, c))
	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	got, err := store.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ayse Demir", got.Name)

	got.Notes = "updated"
	require.NoError(t, store.UpdateClient(ctx, got))

	again, err := store.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", again.Notes)
	assert.NotNil(t, again.UpdatedAt)

	_, err = store.GetClient(ctx, uuid.New())
	assert.ErrorIs(t, err, client.ErrNotFound)

	err = store.UpdateClient(ctx, &client.Client{ID: uuid.New()})
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestStore_ListClients_SortedByName(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	for _, name := range []string{"Zeynep", "Ali", "Mehmet"} {
		require.NoError(t, store.CreateClient(ctx, &client.Client{Name: name}))
	}

	clients, err := store.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, "Ali", clients[0].Name)
	assert.Equal(t, "Mehmet", clients[1].Name)
	assert.Equal(t, "Zeynep", clients[2].Name)
}

func TestStore_ReadsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	job := &booking.Job{
		ClientID:  uuid.New(),
		Service:   "Fence repair",
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Status:    booking.StatusPending,
		Materials: []material.Material{{Name: "Nails", Qty: 100, Cost: 500}},
	}
	require.NoError(t, store.CreateJob(ctx, job))

	// Mutating a read copy must not touch the stored job.
	got, err := store.GetJob(ctx, job.ID)
	require.NoError(t, err)
	got.Status = booking.StatusCancelled
	got.Materials[0].Qty = 1

	fresh, err := store.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPending, fresh.Status)
	assert.Equal(t, 100, fresh.Materials[0].Qty)
}

func TestStore_ListJobs_Filters(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	clientID := uuid.New()
	day1 := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	mk := func(clientID uuid.UUID, date time.Time, status booking.Status) {
		t.Helper()
		require.NoError(t, store.CreateJob(ctx, &booking.Job{
			ClientID: clientID,
			Service:  "x",
			Date:     date,
			Status:   status,
		}))
	}

	mk(clientID, day1, booking.StatusScheduled)
	mk(clientID, day2, booking.StatusPending)
	mk(uuid.New(), day1, booking.StatusScheduled)

	byClient, err := store.ListJobs(ctx, booking.ListFilter{ClientID: &clientID})
	require.NoError(t, err)
	assert.Len(t, byClient, 2)

	scheduled := booking.StatusScheduled
	byStatus, err := store.ListJobs(ctx, booking.ListFilter{Status: &scheduled})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byDate, err := store.ListJobs(ctx, booking.ListFilter{Date: &day2})
	require.NoError(t, err)
	assert.Len(t, byDate, 1)

	ranged, err := store.ListJobs(ctx, booking.ListFilter{From: &day1, To: &day1})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)
}

func TestStore_ListEvents_SpanIntersection(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	ev := &event.Event{
		Title:     "Wedding",
		ClientID:  uuid.New(),
		StartDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC),
		Status:    event.StatusPlanning,
	}
	require.NoError(t, store.CreateEvent(ctx, ev))

	mid := time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)
	onDate, err := store.ListEvents(ctx, event.ListFilter{From: &mid, To: &mid})
	require.NoError(t, err)
	assert.Len(t, onDate, 1)

	after := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	none, err := store.ListEvents(ctx, event.ListFilter{From: &after, To: &after})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_Payments(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	jobID := uuid.New()
	eventID := uuid.New()

	require.NoError(t, store.CreatePayment(ctx, &finance.Payment{JobID: &jobID, Amount: 1000}))
	require.NoError(t, store.CreatePayment(ctx, &finance.Payment{JobID: &jobID, Amount: 2000}))
	require.NoError(t, store.CreatePayment(ctx, &finance.Payment{EventID: &eventID, Amount: 3000}))

	all, err := store.ListPayments(ctx, finance.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byJob, err := store.ListPayments(ctx, finance.ListFilter{JobID: &jobID})
	require.NoError(t, err)
	assert.Len(t, byJob, 2)

	byEvent, err := store.ListPayments(ctx, finance.ListFilter{EventID: &eventID})
	require.NoError(t, err)
	assert.Len(t, byEvent, 1)
	assert.Equal(t, int64(3000), byEvent[0].Amount)
}

func TestStore_Items(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	item := &inventory.Item{Name: "Paint", Stock: 10}
	require.NoError(t, store.CreateItem(ctx, item))

	item.Stock = 6
	require.NoError(t, store.UpdateItem(ctx, item))

	got, err := store.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Stock)

	_, err = store.GetItem(ctx, uuid.New())
	assert.ErrorIs(t, err, inventory.ErrNotFound)
}
