package client_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	"github.com/MrJamesThe3rd/fieldbook/internal/client"
	"github.com/MrJamesThe3rd/fieldbook/internal/event"
)

func TestService_Add(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := client.NewMockRepository(ctrl)
		repo.EXPECT().
			CreateClient(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *client.Client) error {
				assert.Equal(t, "Ayse Demir", c.Name)
				c.ID = uuid.New()
				return nil
			})

		svc := client.NewService(repo, nil, nil)
		got, err := svc.Add(context.Background(), client.CreateParams{Name: "  Ayse Demir  ", Phone: "+90 555 000 0000"})
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
	})

	t.Run("EmptyName", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := client.NewMockRepository(ctrl)
		svc := client.NewService(repo, nil, nil)

		_, err := svc.Add(context.Background(), client.CreateParams{Name: "   "})
		assert.ErrorIs(t, err, client.ErrInvalidInput)
	})
}

func TestService_UpdateNotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().
		GetClient(gomock.Any(), id).
		Return(&client.Client{ID: id, Notes: "old"}, nil)
	repo.EXPECT().UpdateClient(gomock.Any(), gomock.Any()).Return(nil)

	svc := client.NewService(repo, nil, nil)
	got, err := svc.UpdateNotes(context.Background(), id, "prefers morning visits")
	require.NoError(t, err)
	assert.Equal(t, "prefers morning visits", got.Notes)
}

func TestService_Summarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	convertedEventID := uuid.New()

	repo := client.NewMockRepository(ctrl)
	jobs := client.NewMockJobSource(ctrl)
	events := client.NewMockEventSource(ctrl)

	repo.EXPECT().GetClient(gomock.Any(), id).Return(&client.Client{ID: id}, nil)
	jobs.EXPECT().
		ListJobs(gomock.Any(), gomock.Any()).
		Return([]*booking.Job{
			{ID: uuid.New(), PaidAmount: 2000, Status: booking.StatusCompleted},
			{ID: uuid.New(), PaidAmount: 1000, Status: booking.StatusScheduled},
			// Converted: counts as a booking, but its money is taken from
			// the event it became, not the stale PaidAmount.
			{ID: uuid.New(), PaidAmount: 1500, Status: booking.StatusCancelled, ConvertedToEventID: &convertedEventID},
		}, nil)
	events.EXPECT().
		ListEvents(gomock.Any(), gomock.Any()).
		Return([]*event.Event{
			{ID: convertedEventID, TotalPaid: 4000},
		}, nil)

	svc := client.NewService(repo, jobs, events)
	summary, err := svc.Summarize(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalJobs)
	assert.Equal(t, int64(7000), summary.TotalSpent)
}

func TestService_Summarize_UnknownClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().GetClient(gomock.Any(), id).Return(nil, client.ErrNotFound)

	svc := client.NewService(repo, nil, nil)
	_, err := svc.Summarize(context.Background(), id)
	assert.ErrorIs(t, err, client.ErrNotFound)
}
