package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	"github.com/MrJamesThe3rd/fieldbook/internal/event"
	"github.com/MrJamesThe3rd/fieldbook/internal/material"
	"github.com/MrJamesThe3rd/fieldbook/internal/schedule"
)

type mocks struct {
	repo      *booking.MockRepository
	conflicts *booking.MockConflictChecker
	events    *booking.MockEventCreator
	inventory *booking.MockMaterialConsumer
}

func newService(t *testing.T) (*booking.Service, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		repo:      booking.NewMockRepository(ctrl),
		conflicts: booking.NewMockConflictChecker(ctrl),
		events:    booking.NewMockEventCreator(ctrl),
		inventory: booking.NewMockMaterialConsumer(ctrl),
	}

	return booking.NewService(m.repo, m.conflicts, m.events, m.inventory), m
}

func TestService_Create(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	type args struct {
		params booking.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: booking.CreateParams{
					ClientID:   uuid.New(),
					ClientName: "Ayse Demir",
					Service:    "Garden maintenance",
					Date:       date,
					TimeOfDay:  "10:00",
					Amount:     50000,
				},
			},
			setupMock: func(m mocks) {
				m.repo.EXPECT().
					CreateJob(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, job *booking.Job) error {
						job.ID = uuid.New()
						job.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "MissingClient",
			args: args{
				params: booking.CreateParams{Service: "Garden maintenance", Date: date, Amount: 50000},
			},
			wantErr: booking.ErrInvalidInput,
		},
		{
			name: "MissingService",
			args: args{
				params: booking.CreateParams{ClientID: uuid.New(), Date: date, Amount: 50000},
			},
			wantErr: booking.ErrInvalidInput,
		},
		{
			name: "NonPositiveAmount",
			args: args{
				params: booking.CreateParams{ClientID: uuid.New(), Service: "Garden maintenance", Date: date},
			},
			wantErr: booking.ErrInvalidInput,
		},
		{
			name: "MissingDate",
			args: args{
				params: booking.CreateParams{ClientID: uuid.New(), Service: "Garden maintenance", Amount: 50000},
			},
			wantErr: booking.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, booking.StatusPending, got.Status)
		})
	}
}

func TestService_Transition(t *testing.T) {
	type testCase struct {
		name       string
		current    booking.Status
		action     booking.Action
		want       booking.Status
		wantErr    error
		wantUpdate bool
	}

	tests := []testCase{
		{name: "Approve", current: booking.StatusPending, action: booking.ActionApprove, want: booking.StatusScheduled, wantUpdate: true},
		{name: "Start", current: booking.StatusScheduled, action: booking.ActionStart, want: booking.StatusInProgress, wantUpdate: true},
		{name: "DeclineScheduled", current: booking.StatusScheduled, action: booking.ActionDecline, want: booking.StatusCancelled, wantUpdate: true},
		{name: "StartFromPending", current: booking.StatusPending, action: booking.ActionStart, wantErr: booking.ErrInvalidTransition},
		{name: "ApproveCompleted", current: booking.StatusCompleted, action: booking.ActionApprove, wantErr: booking.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)

			id := uuid.New()
			m.repo.EXPECT().
				GetJob(gomock.Any(), id).
				Return(&booking.Job{ID: id, Status: tt.current}, nil)

			if tt.wantUpdate {
				m.repo.EXPECT().
					UpdateJob(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, job *booking.Job) error {
						assert.Equal(t, tt.want, job.Status)
						return nil
					})
			}

			got, err := svc.Transition(context.Background(), id, tt.action)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestService_Complete(t *testing.T) {
	svc, m := newService(t)

	id := uuid.New()
	job := &booking.Job{
		ID:       id,
		Status:   booking.StatusInProgress,
		Notes:    "initial notes",
		Expenses: 500,
		Materials: []material.Material{
			{Name: "Rope", Qty: 1, Cost: 500},
		},
	}

	m.repo.EXPECT().GetJob(gomock.Any(), id).Return(job, nil)
	m.repo.EXPECT().UpdateJob(gomock.Any(), gomock.Any()).Return(nil)
	m.inventory.EXPECT().Consume(gomock.Any(), "Paint", 4).Return(6, true, nil)

	got, err := svc.Complete(context.Background(), id, booking.CompleteParams{
		Materials: []material.Material{{Name: "Paint", Qty: 4, Cost: 800}},
		Review:    "client happy, gate latch still loose",
	})
	require.NoError(t, err)

	assert.Equal(t, booking.StatusCompleted, got.Status)
	assert.Len(t, got.Materials, 2)
	assert.Equal(t, "Paint", got.Materials[1].Name)
	assert.Equal(t, int64(1300), got.Expenses)
	assert.Equal(t, "client happy, gate latch still loose", got.Notes)
}

func TestService_Complete_NotInProgress(t *testing.T) {
	svc, m := newService(t)

	id := uuid.New()
	m.repo.EXPECT().
		GetJob(gomock.Any(), id).
		Return(&booking.Job{ID: id, Status: booking.StatusScheduled}, nil)

	got, err := svc.Complete(context.Background(), id, booking.CompleteParams{})
	assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	assert.Nil(t, got)
}

func TestService_Complete_EmptyReviewKeepsNotes(t *testing.T) {
	svc, m := newService(t)

	id := uuid.New()
	m.repo.EXPECT().
		GetJob(gomock.Any(), id).
		Return(&booking.Job{ID: id, Status: booking.StatusInProgress, Notes: "original"}, nil)
	m.repo.EXPECT().UpdateJob(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Complete(context.Background(), id, booking.CompleteParams{})
	require.NoError(t, err)
	assert.Equal(t, "original", got.Notes)
}

func TestService_Reschedule(t *testing.T) {
	oldDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	newDate := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		svc, m := newService(t)

		id := uuid.New()
		m.repo.EXPECT().
			GetJob(gomock.Any(), id).
			Return(&booking.Job{ID: id, Status: booking.StatusScheduled, Date: oldDate, TimeOfDay: "10:00"}, nil)
		m.conflicts.EXPECT().
			Check(gomock.Any(), newDate, "14:00", id).
			Return(nil)
		m.repo.EXPECT().UpdateJob(gomock.Any(), gomock.Any()).Return(nil)

		got, err := svc.Reschedule(context.Background(), id, newDate, "14:00")
		require.NoError(t, err)
		assert.Equal(t, newDate, got.Date)
		assert.Equal(t, "14:00", got.TimeOfDay)
		assert.Equal(t, booking.StatusScheduled, got.Status)
	})

	t.Run("ConflictRejected", func(t *testing.T) {
		svc, m := newService(t)

		id := uuid.New()
		m.repo.EXPECT().
			GetJob(gomock.Any(), id).
			Return(&booking.Job{ID: id, Status: booking.StatusScheduled, Date: oldDate, TimeOfDay: "10:00"}, nil)
		m.conflicts.EXPECT().
			Check(gomock.Any(), newDate, "14:00", id).
			Return(&schedule.ConflictError{Date: newDate, TimeOfDay: "14:00"})

		got, err := svc.Reschedule(context.Background(), id, newDate, "14:00")
		assert.Nil(t, got)

		var conflict *schedule.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, newDate, conflict.Date)
	})

	t.Run("PendingAutoApproves", func(t *testing.T) {
		svc, m := newService(t)

		id := uuid.New()
		m.repo.EXPECT().
			GetJob(gomock.Any(), id).
			Return(&booking.Job{ID: id, Status: booking.StatusPending, Date: oldDate}, nil)
		m.conflicts.EXPECT().
			Check(gomock.Any(), newDate, "09:00", id).
			Return(nil)
		m.repo.EXPECT().UpdateJob(gomock.Any(), gomock.Any()).Return(nil)

		got, err := svc.Reschedule(context.Background(), id, newDate, "09:00")
		require.NoError(t, err)
		assert.Equal(t, booking.StatusScheduled, got.Status)
	})

	t.Run("TerminalRejected", func(t *testing.T) {
		svc, m := newService(t)

		id := uuid.New()
		m.repo.EXPECT().
			GetJob(gomock.Any(), id).
			Return(&booking.Job{ID: id, Status: booking.StatusCancelled, Date: oldDate}, nil)

		_, err := svc.Reschedule(context.Background(), id, newDate, "09:00")
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})
}

func TestService_ConvertToEvent(t *testing.T) {
	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	svc, m := newService(t)

	id := uuid.New()
	clientID := uuid.New()
	job := &booking.Job{
		ID:         id,
		ClientID:   clientID,
		ClientName: "Ayse Demir",
		Service:    "Terrace renovation",
		Date:       date,
		TimeOfDay:  "10:00",
		Location:   "Kadikoy",
		Amount:     250000,
		PaidAmount: 100000,
		Status:     booking.StatusScheduled,
		Materials: []material.Material{
			{Name: "Tiles", Qty: 40, Cost: 30000},
			{Name: "Grout", Qty: 5, Cost: 4000},
		},
	}

	m.repo.EXPECT().GetJob(gomock.Any(), id).Return(job, nil)
	m.events.EXPECT().
		CreateEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev *event.Event) error {
			ev.ID = uuid.New()
			return nil
		})
	m.repo.EXPECT().
		UpdateJob(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *booking.Job) error {
			assert.Equal(t, booking.StatusCancelled, updated.Status)
			require.NotNil(t, updated.ConvertedToEventID)
			return nil
		})

	ev, err := svc.ConvertToEvent(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "Terrace renovation - Ayse Demir", ev.Title)
	assert.Equal(t, clientID, ev.ClientID)
	assert.Equal(t, date, ev.StartDate)
	assert.Equal(t, date, ev.EndDate)
	assert.Equal(t, int64(250000), ev.Budget)
	assert.Equal(t, event.StatusPlanning, ev.Status)
	assert.Equal(t, int64(34000), ev.Expenses)
	assert.Equal(t, int64(100000), ev.TotalPaid)
	assert.Len(t, ev.Materials, 2)

	require.Len(t, ev.Tasks, 1)
	assert.Equal(t, "Terrace renovation", ev.Tasks[0].Title)
	assert.Equal(t, date, ev.Tasks[0].Deadline)
}

func TestService_ConvertToEvent_WrongStatus(t *testing.T) {
	for _, status := range []booking.Status{
		booking.StatusPending,
		booking.StatusCompleted,
		booking.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			svc, m := newService(t)

			id := uuid.New()
			m.repo.EXPECT().
				GetJob(gomock.Any(), id).
				Return(&booking.Job{ID: id, Status: status}, nil)

			_, err := svc.ConvertToEvent(context.Background(), id)
			assert.ErrorIs(t, err, booking.ErrInvalidTransition)
		})
	}
}

func TestService_ConvertToEvent_EventCreateFails(t *testing.T) {
	svc, m := newService(t)

	id := uuid.New()
	m.repo.EXPECT().
		GetJob(gomock.Any(), id).
		Return(&booking.Job{ID: id, Status: booking.StatusScheduled}, nil)
	m.events.EXPECT().
		CreateEvent(gomock.Any(), gomock.Any()).
		Return(errors.New("db error"))

	_, err := svc.ConvertToEvent(context.Background(), id)
	assert.Error(t, err)
}
