package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fieldbook/internal/event"
)

func TestService_Create(t *testing.T) {
	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    event.CreateParams
		setupMock func(m *event.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: event.CreateParams{
				Title:     "Garden party",
				ClientID:  uuid.New(),
				StartDate: start,
				EndDate:   end,
				Budget:    100000,
			},
			setupMock: func(m *event.MockRepository) {
				m.EXPECT().
					CreateEvent(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, ev *event.Event) error {
						ev.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "EmptyTitle",
			params:  event.CreateParams{ClientID: uuid.New(), StartDate: start, EndDate: end},
			wantErr: true,
		},
		{
			name:    "MissingClient",
			params:  event.CreateParams{Title: "Garden party", StartDate: start, EndDate: end},
			wantErr: true,
		},
		{
			name:    "EndBeforeStart",
			params:  event.CreateParams{Title: "Garden party", ClientID: uuid.New(), StartDate: end, EndDate: start},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := event.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := event.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.ErrorIs(t, err, event.ErrInvalidInput)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, event.StatusPlanning, got.Status)
		})
	}
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := event.NewMockRepository(ctrl)
		repo.EXPECT().
			GetEvent(gomock.Any(), id).
			Return(&event.Event{ID: id, Status: event.StatusPlanning}, nil)
		repo.EXPECT().UpdateEvent(gomock.Any(), gomock.Any()).Return(nil)

		svc := event.NewService(repo)
		got, err := svc.UpdateStatus(context.Background(), id, event.StatusOngoing)
		require.NoError(t, err)
		assert.Equal(t, event.StatusOngoing, got.Status)
	})

	t.Run("Unknown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := event.NewMockRepository(ctrl)
		svc := event.NewService(repo)

		_, err := svc.UpdateStatus(context.Background(), uuid.New(), "archived")
		assert.ErrorIs(t, err, event.ErrInvalidInput)
	})
}

func TestService_Tasks(t *testing.T) {
	deadline := time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)

	t.Run("Add", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := event.NewMockRepository(ctrl)
		repo.EXPECT().GetEvent(gomock.Any(), id).Return(&event.Event{ID: id}, nil)
		repo.EXPECT().UpdateEvent(gomock.Any(), gomock.Any()).Return(nil)

		svc := event.NewService(repo)
		got, err := svc.AddTask(context.Background(), id, "  Order chairs  ", deadline)
		require.NoError(t, err)
		require.Len(t, got.Tasks, 1)
		assert.Equal(t, "Order chairs", got.Tasks[0].Title)
		assert.NotEmpty(t, got.Tasks[0].ID)
		assert.False(t, got.Tasks[0].Completed)
	})

	t.Run("AddEmptyTitle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := event.NewMockRepository(ctrl)
		svc := event.NewService(repo)

		_, err := svc.AddTask(context.Background(), uuid.New(), "  ", deadline)
		assert.ErrorIs(t, err, event.ErrInvalidInput)
	})

	t.Run("Toggle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		taskID := uuid.New()
		repo := event.NewMockRepository(ctrl)
		repo.EXPECT().
			GetEvent(gomock.Any(), id).
			Return(&event.Event{ID: id, Tasks: []event.Task{{ID: taskID, Title: "Order chairs"}}}, nil)
		repo.EXPECT().UpdateEvent(gomock.Any(), gomock.Any()).Return(nil)

		svc := event.NewService(repo)
		got, err := svc.ToggleTask(context.Background(), id, taskID)
		require.NoError(t, err)
		assert.True(t, got.Tasks[0].Completed)
	})

	t.Run("ToggleMissing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := event.NewMockRepository(ctrl)
		repo.EXPECT().GetEvent(gomock.Any(), id).Return(&event.Event{ID: id}, nil)

		svc := event.NewService(repo)
		_, err := svc.ToggleTask(context.Background(), id, uuid.New())
		assert.ErrorIs(t, err, event.ErrNotFound)
	})
}

func TestService_Rosters(t *testing.T) {
	t.Run("AddHelper", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := event.NewMockRepository(ctrl)
		repo.EXPECT().GetEvent(gomock.Any(), id).Return(&event.Event{ID: id}, nil)
		repo.EXPECT().UpdateEvent(gomock.Any(), gomock.Any()).Return(nil)

		svc := event.NewService(repo)
		got, err := svc.AddHelper(context.Background(), id, "Mehmet")
		require.NoError(t, err)
		assert.Equal(t, []string{"Mehmet"}, got.Helpers)
	})

	t.Run("DuplicateHelperRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := event.NewMockRepository(ctrl)
		repo.EXPECT().
			GetEvent(gomock.Any(), id).
			Return(&event.Event{ID: id, Helpers: []string{"Mehmet"}}, nil)

		svc := event.NewService(repo)
		_, err := svc.AddHelper(context.Background(), id, "mehmet")
		assert.ErrorIs(t, err, event.ErrInvalidInput)
	})

	t.Run("RemoveSupplier", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := event.NewMockRepository(ctrl)
		repo.EXPECT().
			GetEvent(gomock.Any(), id).
			Return(&event.Event{ID: id, Suppliers: []string{"Flower Shop", "Bakery"}}, nil)
		repo.EXPECT().UpdateEvent(gomock.Any(), gomock.Any()).Return(nil)

		svc := event.NewService(repo)
		got, err := svc.RemoveSupplier(context.Background(), id, "flower shop")
		require.NoError(t, err)
		assert.Equal(t, []string{"Bakery"}, got.Suppliers)
	})

	t.Run("RemoveMissing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := event.NewMockRepository(ctrl)
		repo.EXPECT().GetEvent(gomock.Any(), id).Return(&event.Event{ID: id}, nil)

		svc := event.NewService(repo)
		_, err := svc.RemoveSupplier(context.Background(), id, "Bakery")
		assert.ErrorIs(t, err, event.ErrNotFound)
	})
}

func TestService_OnDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	date := time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)

	repo := event.NewMockRepository(ctrl)
	repo.EXPECT().
		ListEvents(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter event.ListFilter) ([]*event.Event, error) {
			require.NotNil(t, filter.From)
			require.NotNil(t, filter.To)
			assert.Equal(t, date, *filter.From)
			assert.Equal(t, date, *filter.To)
			return nil, nil
		})

	svc := event.NewService(repo)
	_, err := svc.OnDate(context.Background(), date)
	assert.NoError(t, err)
}

func TestEvent_OccupiesDate(t *testing.T) {
	ev := &event.Event{
		StartDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, ev.OccupiesDate(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, ev.OccupiesDate(time.Date(2025, 8, 2, 15, 30, 0, 0, time.UTC)))
	assert.True(t, ev.OccupiesDate(time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC)))
	assert.False(t, ev.OccupiesDate(time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)))
	assert.False(t, ev.OccupiesDate(time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)))
}
