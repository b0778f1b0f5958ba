package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	"github.com/MrJamesThe3rd/fieldbook/internal/schedule"
)

func TestParseMinutes(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  int
		ok    bool
	}

	tests := []testCase{
		{name: "TwentyFourHour", input: "10:45", want: 645, ok: true},
		{name: "TwelveHour", input: "3:04 PM", want: 904, ok: true},
		{name: "TwelveHourNoSpace", input: "3:04pm", want: 904, ok: true},
		{name: "WithSeconds", input: "10:45:30", want: 645, ok: true},
		{name: "Padded", input: "  10:45  ", want: 645, ok: true},
		{name: "Empty", input: "", ok: false},
		{name: "FreeForm", input: "morning", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := schedule.ParseMinutes(tt.input)
			assert.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDetector_Check(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	booked := func(timeOfDay string, status booking.Status) *booking.Job {
		return &booking.Job{ID: uuid.New(), Date: date, TimeOfDay: timeOfDay, Status: status}
	}

	type testCase struct {
		name         string
		existing     []*booking.Job
		timeOfDay    string
		wantConflict bool
	}

	tests := []testCase{
		{
			name:         "WithinWindow",
			existing:     []*booking.Job{booked("10:00", booking.StatusScheduled)},
			timeOfDay:    "10:45",
			wantConflict: true,
		},
		{
			name:         "OutsideWindow",
			existing:     []*booking.Job{booked("10:00", booking.StatusScheduled)},
			timeOfDay:    "11:05",
			wantConflict: false,
		},
		{
			name:         "ExactlyAtWindow",
			existing:     []*booking.Job{booked("10:00", booking.StatusScheduled)},
			timeOfDay:    "11:00",
			wantConflict: false,
		},
		{
			name:         "PendingIgnored",
			existing:     []*booking.Job{booked("10:00", booking.StatusPending)},
			timeOfDay:    "10:15",
			wantConflict: false,
		},
		{
			name:         "CancelledIgnored",
			existing:     []*booking.Job{booked("10:00", booking.StatusCancelled)},
			timeOfDay:    "10:15",
			wantConflict: false,
		},
		{
			name:         "UnparseableExistingSkipped",
			existing:     []*booking.Job{booked("morning", booking.StatusScheduled)},
			timeOfDay:    "10:15",
			wantConflict: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := booking.NewMockRepository(ctrl)
			repo.EXPECT().
				ListJobs(gomock.Any(), gomock.Any()).
				Return(tt.existing, nil)

			detector := schedule.NewDetector(repo)
			err := detector.Check(context.Background(), date, tt.timeOfDay, uuid.Nil)

			if tt.wantConflict {
				var conflict *schedule.ConflictError
				require.ErrorAs(t, err, &conflict)
				assert.Len(t, conflict.Jobs, 1)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestDetector_Check_UnparseableCandidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No ListJobs expected: an unparseable candidate is cleared without a lookup.
	repo := booking.NewMockRepository(ctrl)
	detector := schedule.NewDetector(repo)

	err := detector.Check(context.Background(), time.Now(), "whenever", uuid.Nil)
	assert.NoError(t, err)
}

func TestDetector_Check_ExcludesSelf(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	self := &booking.Job{ID: uuid.New(), Date: date, TimeOfDay: "10:00", Status: booking.StatusScheduled}

	repo := booking.NewMockRepository(ctrl)
	repo.EXPECT().
		ListJobs(gomock.Any(), gomock.Any()).
		Return([]*booking.Job{self}, nil)

	detector := schedule.NewDetector(repo)
	err := detector.Check(context.Background(), date, "10:30", self.ID)
	assert.NoError(t, err)
}
