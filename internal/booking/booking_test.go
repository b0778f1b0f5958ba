package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
)

func TestNext(t *testing.T) {
	type testCase struct {
		name    string
		current booking.Status
		action  booking.Action
		want    booking.Status
		wantErr bool
	}

	tests := []testCase{
		{name: "ApprovePending", current: booking.StatusPending, action: booking.ActionApprove, want: booking.StatusScheduled},
		{name: "StartScheduled", current: booking.StatusScheduled, action: booking.ActionStart, want: booking.StatusInProgress},
		{name: "CompleteInProgress", current: booking.StatusInProgress, action: booking.ActionComplete, want: booking.StatusCompleted},
		{name: "DeclinePending", current: booking.StatusPending, action: booking.ActionDecline, want: booking.StatusCancelled},
		{name: "DeclineScheduled", current: booking.StatusScheduled, action: booking.ActionDecline, want: booking.StatusCancelled},
		{name: "StartPending", current: booking.StatusPending, action: booking.ActionStart, wantErr: true},
		{name: "CompletePending", current: booking.StatusPending, action: booking.ActionComplete, wantErr: true},
		{name: "ApproveScheduled", current: booking.StatusScheduled, action: booking.ActionApprove, wantErr: true},
		{name: "DeclineInProgress", current: booking.StatusInProgress, action: booking.ActionDecline, wantErr: true},
		{name: "CompletedIsFinal", current: booking.StatusCompleted, action: booking.ActionStart, wantErr: true},
		{name: "CancelledIsFinal", current: booking.StatusCancelled, action: booking.ActionApprove, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := booking.Next(tt.current, tt.action)

			if tt.wantErr {
				assert.ErrorIs(t, err, booking.ErrInvalidTransition)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, booking.StatusCompleted.Terminal())
	assert.True(t, booking.StatusCancelled.Terminal())
	assert.False(t, booking.StatusPending.Terminal())
	assert.False(t, booking.StatusScheduled.Terminal())
	assert.False(t, booking.StatusInProgress.Terminal())
}

func TestJob_Active(t *testing.T) {
	assert.True(t, (&booking.Job{Status: booking.StatusScheduled}).Active())
	assert.True(t, (&booking.Job{Status: booking.StatusInProgress}).Active())
	assert.True(t, (&booking.Job{Status: booking.StatusCompleted}).Active())
	assert.False(t, (&booking.Job{Status: booking.StatusPending}).Active())
	assert.False(t, (&booking.Job{Status: booking.StatusCancelled}).Active())
}
