// Package schedule flags same-day booking overlaps. The model has no end
// times, so every job start carries a fixed one-hour exclusion window; two
// slots conflict when their start minutes are less than 60 apart.
package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
)

// Window is the exclusion span around every booking start, in minutes.
const Window = 60

// ConflictError reports a slot overlapping one or more active jobs. The
// caller is expected to surface the jobs and let the operator pick another
// time; there is no automatic resolution.
type ConflictError struct {
	Date      time.Time
	TimeOfDay string
	Jobs      []*booking.Job
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%d job(s) already booked within %d minutes of %s %s",
		len(e.Jobs), Window, e.Date.Format(time.DateOnly), e.TimeOfDay)
}

// JobSource lists jobs for a given filter. Satisfied by the booking repository.
type JobSource interface {
	ListJobs(ctx context.Context, filter booking.ListFilter) ([]*booking.Job, error)
}

type Detector struct {
	jobs JobSource
}

func NewDetector(jobs JobSource) *Detector {
	return &Detector{jobs: jobs}
}

// ConflictingJobs returns the active jobs on the candidate date whose start
// falls within the exclusion window of the candidate time. excludeID lets a
// job be checked against other bookings only. Jobs with unparseable times
// are skipped rather than treated as conflicts, as is a candidate whose own
// time cannot be parsed.
func (d *Detector) ConflictingJobs(ctx context.Context, date time.Time, timeOfDay string, excludeID uuid.UUID) ([]*booking.Job, error) {
	candidate, ok := ParseMinutes(timeOfDay)
	if !ok {
		return nil, nil
	}

	jobs, err := d.jobs.ListJobs(ctx, booking.ListFilter{Date: &date})
	if err != nil {
		return nil, fmt.Errorf("listing jobs on %s: %w", date.Format(time.DateOnly), err)
	}

	var conflicting []*booking.Job

	for _, job := range jobs {
		if job.ID == excludeID || !job.Active() {
			continue
		}

		minutes, ok := ParseMinutes(job.TimeOfDay)
		if !ok {
			continue
		}

		if abs(candidate-minutes) < Window {
			conflicting = append(conflicting, job)
		}
	}

	return conflicting, nil
}

// HasConflict reports whether the candidate slot overlaps any active job.
func (d *Detector) HasConflict(ctx context.Context, date time.Time, timeOfDay string, excludeID uuid.UUID) (bool, error) {
	jobs, err := d.ConflictingJobs(ctx, date, timeOfDay, excludeID)
	if err != nil {
		return false, err
	}

	return len(jobs) > 0, nil
}

// Check implements booking.ConflictChecker: nil when the slot is free, a
// *ConflictError when it is not.
func (d *Detector) Check(ctx context.Context, date time.Time, timeOfDay string, excludeID uuid.UUID) error {
	jobs, err := d.ConflictingJobs(ctx, date, timeOfDay, excludeID)
	if err != nil {
		return err
	}

	if len(jobs) == 0 {
		return nil
	}

	return &ConflictError{Date: date, TimeOfDay: timeOfDay, Jobs: jobs}
}

// timeLayouts covers the formats operators actually type.
var timeLayouts = []string{"15:04", "3:04 PM", "3:04PM", "15:04:05"}

// ParseMinutes converts a time-of-day string to minutes since midnight.
func ParseMinutes(timeOfDay string) (int, bool) {
	timeOfDay = strings.TrimSpace(timeOfDay)
	if timeOfDay == "" {
		return 0, false
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(timeOfDay)); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}

	return 0, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}
