package calendar

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	"github.com/MrJamesThe3rd/fieldbook/internal/event"
	eventhandler "github.com/MrJamesThe3rd/fieldbook/internal/http/event"
	"github.com/MrJamesThe3rd/fieldbook/internal/http/respond"
	"github.com/MrJamesThe3rd/fieldbook/internal/schedule"
)

// Handler renders the read-only day view: jobs booked on a date, events
// occupying it, and which jobs sit within each other's exclusion window.
// Overlaps can predate either job's time being known, so existing bookings
// are flagged rather than assumed conflict-free.
type Handler struct {
	jobs     *booking.Service
	events   *event.Service
	detector *schedule.Detector
}

func NewHandler(jobs *booking.Service, events *event.Service, detector *schedule.Detector) *Handler {
	return &Handler{jobs: jobs, events: events, detector: detector}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{date}", h.day)
}

type dayJob struct {
	ID        string         `json:"id"`
	Service   string         `json:"service"`
	Client    string         `json:"client"`
	TimeOfDay string         `json:"time"`
	Status    booking.Status `json:"status"`
	Conflict  bool           `json:"conflict"`
}

type dayResponse struct {
	Date   string                  `json:"date"`
	Jobs   []dayJob                `json:"jobs"`
	Events []eventhandler.Response `json:"events"`
}

func (h *Handler) day(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(time.DateOnly, chi.URLParam(r, "date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	jobs, err := h.jobs.List(r.Context(), booking.ListFilter{Date: &date})
	if err != nil {
		respond.Error(w, err)
		return
	}

	events, err := h.events.OnDate(r.Context(), date)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := dayResponse{Date: date.Format(time.DateOnly), Jobs: make([]dayJob, 0, len(jobs))}

	for _, job := range jobs {
		entry := dayJob{
			ID:        job.ID.String(),
			Service:   job.Service,
			Client:    job.ClientName,
			TimeOfDay: job.TimeOfDay,
			Status:    job.Status,
		}

		if job.Active() {
			conflict, err := h.detector.HasConflict(r.Context(), job.Date, job.TimeOfDay, job.ID)
			if err != nil {
				respond.Error(w, err)
				return
			}

			entry.Conflict = conflict
		}

		resp.Jobs = append(resp.Jobs, entry)
	}

	for _, ev := range events {
		resp.Events = append(resp.Events, eventhandler.ToResponse(ev))
	}

	respond.JSON(w, http.StatusOK, resp)
}
