// Package respond centralizes JSON replies and the engine error taxonomy's
// mapping onto HTTP statuses: invalid input 400, missing targets 404,
// illegal transitions 409, schedule conflicts 409 with the blocking jobs.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	"github.com/MrJamesThe3rd/fieldbook/internal/client"
	"github.com/MrJamesThe3rd/fieldbook/internal/event"
	"github.com/MrJamesThe3rd/fieldbook/internal/finance"
	"github.com/MrJamesThe3rd/fieldbook/internal/inventory"
	"github.com/MrJamesThe3rd/fieldbook/internal/schedule"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorBody struct {
	Error     string          `json:"error"`
	Conflicts []conflictEntry `json:"conflicts,omitempty"`
}

type conflictEntry struct {
	JobID     string `json:"job_id"`
	Service   string `json:"service"`
	TimeOfDay string `json:"time_of_day"`
}

// Error writes the status implied by the engine error. Unrecognized errors
// are logged and reported as internal.
func Error(w http.ResponseWriter, err error) {
	var conflict *schedule.ConflictError
	if errors.As(err, &conflict) {
		body := errorBody{Error: conflict.Error()}
		for _, job := range conflict.Jobs {
			body.Conflicts = append(body.Conflicts, conflictEntry{
				JobID:     job.ID.String(),
				Service:   job.Service,
				TimeOfDay: job.TimeOfDay,
			})
		}

		JSON(w, http.StatusConflict, body)

		return
	}

	switch {
	case errors.Is(err, booking.ErrNotFound),
		errors.Is(err, client.ErrNotFound),
		errors.Is(err, event.ErrNotFound),
		errors.Is(err, finance.ErrNotFound),
		errors.Is(err, inventory.ErrNotFound):
		JSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, booking.ErrInvalidTransition):
		JSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, booking.ErrInvalidInput),
		errors.Is(err, client.ErrInvalidInput),
		errors.Is(err, event.ErrInvalidInput),
		errors.Is(err, finance.ErrInvalidInput),
		errors.Is(err, inventory.ErrInvalidInput):
		JSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	default:
		slog.Error("internal error", "error", err)
		JSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
