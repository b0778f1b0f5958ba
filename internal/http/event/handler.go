package event

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/event"
	"github.com/MrJamesThe3rd/fieldbook/internal/finance"
	"github.com/MrJamesThe3rd/fieldbook/internal/http/respond"
)

type Handler struct {
	svc *event.Service
}

func NewHandler(svc *event.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Patch("/{id}/notes", h.updateNotes)
	r.Post("/{id}/tasks", h.addTask)
	r.Patch("/{id}/tasks/{taskID}", h.toggleTask)
	r.Post("/{id}/helpers", h.addHelper)
	r.Delete("/{id}/helpers", h.removeHelper)
	r.Post("/{id}/suppliers", h.addSupplier)
	r.Delete("/{id}/suppliers", h.removeSupplier)
}

type createEventRequest struct {
	Title      string    `json:"title"`
	ClientID   uuid.UUID `json:"client_id"`
	ClientName string    `json:"client_name"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Location   string    `json:"location"`
	Budget     int64     `json:"budget"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		http.Error(w, "invalid start date", http.StatusBadRequest)
		return
	}

	end, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		http.Error(w, "invalid end date", http.StatusBadRequest)
		return
	}

	ev, err := h.svc.Create(r.Context(), event.CreateParams{
		Title:      req.Title,
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
		StartDate:  start,
		EndDate:    end,
		Location:   req.Location,
		Budget:     req.Budget,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, ToResponse(ev))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := event.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(event.Status(s))
	}

	if s := r.URL.Query().Get("client_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.ClientID = &id
		}
	}

	if s := r.URL.Query().Get("from"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.From = &t
		}
	}

	if s := r.URL.Query().Get("to"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.To = &t
		}
	}

	events, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	responses := make([]Response, len(events))
	for i, ev := range events {
		responses[i] = ToResponse(ev)
	}

	respond.JSON(w, http.StatusOK, responses)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ev, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(ev))
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(r *http.Request, id uuid.UUID) (*event.Event, error) {
		var req struct {
			Status event.Status `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, event.ErrInvalidInput
		}

		return h.svc.UpdateStatus(r.Context(), id, req.Status)
	})
}

func (h *Handler) updateNotes(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(r *http.Request, id uuid.UUID) (*event.Event, error) {
		var req struct {
			Notes string `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, event.ErrInvalidInput
		}

		return h.svc.UpdateNotes(r.Context(), id, req.Notes)
	})
}

func (h *Handler) addTask(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(r *http.Request, id uuid.UUID) (*event.Event, error) {
		var req struct {
			Title    string `json:"title"`
			Deadline string `json:"deadline"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, event.ErrInvalidInput
		}

		deadline, err := time.Parse(time.DateOnly, req.Deadline)
		if err != nil {
			return nil, event.ErrInvalidInput
		}

		return h.svc.AddTask(r.Context(), id, req.Title, deadline)
	})
}

func (h *Handler) toggleTask(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(r *http.Request, id uuid.UUID) (*event.Event, error) {
		taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
		if err != nil {
			return nil, event.ErrInvalidInput
		}

		return h.svc.ToggleTask(r.Context(), id, taskID)
	})
}

func (h *Handler) addHelper(w http.ResponseWriter, r *http.Request) {
	h.roster(w, r, h.svc.AddHelper)
}

func (h *Handler) removeHelper(w http.ResponseWriter, r *http.Request) {
	h.roster(w, r, h.svc.RemoveHelper)
}

func (h *Handler) addSupplier(w http.ResponseWriter, r *http.Request) {
	h.roster(w, r, h.svc.AddSupplier)
}

func (h *Handler) removeSupplier(w http.ResponseWriter, r *http.Request) {
	h.roster(w, r, h.svc.RemoveSupplier)
}

func (h *Handler) roster(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID, string) (*event.Event, error)) {
	h.mutate(w, r, func(r *http.Request, id uuid.UUID) (*event.Event, error) {
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, event.ErrInvalidInput
		}

		return op(r.Context(), id, req.Name)
	})
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, fn func(*http.Request, uuid.UUID) (*event.Event, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ev, err := fn(r, id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(ev))
}

type taskResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Deadline  string `json:"deadline"`
	Completed bool   `json:"completed"`
}

type materialResponse struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
	Cost int64  `json:"cost"`
}

type Response struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	ClientID        string             `json:"client_id"`
	ClientName      string             `json:"client_name"`
	StartDate       string             `json:"start_date"`
	EndDate         string             `json:"end_date"`
	Location        string             `json:"location"`
	Budget          int64              `json:"budget"`
	Status          event.Status       `json:"status"`
	Tasks           []taskResponse     `json:"tasks"`
	Materials       []materialResponse `json:"materials"`
	Expenses        int64              `json:"expenses"`
	TotalPaid       int64              `json:"total_paid"`
	Pending         int64              `json:"pending"`
	Profit          int64              `json:"profit"`
	RemainingBudget int64              `json:"remaining_budget"`
	Helpers         []string           `json:"helpers"`
	Suppliers       []string           `json:"suppliers"`
	Notes           string             `json:"notes"`
	CreatedAt       time.Time          `json:"created_at"`
}

// ToResponse is shared with the job handler, which returns the created event
// after a conversion.
func ToResponse(ev *event.Event) Response {
	tasks := make([]taskResponse, len(ev.Tasks))
	for i, t := range ev.Tasks {
		tasks[i] = taskResponse{
			ID:        t.ID.String(),
			Title:     t.Title,
			Deadline:  t.Deadline.Format(time.DateOnly),
			Completed: t.Completed,
		}
	}

	materials := make([]materialResponse, len(ev.Materials))
	for i, m := range ev.Materials {
		materials[i] = materialResponse{Name: m.Name, Qty: m.Qty, Cost: m.Cost}
	}

	return Response{
		ID:              ev.ID.String(),
		Title:           ev.Title,
		ClientID:        ev.ClientID.String(),
		ClientName:      ev.ClientName,
		StartDate:       ev.StartDate.Format(time.DateOnly),
		EndDate:         ev.EndDate.Format(time.DateOnly),
		Location:        ev.Location,
		Budget:          ev.Budget,
		Status:          ev.Status,
		Tasks:           tasks,
		Materials:       materials,
		Expenses:        ev.Expenses,
		TotalPaid:       ev.TotalPaid,
		Pending:         finance.EventPending(ev),
		Profit:          finance.Profit(ev),
		RemainingBudget: finance.RemainingBudget(ev),
		Helpers:         ev.Helpers,
		Suppliers:       ev.Suppliers,
		Notes:           ev.Notes,
		CreatedAt:       ev.CreatedAt,
	}
}
