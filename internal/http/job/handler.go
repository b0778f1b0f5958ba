package job

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/booking"
	"github.com/MrJamesThe3rd/fieldbook/internal/finance"
	eventhandler "github.com/MrJamesThe3rd/fieldbook/internal/http/event"
	"github.com/MrJamesThe3rd/fieldbook/internal/http/respond"
	"github.com/MrJamesThe3rd/fieldbook/internal/material"
)

type Handler struct {
	svc *booking.Service
}

func NewHandler(svc *booking.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.transition)
	r.Patch("/{id}/schedule", h.reschedule)
	r.Post("/{id}/convert", h.convert)
}

type materialPayload struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
	Cost int64  `json:"cost"`
}

func toMaterials(payloads []materialPayload) []material.Material {
	materials := make([]material.Material, len(payloads))
	for i, p := range payloads {
		materials[i] = material.Material{Name: p.Name, Qty: p.Qty, Cost: p.Cost}
	}

	return materials
}

type createJobRequest struct {
	ClientID   uuid.UUID `json:"client_id"`
	ClientName string    `json:"client_name"`
	Service    string    `json:"service"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Location   string    `json:"location"`
	Amount     int64     `json:"amount"`
	Notes      string    `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	job, err := h.svc.Create(r.Context(), booking.CreateParams{
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
		Service:    req.Service,
		Date:       date,
		TimeOfDay:  req.Time,
		Location:   req.Location,
		Amount:     req.Amount,
		Notes:      req.Notes,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(job))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := booking.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(booking.Status(s))
	}

	if s := r.URL.Query().Get("client_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.ClientID = &id
		}
	}

	if s := r.URL.Query().Get("date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.Date = &t
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

	jobs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(jobs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	job, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(job))
}

type transitionRequest struct {
	Action booking.Action `json:"action"`
	// Materials and Review only apply to the complete action.
	Materials []materialPayload `json:"materials,omitempty"`
	Review    string            `json:"review,omitempty"`
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var job *booking.Job

	if req.Action == booking.ActionComplete {
		job, err = h.svc.Complete(r.Context(), id, booking.CompleteParams{
			Materials: toMaterials(req.Materials),
			Review:    req.Review,
		})
	} else {
		job, err = h.svc.Transition(r.Context(), id, req.Action)
	}

	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(job))
}

type rescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (h *Handler) reschedule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	job, err := h.svc.Reschedule(r.Context(), id, date, req.Time)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(job))
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ev, err := h.svc.ConvertToEvent(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, eventhandler.ToResponse(ev))
}

type jobResponse struct {
	ID                 string            `json:"id"`
	ClientID           string            `json:"client_id"`
	ClientName         string            `json:"client_name"`
	Service            string            `json:"service"`
	Date               string            `json:"date"`
	Time               string            `json:"time"`
	Location           string            `json:"location"`
	Amount             int64             `json:"amount"`
	PaidAmount         int64             `json:"paid_amount"`
	Pending            int64             `json:"pending"`
	Expenses           int64             `json:"expenses"`
	Profit             int64             `json:"profit"`
	Notes              string            `json:"notes"`
	Materials          []materialPayload `json:"materials"`
	Status             booking.Status    `json:"status"`
	ConvertedToEventID *string           `json:"converted_to_event_id,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

func toResponse(job *booking.Job) jobResponse {
	materials := make([]materialPayload, len(job.Materials))
	for i, m := range job.Materials {
		materials[i] = materialPayload{Name: m.Name, Qty: m.Qty, Cost: m.Cost}
	}

	resp := jobResponse{
		ID:         job.ID.String(),
		ClientID:   job.ClientID.String(),
		ClientName: job.ClientName,
		Service:    job.Service,
		Date:       job.Date.Format(time.DateOnly),
		Time:       job.TimeOfDay,
		Location:   job.Location,
		Amount:     job.Amount,
		PaidAmount: job.PaidAmount,
		Pending:    finance.JobPending(job),
		Expenses:   job.Expenses,
		Profit:     finance.JobProfit(job),
		Notes:      job.Notes,
		Materials:  materials,
		Status:     job.Status,
		CreatedAt:  job.CreatedAt,
	}

	if job.ConvertedToEventID != nil {
		id := job.ConvertedToEventID.String()
		resp.ConvertedToEventID = &id
	}

	return resp
}

func toResponseList(jobs []*booking.Job) []jobResponse {
	responses := make([]jobResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = toResponse(job)
	}

	return responses
}
