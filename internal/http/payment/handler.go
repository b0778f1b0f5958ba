package payment

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/finance"
	"github.com/MrJamesThe3rd/fieldbook/internal/http/respond"
	"github.com/MrJamesThe3rd/fieldbook/internal/material"
)

type Handler struct {
	svc *finance.Service
}

func NewHandler(svc *finance.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.record)
	r.Get("/", h.list)
}

// ExpenseRoutes and MaterialRoutes hang the remaining reconciliation writes
// off a generic target id (job or event).
func (h *Handler) ExpenseRoutes(r chi.Router) {
	r.Post("/{targetID}", h.recordExpense)
}

func (h *Handler) MaterialRoutes(r chi.Router) {
	r.Post("/{targetID}", h.addMaterials)
}

type recordPaymentRequest struct {
	JobID   *uuid.UUID `json:"job_id,omitempty"`
	EventID *uuid.UUID `json:"event_id,omitempty"`
	Amount  int64      `json:"amount"`
	Method  string     `json:"method"`
	Date    *time.Time `json:"date,omitempty"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := finance.PaymentParams{
		JobID:   req.JobID,
		EventID: req.EventID,
		Amount:  req.Amount,
		Method:  req.Method,
	}
	if req.Date != nil {
		params.Date = *req.Date
	}

	p, err := h.svc.RecordPayment(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := finance.ListFilter{}

	if s := r.URL.Query().Get("job_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.JobID = &id
		}
	}

	if s := r.URL.Query().Get("event_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.EventID = &id
		}
	}

	payments, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	responses := make([]paymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = toResponse(p)
	}

	respond.JSON(w, http.StatusOK, responses)
}

type recordExpenseRequest struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

func (h *Handler) recordExpense(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "targetID"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req recordExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.RecordExpense(r.Context(), targetID, req.Description, req.Amount); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type addMaterialsRequest struct {
	Materials []struct {
		Name string `json:"name"`
		Qty  int    `json:"qty"`
		Cost int64  `json:"cost"`
	} `json:"materials"`
}

func (h *Handler) addMaterials(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "targetID"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req addMaterialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	materials := make([]material.Material, len(req.Materials))
	for i, m := range req.Materials {
		materials[i] = material.Material{Name: m.Name, Qty: m.Qty, Cost: m.Cost}
	}

	if err := h.svc.AddMaterials(r.Context(), targetID, materials); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type paymentResponse struct {
	ID        string              `json:"id"`
	JobID     *string             `json:"job_id,omitempty"`
	EventID   *string             `json:"event_id,omitempty"`
	Amount    int64               `json:"amount"`
	Method    string              `json:"method"`
	Date      time.Time           `json:"date"`
	Type      finance.PaymentType `json:"type"`
	CreatedAt time.Time           `json:"created_at"`
}

func toResponse(p *finance.Payment) paymentResponse {
	resp := paymentResponse{
		ID:        p.ID.String(),
		Amount:    p.Amount,
		Method:    p.Method,
		Date:      p.Date,
		Type:      p.Type,
		CreatedAt: p.CreatedAt,
	}

	if p.JobID != nil {
		id := p.JobID.String()
		resp.JobID = &id
	}

	if p.EventID != nil {
		id := p.EventID.String()
		resp.EventID = &id
	}

	return resp
}
