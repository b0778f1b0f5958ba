package stock

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldbook/internal/http/respond"
	"github.com/MrJamesThe3rd/fieldbook/internal/inventory"
)

type Handler struct {
	svc *inventory.Service
}

func NewHandler(svc *inventory.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/low", h.lowStock)
	r.Get("/available", h.available)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/adjust", h.adjust)
	r.Post("/{id}/restock", h.restock)
}

type createItemRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
	Unit        string `json:"unit"`
	CostPerUnit int64  `json:"cost_per_unit"`
	MinStock    int    `json:"min_stock"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.svc.Add(r.Context(), inventory.CreateParams{
		Name:        req.Name,
		Category:    req.Category,
		Stock:       req.Stock,
		Unit:        req.Unit,
		CostPerUnit: req.CostPerUnit,
		MinStock:    req.MinStock,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(item))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(items))
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.LowStock(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(items))
}

// available reports the stock behind a material name so selection forms can
// cap the pickable quantity. matched=false means the name is free-form.
func (h *Handler) available(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	stock, ok, err := h.svc.Available(r.Context(), name)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"stock": stock, "matched": ok})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(item))
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	h.applyDelta(w, r, h.svc.Adjust)
}

func (h *Handler) restock(w http.ResponseWriter, r *http.Request) {
	h.applyDelta(w, r, h.svc.Restock)
}

func (h *Handler) applyDelta(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID, delta int) (int, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stock, err := op(r.Context(), id, req.Delta)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]int{"stock": stock})
}

type itemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	Unit        string    `json:"unit"`
	CostPerUnit int64     `json:"cost_per_unit"`
	MinStock    int       `json:"min_stock"`
	Low         bool      `json:"low"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(item *inventory.Item) itemResponse {
	return itemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Category:    item.Category,
		Stock:       item.Stock,
		Unit:        item.Unit,
		CostPerUnit: item.CostPerUnit,
		MinStock:    item.MinStock,
		Low:         item.LowStock(),
		CreatedAt:   item.CreatedAt,
	}
}

func toResponseList(items []*inventory.Item) []itemResponse {
	responses := make([]itemResponse, len(items))
	for i, item := range items {
		responses[i] = toResponse(item)
	}

	return responses
}
