package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fieldbook/internal/http/respond"
	"github.com/MrJamesThe3rd/fieldbook/internal/importer"
)

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/inventory", h.importInventory)
}

// importInventory accepts the raw CSV as the request body; the format query
// parameter defaults to the generic supplier layout.
func (h *Handler) importInventory(w http.ResponseWriter, r *http.Request) {
	format := importer.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = importer.FormatSupplier
	}

	result, err := h.svc.Import(r.Context(), format, r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]int{
		"created":   result.Created,
		"restocked": result.Restocked,
	})
}
