package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Ragul1106/pet-store/internal/orderlookup"
)

type OrderHandler struct {
	svc *orderlookup.Service
	log *zap.Logger
}

func NewOrderHandler(svc *orderlookup.Service, log *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

// Lookup answers GET /orders/{identifier} for the confirmation page. The
// identifier is the order token, or the numeric id when the backend answered
// with only an id.
func (h *OrderHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	order, err := h.svc.Resolve(r.Context(), identifier)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
