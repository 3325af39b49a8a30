package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Ragul1106/pet-store/internal/product"
)

type ProductHandler struct {
	svc *product.Service
	log *zap.Logger
}

func NewProductHandler(svc *product.Service, log *zap.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log}
}

// Detail answers GET /products/{id}.
func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	detail, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}
