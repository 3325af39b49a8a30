package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Ragul1106/pet-store/internal/checkout"
	"github.com/Ragul1106/pet-store/internal/domain"
)

type CheckoutHandler struct {
	svc *checkout.Service
	log *zap.Logger
}

func NewCheckoutHandler(svc *checkout.Service, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, log: log}
}

type submitRequestDTO struct {
	domain.BillingDetails
	PaymentMethod string                  `json:"payment_method"`
	Notes         string                  `json:"notes"`
	BuyNow        *domain.BuyNowSelection `json:"buy_now,omitempty"`
}

type submitResponseDTO struct {
	Token      string `json:"token,omitempty"`
	ID         int64  `json:"id,omitempty"`
	Identifier string `json:"identifier"`
}

// Summary answers GET /checkout/summary. Buy-now mode is selected with
// ?product_id=&quantity=; without them the shared cart is summarized.
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var sel *domain.BuyNowSelection
	if raw := r.URL.Query().Get("product_id"); raw != "" {
		productID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || productID <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
			return
		}
		quantity, _ := strconv.Atoi(r.URL.Query().Get("quantity"))
		sel = &domain.BuyNowSelection{ProductID: productID, Quantity: quantity}
	}

	summary, err := h.svc.Summarize(r.Context(), sel)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// Submit answers POST /checkout. A buy_now object in the body selects
// single-item mode; otherwise the shared cart is submitted.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	receipt, err := h.svc.Submit(r.Context(), &checkout.Submission{
		Billing:       req.BillingDetails,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		BuyNow:        req.BuyNow,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, submitResponseDTO{
		Token:      receipt.Token,
		ID:         receipt.ID,
		Identifier: receipt.Identifier(),
	})
}

// Resume answers POST /checkout/resume/{intent_id}: it replays a checkout
// that was parked by the authentication precondition.
func (h *CheckoutHandler) Resume(w http.ResponseWriter, r *http.Request) {
	intentID := chi.URLParam(r, "intent_id")
	sub := h.svc.Resume(intentID)
	if sub == nil {
		respondError(w, http.StatusNotFound, "unknown_intent", "no pending checkout for that intent")
		return
	}

	receipt, err := h.svc.Submit(r.Context(), sub)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, submitResponseDTO{
		Token:      receipt.Token,
		ID:         receipt.ID,
		Identifier: receipt.Identifier(),
	})
}
