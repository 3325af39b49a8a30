package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/Ragul1106/pet-store/internal/backend"
	"github.com/Ragul1106/pet-store/internal/checkout"
	"github.com/Ragul1106/pet-store/internal/orderlookup"
)

type ErrorResponse struct {
	Error    string              `json:"error"`
	Code     string              `json:"code,omitempty"`
	Fields   map[string][]string `json:"fields,omitempty"`
	IntentID string              `json:"intent_id,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleServiceError converts the error taxonomy into HTTP responses:
// client-side precondition failures become 4xx before any backend status is
// consulted, backend validation answers pass their status and detail
// through, and transport failures surface as 502.
func handleServiceError(w http.ResponseWriter, err error) {
	var authErr *checkout.AuthRequiredError
	if errors.As(err, &authErr) {
		respondJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:    authErr.Error(),
			Code:     "auth_required",
			IntentID: authErr.IntentID,
		})
		return
	}

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
		return
	case errors.Is(err, checkout.ErrMissingBuyNowItem):
		respondError(w, http.StatusBadRequest, "missing_buy_now_item", err.Error())
		return
	case errors.Is(err, orderlookup.ErrMissingIdentifier):
		respondError(w, http.StatusBadRequest, "missing_identifier", err.Error())
		return
	case errors.Is(err, orderlookup.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
		return
	case errors.Is(err, backend.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	case errors.Is(err, gobreaker.ErrOpenState):
		respondError(w, http.StatusServiceUnavailable, "backend_unavailable", "commerce backend unavailable")
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		respondJSON(w, apiErr.Status, ErrorResponse{
			Error:  apiErr.Detail,
			Code:   "backend_rejected",
			Fields: apiErr.Fields,
		})
		return
	}

	respondError(w, http.StatusBadGateway, "backend_error", "commerce backend request failed")
}
