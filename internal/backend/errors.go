package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound marks a meaningful "resource does not exist" response, as
// opposed to a transport failure or a validation rejection. Order lookup
// relies on this distinction to drive its id fallback.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the commerce backend. Detail carries
// the server's structured message when one was present; Fields carries
// per-field validation errors.
type APIError struct {
	Status int
	Detail string
	Fields map[string][]string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// NotFound reports whether the response should be treated as "resource does
// not exist". The backend answers 400 for malformed lookup tokens, so 400 is
// folded into not-found as well.
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound || e.Status == http.StatusBadRequest
}

// IsNotFound matches both the sentinel and a not-found shaped APIError.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

// newAPIError extracts the server's message from an error body. DRF answers
// either {"detail": "..."} or a field->messages map; anything unparseable is
// kept verbatim as the detail.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	if len(body) == 0 {
		return apiErr
	}

	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
		apiErr.Detail = envelope.Detail
		return apiErr
	}

	var fields map[string][]string
	if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
		apiErr.Fields = fields
		apiErr.Detail = string(body)
		return apiErr
	}

	apiErr.Detail = string(body)
	return apiErr
}
