package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Ragul1106/pet-store/internal/domain"
)

// OrderReceipt is the confirmation identifier pair from order creation. Some
// backend versions answer with only the numeric id.
type OrderReceipt struct {
	Token string `json:"token"`
	ID    int64  `json:"id"`
}

// Identifier returns the route identifier for the confirmation page: the
// opaque token when present, the numeric id otherwise.
func (r OrderReceipt) Identifier() string {
	if r.Token != "" {
		return r.Token
	}
	if r.ID != 0 {
		return fmt.Sprintf("%d", r.ID)
	}
	return ""
}

// CreateOrder submits the assembled order payload. The receipt is looked for
// both at the top level and under an "order"/"data" wrapper, matching the
// response shapes the backend has been seen producing.
func (c *Client) CreateOrder(ctx context.Context, req *domain.OrderRequest) (*OrderReceipt, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/orders/create/", req, &raw); err != nil {
		return nil, err
	}

	receipt := parseReceipt(raw)
	if receipt.Identifier() == "" {
		return nil, fmt.Errorf("order created but response carried no token or id")
	}
	return &receipt, nil
}

func parseReceipt(raw json.RawMessage) OrderReceipt {
	var envelope struct {
		OrderReceipt
		Order *OrderReceipt `json:"order"`
		Data  *OrderReceipt `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return OrderReceipt{}
	}
	if envelope.Identifier() != "" {
		return envelope.OrderReceipt
	}
	if envelope.Order != nil && envelope.Order.Identifier() != "" {
		return *envelope.Order
	}
	if envelope.Data != nil && envelope.Data.Identifier() != "" {
		return *envelope.Data
	}
	return OrderReceipt{}
}

// OrderByToken resolves an order by its opaque token. A not-found shaped
// response (including the backend's 400 for malformed tokens) comes back as
// ErrNotFound so the caller can fall back to id lookup.
func (c *Client) OrderByToken(ctx context.Context, orderToken string) (*domain.Order, error) {
	var order domain.Order
	path := "/orders/by-token/?token=" + url.QueryEscape(orderToken)
	if err := c.do(ctx, http.MethodGet, path, nil, &order); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			return nil, fmt.Errorf("order %q: %w", orderToken, ErrNotFound)
		}
		return nil, err
	}
	return &order, nil
}

// OrderByID resolves an order by numeric id, trying the dedicated id route
// first and the generic detail route second. Only not-found moves on to the
// next path; any other failure aborts.
func (c *Client) OrderByID(ctx context.Context, id string) (*domain.Order, error) {
	paths := []string{
		fmt.Sprintf("/orders/id/%s/", url.PathEscape(id)),
		fmt.Sprintf("/orders/%s/", url.PathEscape(id)),
	}
	for _, path := range paths {
		var order domain.Order
		err := c.do(ctx, http.MethodGet, path, nil, &order)
		if err == nil {
			return &order, nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("order id %s: %w", id, ErrNotFound)
}
