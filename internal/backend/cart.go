package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Ragul1106/pet-store/internal/domain"
)

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// FetchCart returns the current cart for the stored token, or a fresh empty
// cart (with its new token) when none exists yet.
func (c *Client) FetchCart(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.doCart(ctx, http.MethodGet, "/cart/", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart adds quantity units of a product and returns the updated cart.
// Product existence is validated server-side.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	var cart domain.Cart
	body := addItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.doCart(ctx, http.MethodPost, "/cart/add/", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateItem sets an item's quantity. A requested quantity below 1 is clamped
// to 1 before anything goes over the wire; 0 or negative is never sent.
func (c *Client) UpdateItem(ctx context.Context, itemID int64, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	var cart domain.Cart
	path := fmt.Sprintf("/cart/%d/", itemID)
	if err := c.doCart(ctx, http.MethodPatch, path, updateItemRequest{Quantity: quantity}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// DeleteItem removes one item and returns the remaining cart.
func (c *Client) DeleteItem(ctx context.Context, itemID int64) (*domain.Cart, error) {
	var cart domain.Cart
	path := fmt.Sprintf("/cart/%d/", itemID)
	if err := c.doCart(ctx, http.MethodDelete, path, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCart empties the cart server-side and returns the reset payload.
func (c *Client) ClearCart(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.doCart(ctx, http.MethodPost, "/cart/clear/", struct{}{}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
