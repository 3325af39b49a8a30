package domain

import "github.com/shopspring/decimal"

// Cart mirrors the payload returned by the commerce backend. Subtotal and
// ItemCount are server-computed and are never recalculated from Items on this
// side; every mutation replaces the whole struct with a fresh payload.
type Cart struct {
	Token     string          `json:"token"`
	Items     []CartItem      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"item_count"`
}

func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

// EmptyCart is the default before the first fetch resolves.
func EmptyCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

type CartItem struct {
	ID            int64           `json:"id"`
	Product       ProductSnapshot `json:"product"`
	Quantity      int             `json:"quantity"`
	PriceSnapshot decimal.Decimal `json:"price_snapshot"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// ProductSnapshot is the display-only slice of a product carried inside cart
// items and buy-now selections.
type ProductSnapshot struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Image           string          `json:"image"`
	PriceSnapshot   decimal.Decimal `json:"price_snapshot"`
	QuantityDisplay string          `json:"quantity_display"`
}

// BuyNowSelection drives the single-item checkout path that bypasses the cart.
// It only ever travels through navigation state and is never persisted.
type BuyNowSelection struct {
	ProductID int64            `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Snapshot  *ProductSnapshot `json:"snapshot,omitempty"`
}
