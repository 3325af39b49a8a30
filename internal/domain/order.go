package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingDetails holds the contact and delivery fields collected at checkout.
type BillingDetails struct {
	Name         string `json:"billing_name"`
	Email        string `json:"billing_email"`
	Phone        string `json:"billing_phone"`
	AddressLine1 string `json:"billing_address_line1"`
	AddressLine2 string `json:"billing_address_line2"`
	City         string `json:"billing_city"`
	State        string `json:"billing_state"`
	Pincode      string `json:"billing_pincode"`
}

// BuyNowPayload is the single-item order source sent instead of a cart token.
type BuyNowPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest is the body of POST /orders/create/. Exactly one of CartToken
// and BuyNow is populated; the other is left out of the encoded payload.
type OrderRequest struct {
	BillingDetails
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
	Shipping      decimal.Decimal `json:"shipping"`
	CartToken     *string         `json:"cart_token,omitempty"`
	BuyNow        *BuyNowPayload  `json:"buy_now,omitempty"`
}

// Order is the read-only projection fetched for the confirmation view.
// The client never mutates it.
type Order struct {
	ID      int64     `json:"id"`
	Token   string    `json:"token"`
	Status  string    `json:"status"`
	Created time.Time `json:"created"`
	BillingDetails
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
	Notes    string          `json:"notes"`
	Items    []OrderItem     `json:"items"`
}

type OrderItem struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	ProductImage string          `json:"product_image"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
}

// User is the account projection returned by the backend after login.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
