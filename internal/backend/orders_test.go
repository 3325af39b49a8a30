package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ragul1106/pet-store/internal/domain"
	"github.com/Ragul1106/pet-store/internal/token"
)

func strPtr(s string) *string { return &s }

func TestCreateOrder_FlatTokenResponse(t *testing.T) {
	fake := &fakeBackend{t: t, status: http.StatusCreated, body: `{"id": 10, "token": "ord-tok", "status": "pending"}`}
	client, _, done := newTestClient(t, fake)
	defer done()

	receipt, err := client.CreateOrder(context.Background(), &domain.OrderRequest{
		PaymentMethod: "cod",
		Shipping:      decimal.RequireFromString("99.00"),
		CartToken:     strPtr("cart-tok"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ord-tok", receipt.Identifier())
	assert.Equal(t, int64(10), receipt.ID)
}

func TestCreateOrder_IDOnlyResponse(t *testing.T) {
	fake := &fakeBackend{t: t, status: http.StatusCreated, body: `{"id": 77}`}
	client, _, done := newTestClient(t, fake)
	defer done()

	receipt, err := client.CreateOrder(context.Background(), &domain.OrderRequest{
		CartToken: strPtr("cart-tok"),
	})
	require.NoError(t, err)
	assert.Equal(t, "77", receipt.Identifier())
}

func TestCreateOrder_WrappedResponse(t *testing.T) {
	fake := &fakeBackend{t: t, status: http.StatusCreated, body: `{"order": {"id": 3, "token": "wrapped-tok"}}`}
	client, _, done := newTestClient(t, fake)
	defer done()

	receipt, err := client.CreateOrder(context.Background(), &domain.OrderRequest{
		BuyNow: &domain.BuyNowPayload{ProductID: 7, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "wrapped-tok", receipt.Identifier())
}

func TestCreateOrder_NoIdentifierIsAnError(t *testing.T) {
	fake := &fakeBackend{t: t, status: http.StatusCreated, body: `{"status": "pending"}`}
	client, _, done := newTestClient(t, fake)
	defer done()

	_, err := client.CreateOrder(context.Background(), &domain.OrderRequest{CartToken: strPtr("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token or id")
}

func TestCreateOrder_BuyNowOmitsCartTokenField(t *testing.T) {
	fake := &fakeBackend{t: t, status: http.StatusCreated, body: `{"id": 1, "token": "t"}`}
	client, _, done := newTestClient(t, fake)
	defer done()

	_, err := client.CreateOrder(context.Background(), &domain.OrderRequest{
		BuyNow: &domain.BuyNowPayload{ProductID: 7, Quantity: 2},
	})
	require.NoError(t, err)

	require.Len(t, fake.requests, 1)
	_, hasCartToken := fake.requests[0].Body["cart_token"]
	assert.False(t, hasCartToken, "buy-now submission must not carry cart_token")

	buyNow, ok := fake.requests[0].Body["buy_now"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), buyNow["product_id"])
	assert.Equal(t, float64(2), buyNow["quantity"])
}

func TestCreateOrder_CartModeOmitsBuyNowField(t *testing.T) {
	fake := &fakeBackend{t: t, status: http.StatusCreated, body: `{"id": 1, "token": "t"}`}
	client, _, done := newTestClient(t, fake)
	defer done()

	_, err := client.CreateOrder(context.Background(), &domain.OrderRequest{
		CartToken: strPtr("cart-tok"),
	})
	require.NoError(t, err)

	_, hasBuyNow := fake.requests[0].Body["buy_now"]
	assert.False(t, hasBuyNow, "cart submission must not carry buy_now")
	assert.Equal(t, "cart-tok", fake.requests[0].Body["cart_token"])
}

const orderPayload = `{
	"id": 12,
	"token": "ord-tok",
	"status": "pending",
	"created": "2025-03-04T10:20:30.123456Z",
	"billing_name": "A Customer",
	"billing_email": "a@example.com",
	"subtotal": "998.00",
	"shipping": "99.00",
	"total": "1097.00",
	"items": [
		{"id": 1, "product_id": 42, "product_title": "Dog Food", "price": "499.00", "quantity": 2}
	]
}`

func TestOrderByToken_Success(t *testing.T) {
	fake := &fakeBackend{t: t, body: orderPayload}
	client, _, done := newTestClient(t, fake)
	defer done()

	order, err := client.OrderByToken(context.Background(), "ord-tok")
	require.NoError(t, err)

	assert.Equal(t, "/orders/by-token/?token=ord-tok", fake.requests[0].Path)
	assert.Equal(t, int64(12), order.ID)
	assert.Equal(t, "A Customer", order.Name)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("1097.00")))
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestOrderByToken_404IsNotFound(t *testing.T) {
	fake := &fakeBackend{t: t, status: http.StatusNotFound, body: `{"detail": "Not found."}`}
	client, _, done := newTestClient(t, fake)
	defer done()

	_, err := client.OrderByToken(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderByToken_400IsNotFound(t *testing.T) {
	// the backend answers 400 for malformed tokens; that is folded into
	// not-found so the caller can fall back to an id lookup
	fake := &fakeBackend{t: t, status: http.StatusBadRequest, body: `{"detail": "token required"}`}
	client, _, done := newTestClient(t, fake)
	defer done()

	_, err := client.OrderByToken(context.Background(), "123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderByToken_ServerErrorIsNotNotFound(t *testing.T) {
	fake := &fakeBackend{t: t, status: http.StatusInternalServerError, body: `{"detail": "boom"}`}
	client, _, done := newTestClient(t, fake)
	defer done()

	_, err := client.OrderByToken(context.Background(), "any")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestOrderByID_FallsBackToSecondRoute(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/orders/id/12/" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "Not found."}`))
			return
		}
		w.Write([]byte(orderPayload))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, token.NewMemoryStore(), zap.NewNop())

	order, err := client.OrderByID(context.Background(), "12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), order.ID)
	assert.Equal(t, []string{"/orders/id/12/", "/orders/12/"}, paths)
}

func TestOrderByID_BothRoutesNotFound(t *testing.T) {
	fake := &fakeBackend{t: t, status: http.StatusNotFound, body: `{"detail": "Not found."}`}
	client, _, done := newTestClient(t, fake)
	defer done()

	_, err := client.OrderByID(context.Background(), "12")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, fake.requests, 2)
}

func TestOrderByID_NonNotFoundAborts(t *testing.T) {
	fake := &fakeBackend{t: t, status: http.StatusInternalServerError, body: `{"detail": "boom"}`}
	client, _, done := newTestClient(t, fake)
	defer done()

	_, err := client.OrderByID(context.Background(), "12")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Len(t, fake.requests, 1, "must abort on the first non-not-found failure")
}

func TestParseReceipt_MalformedBody(t *testing.T) {
	receipt := parseReceipt(json.RawMessage(`"just a string"`))
	assert.Equal(t, "", receipt.Identifier())
}

func TestOrderByToken_DoesNotOverwriteCartToken(t *testing.T) {
	fake := &fakeBackend{t: t, body: orderPayload}
	client, tokens, done := newTestClient(t, fake)
	defer done()

	require.NoError(t, tokens.Set(context.Background(), "cart-tok"))

	_, err := client.OrderByToken(context.Background(), "ord-tok")
	require.NoError(t, err)

	// the order payload's top-level "token" is the order token, not a cart
	// token; only the cart endpoints may rotate the stored value
	stored, _ := tokens.Get(context.Background())
	assert.Equal(t, "cart-tok", stored)
}

func TestCreateOrder_DoesNotOverwriteCartToken(t *testing.T) {
	fake := &fakeBackend{t: t, status: http.StatusCreated, body: `{"id": 10, "token": "ord-tok", "status": "pending"}`}
	client, tokens, done := newTestClient(t, fake)
	defer done()

	require.NoError(t, tokens.Set(context.Background(), "cart-tok"))

	_, err := client.CreateOrder(context.Background(), &domain.OrderRequest{
		PaymentMethod: "cod",
		CartToken:     strPtr("cart-tok"),
	})
	require.NoError(t, err)

	stored, _ := tokens.Get(context.Background())
	assert.Equal(t, "cart-tok", stored)
}
