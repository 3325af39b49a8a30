package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ragul1106/pet-store/internal/auth"
	"github.com/Ragul1106/pet-store/internal/backend"
	"github.com/Ragul1106/pet-store/internal/cartstore"
	"github.com/Ragul1106/pet-store/internal/checkout"
	"github.com/Ragul1106/pet-store/internal/domain"
	"github.com/Ragul1106/pet-store/internal/orderlookup"
)

var flatShipping = decimal.RequireFromString("99.00")

type cartAPIMock struct {
	cart *domain.Cart
	err  error
}

func (m cartAPIMock) FetchCart(context.Context) (*domain.Cart, error) {
	return m.cart, m.err
}

func (m cartAPIMock) AddToCart(context.Context, int64, int) (*domain.Cart, error) {
	return m.cart, m.err
}

func (m cartAPIMock) UpdateItem(context.Context, int64, int) (*domain.Cart, error) {
	return m.cart, m.err
}

func (m cartAPIMock) DeleteItem(context.Context, int64) (*domain.Cart, error) {
	return m.cart, m.err
}

func (m cartAPIMock) ClearCart(context.Context) (*domain.Cart, error) {
	return m.cart, m.err
}

type orderAPIMock struct {
	receipt *backend.OrderReceipt
	err     error
}

func (m orderAPIMock) CreateOrder(context.Context, *domain.OrderRequest) (*backend.OrderReceipt, error) {
	return m.receipt, m.err
}

type lookupAPIMock struct {
	order    *domain.Order
	tokenErr error
	idErr    error
}

func (m lookupAPIMock) OrderByToken(context.Context, string) (*domain.Order, error) {
	if m.tokenErr != nil {
		return nil, m.tokenErr
	}
	return m.order, nil
}

func (m lookupAPIMock) OrderByID(context.Context, string) (*domain.Order, error) {
	if m.idErr != nil {
		return nil, m.idErr
	}
	return m.order, nil
}

type productsMock struct {
	snap *domain.ProductSnapshot
	err  error
}

func (m productsMock) Snapshot(context.Context, int64) (*domain.ProductSnapshot, error) {
	return m.snap, m.err
}

func testCart() *domain.Cart {
	return &domain.Cart{
		Token:     "tok-1",
		Items:     []domain.CartItem{{ID: 5, Quantity: 1}},
		Subtotal:  decimal.RequireFromString("499.00"),
		ItemCount: 1,
	}
}

func seededStore(t *testing.T, cart *domain.Cart) *cartstore.Store {
	store := cartstore.NewStore(cartAPIMock{cart: cart}, zap.NewNop())
	require.NoError(t, store.Init(context.Background()))
	return store
}

func newCartHandler(t *testing.T, cart *domain.Cart) *CartHandler {
	return NewCartHandler(seededStore(t, cart), zap.NewNop())
}

func TestGetCart(t *testing.T) {
	handler := newCartHandler(t, testCart())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	handler.GetCart(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Loading bool        `json:"loading"`
		Cart    domain.Cart `json:"cart"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.False(t, resp.Loading)
	assert.Equal(t, "tok-1", resp.Cart.Token)
	assert.Equal(t, 1, resp.Cart.ItemCount)
}

func TestAddItem_Success(t *testing.T) {
	handler := newCartHandler(t, testCart())

	body, _ := json.Marshal(map[string]any{"product_id": 42, "quantity": 1})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))

	handler.AddItem(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var cart domain.Cart
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&cart))
	assert.Equal(t, 1, cart.ItemCount)
}

func TestAddItem_InvalidProductID(t *testing.T) {
	handler := newCartHandler(t, testCart())

	body, _ := json.Marshal(map[string]any{"product_id": 0, "quantity": 1})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))

	handler.AddItem(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var resp ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&resp)
	assert.Equal(t, "invalid_product_id", resp.Code)
}

func TestAddItem_InvalidJSON(t *testing.T) {
	handler := newCartHandler(t, testCart())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))

	handler.AddItem(recorder, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAddItem_BackendValidationPassthrough(t *testing.T) {
	store := cartstore.NewStore(cartAPIMock{err: &backend.APIError{
		Status: http.StatusBadRequest,
		Detail: "product_id required",
	}}, zap.NewNop())
	handler := NewCartHandler(store, zap.NewNop())

	body, _ := json.Marshal(map[string]any{"product_id": 42, "quantity": 1})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))

	handler.AddItem(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var resp ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&resp)
	assert.Equal(t, "backend_rejected", resp.Code)
	assert.Equal(t, "product_id required", resp.Error)
}

// withChiParam injects a chi route parameter so handlers can be exercised
// without mounting the full router.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestUpdateQuantity(t *testing.T) {
	handler := newCartHandler(t, testCart())

	body, _ := json.Marshal(map[string]any{"quantity": 3})
	recorder := httptest.NewRecorder()
	request := withChiParam(httptest.NewRequest(http.MethodPatch, "/items/5", bytes.NewReader(body)), "item_id", "5")

	handler.UpdateQuantity(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestUpdateQuantity_BadItemID(t *testing.T) {
	handler := newCartHandler(t, testCart())

	body, _ := json.Marshal(map[string]any{"quantity": 3})
	recorder := httptest.NewRecorder()
	request := withChiParam(httptest.NewRequest(http.MethodPatch, "/items/nope", bytes.NewReader(body)), "item_id", "nope")

	handler.UpdateQuantity(recorder, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestOrderLookup_NotFound(t *testing.T) {
	svc := orderlookup.NewService(lookupAPIMock{
		tokenErr: fmt.Errorf("x: %w", backend.ErrNotFound),
		idErr:    fmt.Errorf("x: %w", backend.ErrNotFound),
	}, zap.NewNop())
	handler := NewOrderHandler(svc, zap.NewNop())

	recorder := httptest.NewRecorder()
	request := withChiParam(httptest.NewRequest(http.MethodGet, "/orders/12", nil), "identifier", "12")

	handler.Lookup(recorder, request)

	require.Equal(t, http.StatusNotFound, recorder.Code)

	var resp ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&resp)
	assert.Equal(t, "order_not_found", resp.Code)
}

func TestOrderLookup_Success(t *testing.T) {
	svc := orderlookup.NewService(lookupAPIMock{order: &domain.Order{ID: 12, Token: "ord-tok"}}, zap.NewNop())
	handler := NewOrderHandler(svc, zap.NewNop())

	recorder := httptest.NewRecorder()
	request := withChiParam(httptest.NewRequest(http.MethodGet, "/orders/ord-tok", nil), "identifier", "ord-tok")

	handler.Lookup(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var order domain.Order
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&order))
	assert.Equal(t, int64(12), order.ID)
}

// stubSession satisfies the checkout service's session dependency.
type stubSession bool

func (s stubSession) Authenticated() bool { return bool(s) }

func newCheckoutHandler(t *testing.T, cart *domain.Cart, orders orderAPIMock, authed bool) *CheckoutHandler {
	svc := checkout.NewService(
		seededStore(t, cart),
		productsMock{snap: &domain.ProductSnapshot{ID: 7, PriceSnapshot: decimal.RequireFromString("120.00")}},
		orders,
		stubSession(authed),
		auth.NewIntentStore(),
		flatShipping,
		zap.NewNop(),
	)
	return NewCheckoutHandler(svc, zap.NewNop())
}

func TestCheckoutSubmit_AuthRequired(t *testing.T) {
	handler := newCheckoutHandler(t, testCart(), orderAPIMock{}, false)

	body, _ := json.Marshal(map[string]any{"payment_method": "cod"})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))

	handler.Submit(recorder, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	var resp ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&resp)
	assert.Equal(t, "auth_required", resp.Code)
	assert.NotEmpty(t, resp.IntentID, "the response must carry the resumable intent id")
}

func TestCheckoutSubmit_Success(t *testing.T) {
	orders := orderAPIMock{receipt: &backend.OrderReceipt{Token: "ord-tok", ID: 9}}
	handler := newCheckoutHandler(t, testCart(), orders, true)

	body, _ := json.Marshal(map[string]any{
		"billing_name":   "A Customer",
		"payment_method": "online",
	})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))

	handler.Submit(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var resp submitResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "ord-tok", resp.Identifier)
}

func TestCheckoutSummary_BuyNow(t *testing.T) {
	handler := newCheckoutHandler(t, testCart(), orderAPIMock{}, true)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/?product_id=7&quantity=2", nil)

	handler.Summary(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var summary checkout.Summary
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&summary))
	assert.True(t, summary.Subtotal.Equal(decimal.RequireFromString("240.00")))
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("339.00")))
}

func TestHandleServiceError_TransportFailure(t *testing.T) {
	recorder := httptest.NewRecorder()
	handleServiceError(recorder, errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}
