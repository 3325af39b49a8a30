// Package checkout derives the order summary and assembles the order
// submission, working the same way whether the source of truth is the shared
// cart or a single buy-now selection.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Ragul1106/pet-store/internal/auth"
	"github.com/Ragul1106/pet-store/internal/backend"
	"github.com/Ragul1106/pet-store/internal/cartstore"
	"github.com/Ragul1106/pet-store/internal/domain"
)

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrMissingBuyNowItem = errors.New("buy-now product missing")
)

// AuthRequiredError is returned when submission is attempted without a
// session credential. IntentID resumes the interrupted checkout after login.
type AuthRequiredError struct {
	IntentID string
}

func (e *AuthRequiredError) Error() string {
	return "authentication required before checkout"
}

type Mode int

const (
	ModeCart Mode = iota
	ModeBuyNow
)

func (m Mode) String() string {
	if m == ModeBuyNow {
		return "buy_now"
	}
	return "cart"
}

// Summary is the order math shown before submission. Subtotal comes from the
// server-reported cart subtotal in cart mode, or price snapshot times
// quantity in buy-now mode; it is never recomputed from cart items.
type Summary struct {
	Mode     Mode              `json:"mode"`
	Items    []domain.CartItem `json:"items"`
	Subtotal decimal.Decimal   `json:"subtotal"`
	Shipping decimal.Decimal   `json:"shipping"`
	Total    decimal.Decimal   `json:"total"`
}

// Submission is everything the UI provides at order time.
type Submission struct {
	Billing       domain.BillingDetails
	PaymentMethod string
	Notes         string
	BuyNow        *domain.BuyNowSelection // nil selects cart mode
}

type orderAPI interface {
	CreateOrder(ctx context.Context, req *domain.OrderRequest) (*backend.OrderReceipt, error)
}

type productSource interface {
	Snapshot(ctx context.Context, id int64) (*domain.ProductSnapshot, error)
}

type sessionSource interface {
	Authenticated() bool
}

type Service struct {
	carts    *cartstore.Store
	products productSource
	api      orderAPI
	session  sessionSource
	intents  *auth.IntentStore
	shipping decimal.Decimal
	log      *zap.Logger
}

func NewService(
	carts *cartstore.Store,
	products productSource,
	api orderAPI,
	session sessionSource,
	intents *auth.IntentStore,
	shipping decimal.Decimal,
	log *zap.Logger,
) *Service {
	return &Service{
		carts:    carts,
		products: products,
		api:      api,
		session:  session,
		intents:  intents,
		shipping: shipping,
		log:      log,
	}
}

// Hydrate resolves the product snapshot behind a buy-now selection, fetching
// it when the navigation state did not carry one.
func (s *Service) Hydrate(ctx context.Context, sel *domain.BuyNowSelection) (*domain.ProductSnapshot, error) {
	if sel.Snapshot != nil {
		return sel.Snapshot, nil
	}
	if sel.ProductID == 0 {
		return nil, ErrMissingBuyNowItem
	}
	snap, err := s.products.Snapshot(ctx, sel.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load buy-now product %d: %w", sel.ProductID, err)
	}
	sel.Snapshot = snap
	return snap, nil
}

// Summarize computes subtotal, flat shipping and total. A nil selection means
// cart mode; the cart's server-reported subtotal is used as-is.
func (s *Service) Summarize(ctx context.Context, sel *domain.BuyNowSelection) (*Summary, error) {
	summary := &Summary{
		Mode:     ModeCart,
		Shipping: s.shipping,
	}

	if sel != nil {
		summary.Mode = ModeBuyNow
		snap, err := s.Hydrate(ctx, sel)
		if err != nil {
			return nil, err
		}
		qty := sel.Quantity
		if qty < 1 {
			qty = 1
		}
		summary.Items = []domain.CartItem{{
			Product:       *snap,
			Quantity:      qty,
			PriceSnapshot: snap.PriceSnapshot,
			Subtotal:      snap.PriceSnapshot.Mul(decimal.NewFromInt(int64(qty))),
		}}
		summary.Subtotal = snap.PriceSnapshot.Mul(decimal.NewFromInt(int64(qty)))
	} else {
		cart := s.carts.Cart()
		summary.Items = cart.Items
		summary.Subtotal = cart.Subtotal
	}

	summary.Total = summary.Subtotal.Add(summary.Shipping)
	return summary, nil
}

// Submit validates preconditions, assembles the order payload and issues the
// single order-creation call. Cart and buy-now sources are mutually
// exclusive in the payload. All precondition failures happen before any
// network traffic.
func (s *Service) Submit(ctx context.Context, sub *Submission) (*backend.OrderReceipt, error) {
	if !s.session.Authenticated() {
		intentID := s.intents.Save(&auth.CheckoutIntent{
			BuyNow:  sub.BuyNow,
			Billing: sub.Billing,
			Payment: sub.PaymentMethod,
			Notes:   sub.Notes,
		})
		return nil, &AuthRequiredError{IntentID: intentID}
	}

	req := &domain.OrderRequest{
		BillingDetails: sub.Billing,
		PaymentMethod:  sub.PaymentMethod,
		Notes:          sub.Notes,
		Shipping:       s.shipping,
	}

	if sub.BuyNow != nil {
		if sub.BuyNow.ProductID == 0 && sub.BuyNow.Snapshot == nil {
			return nil, ErrMissingBuyNowItem
		}
		qty := sub.BuyNow.Quantity
		if qty < 1 {
			qty = 1
		}
		productID := sub.BuyNow.ProductID
		if productID == 0 {
			productID = sub.BuyNow.Snapshot.ID
		}
		req.BuyNow = &domain.BuyNowPayload{ProductID: productID, Quantity: qty}
	} else {
		cart := s.carts.Cart()
		if cart.Empty() && cart.Token == "" {
			return nil, ErrEmptyCart
		}
		if cart.Token != "" {
			token := cart.Token
			req.CartToken = &token
		} else if len(cart.Items) > 0 {
			// session cart without a token: fall back to ordering the first
			// item directly
			first := cart.Items[0]
			req.BuyNow = &domain.BuyNowPayload{
				ProductID: first.Product.ID,
				Quantity:  first.Quantity,
			}
		}
	}

	receipt, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("mode", modeOf(sub).String()),
		zap.String("identifier", receipt.Identifier()),
	)
	return receipt, nil
}

// Resume rebuilds a submission from a parked checkout intent, or nil when
// the intent is unknown or already consumed.
func (s *Service) Resume(intentID string) *Submission {
	intent := s.intents.Take(intentID)
	if intent == nil {
		return nil
	}
	return &Submission{
		Billing:       intent.Billing,
		PaymentMethod: intent.Payment,
		Notes:         intent.Notes,
		BuyNow:        intent.BuyNow,
	}
}

func modeOf(sub *Submission) Mode {
	if sub.BuyNow != nil {
		return ModeBuyNow
	}
	return ModeCart
}
