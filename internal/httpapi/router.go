// Package httpapi is the storefront's HTTP surface: thin chi handlers over
// the cart store, checkout derivation, order lookup and auth services.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrderHandler
	Products *ProductHandler
	Auth     *AuthHandler
}

func NewRouter(h Handlers, requestTimeout time.Duration, log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(log))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Post("/refresh", h.Cart.RefreshCart)
			r.Post("/items", h.Cart.AddItem)
			r.Patch("/items/{item_id}", h.Cart.UpdateQuantity)
			r.Delete("/items/{item_id}", h.Cart.RemoveItem)
			r.Post("/clear", h.Cart.ClearCart)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/summary", h.Checkout.Summary)
			r.Post("/", h.Checkout.Submit)
			r.Post("/resume/{intent_id}", h.Checkout.Resume)
		})

		r.Get("/orders/{identifier}", h.Orders.Lookup)
		r.Get("/products/{id}", h.Products.Detail)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/register", h.Auth.Register)
			r.Get("/me", h.Auth.Me)
			r.Post("/logout", h.Auth.Logout)
		})
	})

	return r
}
