// Package cartstore holds the single shared, observable mirror of the
// server-side cart. The store never computes cart state itself: every
// mutation round-trips through the backend and the returned payload replaces
// the held cart wholesale.
package cartstore

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Ragul1106/pet-store/internal/domain"
)

// API is the slice of the backend client the store depends on.
type API interface {
	FetchCart(ctx context.Context) (*domain.Cart, error)
	AddToCart(ctx context.Context, productID int64, quantity int) (*domain.Cart, error)
	UpdateItem(ctx context.Context, itemID int64, quantity int) (*domain.Cart, error)
	DeleteItem(ctx context.Context, itemID int64) (*domain.Cart, error)
	ClearCart(ctx context.Context) (*domain.Cart, error)
}

// Store is safe for concurrent use. Concurrent mutations are not serialized:
// whichever response is committed last wins. Stricter per-resource sequencing
// (monotonic request ids, discard stale responses) was considered and
// deliberately left out.
type Store struct {
	api API
	log *zap.Logger

	mu      sync.RWMutex
	cart    *domain.Cart
	loading bool

	subMu  sync.Mutex
	subs   map[int]func(*domain.Cart)
	nextID int
}

func NewStore(api API, log *zap.Logger) *Store {
	return &Store{
		api:     api,
		log:     log,
		cart:    domain.EmptyCart(),
		loading: true,
		subs:    make(map[int]func(*domain.Cart)),
	}
}

// Init performs the store's single startup fetch. A failed fetch leaves the
// empty default cart in place; the store still becomes ready so the UI can
// render and retry via Refresh.
func (s *Store) Init(ctx context.Context) error {
	cart, err := s.api.FetchCart(ctx)

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.cart = cart
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("initial cart fetch failed, keeping empty cart", zap.Error(err))
		return err
	}
	s.notify(cart)
	return nil
}

// Cart returns the currently held cart. All callers observe the same value
// between commits; the returned struct must be treated as read-only.
func (s *Store) Cart() *domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart
}

// Loading reports whether the startup fetch is still outstanding.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe registers fn to run after every committed cart replacement and
// returns its unsubscribe function. After unsubscribing, fn is never invoked
// again, which is what guards late responses from writing into torn-down
// consumers.
func (s *Store) Subscribe(fn func(*domain.Cart)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) Add(ctx context.Context, productID int64, quantity int) (*domain.Cart, error) {
	return s.mutate(func() (*domain.Cart, error) {
		return s.api.AddToCart(ctx, productID, quantity)
	})
}

func (s *Store) Update(ctx context.Context, itemID int64, quantity int) (*domain.Cart, error) {
	return s.mutate(func() (*domain.Cart, error) {
		return s.api.UpdateItem(ctx, itemID, quantity)
	})
}

func (s *Store) Remove(ctx context.Context, itemID int64) (*domain.Cart, error) {
	return s.mutate(func() (*domain.Cart, error) {
		return s.api.DeleteItem(ctx, itemID)
	})
}

func (s *Store) Clear(ctx context.Context) (*domain.Cart, error) {
	return s.mutate(func() (*domain.Cart, error) {
		return s.api.ClearCart(ctx)
	})
}

func (s *Store) Refresh(ctx context.Context) (*domain.Cart, error) {
	return s.mutate(func() (*domain.Cart, error) {
		return s.api.FetchCart(ctx)
	})
}

// mutate runs one backend call and, on success, atomically replaces the held
// cart with the returned payload. On failure the previous cart stays exactly
// as it was and the error goes back to the caller.
func (s *Store) mutate(call func() (*domain.Cart, error)) (*domain.Cart, error) {
	cart, err := call()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()

	s.notify(cart)
	return cart, nil
}

func (s *Store) notify(cart *domain.Cart) {
	s.subMu.Lock()
	fns := make([]func(*domain.Cart), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(cart)
	}
}
