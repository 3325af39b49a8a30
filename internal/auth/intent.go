package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ragul1106/pet-store/internal/domain"
)

// CheckoutIntent is the state of a checkout that was interrupted by the
// authentication precondition. It carries enough to resume the interrupted
// flow, including the buy-now selection when one was active.
type CheckoutIntent struct {
	ID      string
	BuyNow  *domain.BuyNowSelection
	Billing domain.BillingDetails
	Payment string
	Notes   string
	Created time.Time
}

// IntentStore parks checkout intents across the login round trip. Intents
// are consumed on take so a resume happens at most once.
type IntentStore struct {
	mu      sync.Mutex
	intents map[string]*CheckoutIntent
}

func NewIntentStore() *IntentStore {
	return &IntentStore{intents: make(map[string]*CheckoutIntent)}
}

func (s *IntentStore) Save(intent *CheckoutIntent) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	intent.ID = uuid.NewString()
	intent.Created = time.Now()
	s.intents[intent.ID] = intent
	return intent.ID
}

// Take removes and returns the intent, or nil when unknown.
func (s *IntentStore) Take(id string) *CheckoutIntent {
	s.mu.Lock()
	defer s.mu.Unlock()
	intent := s.intents[id]
	delete(s.intents, id)
	return intent
}
