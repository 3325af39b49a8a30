// Package auth holds the visitor's session credential and the pending
// checkout intents that let an interrupted checkout resume after login.
package auth

import (
	"sync"

	"github.com/Ragul1106/pet-store/internal/domain"
)

// Session is the in-memory holder of the JWT pair for the current visitor.
// It implements backend.Credentials.
type Session struct {
	mu      sync.RWMutex
	access  string
	refresh string
	user    *domain.User
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *Session) Authenticated() bool {
	return s.AccessToken() != ""
}

func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) establish(access, refresh string, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	s.user = user
}

// Clear drops the credential, returning the visitor to anonymous. The cart
// token is untouched: the backend keeps the cart attached to the account.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	s.user = nil
}
