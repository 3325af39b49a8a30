// Package token persists the opaque cart token that correlates this client
// with its server-side cart. The store is deliberately tiny so the backing
// medium (memory, redis, cookie jar) can be swapped without touching callers.
package token

import (
	"context"
	"sync"
)

// Store holds at most one cart token. Get returns "" when no token has been
// issued yet. Set overwrites whatever was there; last writer wins.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
}

// MemoryStore keeps the token for the lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryStore) Set(_ context.Context, token string) error {
	if token == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}
