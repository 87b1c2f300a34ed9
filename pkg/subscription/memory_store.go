package subscription

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// memStore is an in-memory Store for tests and local development.
type memStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*Subscription
}

// NewMemStore returns an empty in-memory Store.
// All reads and writes deep-copy records so callers can never mutate stored
// state through a shared pointer.
func NewMemStore() Store {
	return &memStore{
		subs: make(map[uuid.UUID]*Subscription),
	}
}

func (s *memStore) Get(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[tenantID]
	if !ok {
		return nil, ErrNotFound
	}
	return sub.Clone(), nil
}

func (s *memStore) Save(ctx context.Context, sub *Subscription) error {
	if sub == nil {
		return ErrInvalidState
	}
	if sub.TenantID == uuid.Nil {
		return ErrMissingTenant
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs[sub.TenantID] = sub.Clone()
	return nil
}
