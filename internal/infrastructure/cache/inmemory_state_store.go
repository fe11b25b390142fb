package cache

import (
	"context"
	"slices"
	"sync"

	"github.com/storefront/backend/internal/domain/shared"
)

// InMemoryStateStore implements StateStorage using an in-memory map.
// State lives for the process lifetime only; it backs tests and the
// fallback when no durable backend is reachable.
type InMemoryStateStore struct {
	mu      sync.RWMutex
	entries map[shared.Namespace][]byte
}

// NewInMemoryStateStore creates a new in-memory state store
func NewInMemoryStateStore() *InMemoryStateStore {
	return &InMemoryStateStore{
		entries: make(map[shared.Namespace][]byte),
	}
}

// Save stores a private copy of payload under ns
func (s *InMemoryStateStore) Save(ctx context.Context, ns shared.Namespace, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[ns] = slices.Clone(payload)
	return nil
}

// Load returns a copy of the payload stored under ns
func (s *InMemoryStateStore) Load(ctx context.Context, ns shared.Namespace) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.entries[ns]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(payload), true, nil
}

// Size returns the number of namespaces stored (for testing/monitoring)
func (s *InMemoryStateStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure InMemoryStateStore implements StateStorage
var _ shared.StateStorage = (*InMemoryStateStore)(nil)
