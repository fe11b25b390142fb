// Package statetest provides StateStorage doubles for service tests.
package statetest

import (
	"context"
	"slices"
	"sync"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// Storage is an in-memory StateStorage whose saves can be made to fail.
type Storage struct {
	mu      sync.Mutex
	data    map[shared.Namespace][]byte
	saves   map[shared.Namespace]int
	saveErr error
	loadErr error
}

// NewStorage returns an empty Storage
func NewStorage() *Storage {
	return &Storage{
		data:  map[shared.Namespace][]byte{},
		saves: map[shared.Namespace]int{},
	}
}

// FailSaves makes every following Save return err; nil restores normal behaviour.
func (s *Storage) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// FailLoads makes every following Load return err
func (s *Storage) FailLoads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// Put seeds a raw payload without counting it as a save
func (s *Storage) Put(ns shared.Namespace, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[ns] = slices.Clone(payload)
}

// Raw returns the stored payload for ns
func (s *Storage) Raw(ns shared.Namespace) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.data[ns])
}

// Saves returns how many successful saves ns received
func (s *Storage) Saves(ns shared.Namespace) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves[ns]
}

func (s *Storage) Save(_ context.Context, ns shared.Namespace, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data[ns] = slices.Clone(payload)
	s.saves[ns]++
	return nil
}

func (s *Storage) Load(_ context.Context, ns shared.Namespace) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, false, s.loadErr
	}
	payload, ok := s.data[ns]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(payload), true, nil
}

// MockStorage is a testify mock of StateStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(ctx context.Context, ns shared.Namespace, payload []byte) error {
	args := m.Called(ctx, ns, payload)
	return args.Error(0)
}

func (m *MockStorage) Load(ctx context.Context, ns shared.Namespace) ([]byte, bool, error) {
	args := m.Called(ctx, ns)
	var payload []byte
	if v := args.Get(0); v != nil {
		payload = v.([]byte)
	}
	return payload, args.Bool(1), args.Error(2)
}

var (
	_ shared.StateStorage = (*Storage)(nil)
	_ shared.StateStorage = (*MockStorage)(nil)
)
