package memory

import (
	"context"
	"sync"
)

// SelectionStore is an in-process selection store used when Redis is not
// configured. Values are lost on restart.
type SelectionStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{values: make(map[string]string)}
}

func (s *SelectionStore) GetSelection(_ context.Context, userKey string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[userKey]
	return value, ok, nil
}

func (s *SelectionStore) SetSelection(_ context.Context, userKey, value string) error {
	s.mu.Lock()
	s.values[userKey] = value
	s.mu.Unlock()
	return nil
}

func (s *SelectionStore) ClearSelection(_ context.Context, userKey string) error {
	s.mu.Lock()
	delete(s.values, userKey)
	s.mu.Unlock()
	return nil
}
