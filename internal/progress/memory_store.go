package progress

import (
	"context"
	"sync"
)

// memoryStore is an in-process Store. Used by tests and single-node dev setups
// without Redis.
type memoryStore struct {
	mu    sync.RWMutex
	flags map[string]map[string]string // traineeID -> key -> value
}

// NewMemoryStore creates an in-memory progress store.
func NewMemoryStore() Store {
	return &memoryStore{flags: make(map[string]map[string]string)}
}

func (s *memoryStore) Get(ctx context.Context, traineeID, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[traineeID][key] == "1", nil
}

func (s *memoryStore) Set(ctx context.Context, traineeID, key string) error {
	return s.SetValue(ctx, traineeID, key, "1")
}

func (s *memoryStore) GetValue(ctx context.Context, traineeID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[traineeID][key], nil
}

func (s *memoryStore) SetValue(ctx context.Context, traineeID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flags[traineeID] == nil {
		s.flags[traineeID] = make(map[string]string)
	}
	s.flags[traineeID][key] = value
	return nil
}

func (s *memoryStore) SetValueIfAbsent(ctx context.Context, traineeID, key, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.flags[traineeID][key]; ok {
		return false, nil
	}
	if s.flags[traineeID] == nil {
		s.flags[traineeID] = make(map[string]string)
	}
	s.flags[traineeID][key] = value
	return true, nil
}

func (s *memoryStore) ResetAll(ctx context.Context, traineeID string, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.flags[traineeID], k)
	}
	return nil
}
