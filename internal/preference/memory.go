package preference

import (
	"context"
	"sync"
)

type memoryKey struct {
	clientID string
	key      string
}

// MemoryStore keeps preferences for the life of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[memoryKey]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[memoryKey]string)}
}

func (s *MemoryStore) Get(ctx context.Context, clientID, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validate(clientID, key); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[memoryKey{clientID, key}]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(ctx context.Context, clientID, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validate(clientID, key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[memoryKey{clientID, key}] = value
	return nil
}

func (s *MemoryStore) Close() error { return nil }
