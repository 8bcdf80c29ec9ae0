package filestore

import (
	"context"
	"sync"

	"skillchain/internal/sentinel"
)

// InMemoryStore keeps pinned blobs in memory. Content addressing makes
// writes idempotent: identical bytes land on the same key.
type InMemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{blobs: make(map[string][]byte)}
}

func (s *InMemoryStore) Put(_ context.Context, cid string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.blobs[cid]; exists {
		return nil
	}
	s.blobs[cid] = append([]byte(nil), data...)
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, cid string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if data, ok := s.blobs[cid]; ok {
		return append([]byte(nil), data...), nil
	}
	return nil, sentinel.ErrNotFound
}
