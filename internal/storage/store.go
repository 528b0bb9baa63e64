// Package storage keeps small per-visitor key-value blobs, the server-side
// counterpart of a browser's local storage. Values are opaque strings (JSON in
// practice); callers own decoding and fall back to defaults on bad data.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Store persists string values per visitor and key.
type Store interface {
	// Get returns the value and whether it exists.
	Get(ctx context.Context, visitorID, key string) (string, bool, error)
	Set(ctx context.Context, visitorID, key, value string) error
	Delete(ctx context.Context, visitorID, key string) error
	HealthCheck(ctx context.Context) error
}

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	values map[string]map[string]string
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]map[string]string),
	}
}

func (s *MemoryStore) Get(_ context.Context, visitorID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[visitorID][key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, visitorID, key, value string) error {
	if visitorID == "" {
		return fmt.Errorf("visitor id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blobs, ok := s.values[visitorID]
	if !ok {
		blobs = make(map[string]string)
		s.values[visitorID] = blobs
	}
	blobs[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, visitorID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values[visitorID], key)
	return nil
}

func (s *MemoryStore) HealthCheck(context.Context) error {
	return nil
}
