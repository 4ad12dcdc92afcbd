// Package storage provides key-value store implementations for the
// persisted slots (favorites, current user).
package storage

import (
	"sync"

	"github.com/davidlugo/recetasworld/internal/domain"
	"github.com/davidlugo/recetasworld/internal/logger"
)

// Compile-time interface check.
var _ domain.KeyValue = (*MemoryStore)(nil)

// MemoryStore keeps blobs in a map. Nothing survives the process; used
// in tests and for --ephemeral runs.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]string
	log   *logger.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string]string),
		log:   log,
	}
}

// Get returns the blob for key, or "" when absent.
func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blobs[key], nil
}

// Set stores a blob under key, overwriting any previous value.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = value
	s.log.Debug("set %s (%d bytes)", key, len(value))
	return nil
}

// Delete removes the blob for key. Absent keys are a no-op.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
