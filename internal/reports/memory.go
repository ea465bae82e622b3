package reports

import (
	"context"
	"sync"

	"github.com/emotube/backend/internal/models"
)

// MemoryStore is a process-local Store. The zero value is ready to use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]models.CacheEntry
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]models.CacheEntry)}
}

// Get returns a copy of the stored entry.
func (s *MemoryStore) Get(_ context.Context, videoID string) (models.CacheEntry, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[videoID]
	s.mu.RUnlock()
	if !ok {
		return models.CacheEntry{}, false, nil
	}
	return entry.Clone(), true, nil
}

// Put stores a copy of entry, replacing any previous one.
func (s *MemoryStore) Put(_ context.Context, entry models.CacheEntry) error {
	stored := entry.Clone()

	s.mu.Lock()
	if s.entries == nil {
		s.entries = make(map[string]models.CacheEntry)
	}
	s.entries[entry.VideoID] = stored
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ Store = (*MemoryStore)(nil)
