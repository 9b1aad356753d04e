package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used in tests and as a fallback
// when no redis address is configured. Records expire lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Create stores the record under the token hash.
func (s *MemoryStore) Create(ctx context.Context, tokenHash string, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *rec
	s.records[tokenHash] = &copied
	return nil
}

// Get loads the record for the token hash, honoring expiry.
func (s *MemoryStore) Get(ctx context.Context, tokenHash string) (*Record, error) {
	s.mu.RLock()
	rec, ok := s.records[tokenHash]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(rec.ExpiresAt) {
		s.mu.Lock()
		delete(s.records, tokenHash)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

// Delete removes the record for the token hash.
func (s *MemoryStore) Delete(ctx context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, tokenHash)
	return nil
}
