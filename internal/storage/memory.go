package storage

import (
	"context"
	"sort"
	"sync"

	"stockpulse/feed/internal/update"
)

// MemoryStore is an in-memory UpdateStore used in tests and local runs
// without a database. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records []update.Record
	nextID  int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Insert(_ context.Context, rec update.Record) (update.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	stored := rec.WithID(s.nextID)
	s.records = append(s.records, stored)
	return stored, nil
}

func (s *MemoryStore) QueryAll(_ context.Context) ([]update.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]update.Record, len(s.records))
	copy(out, s.records)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
