package roster

import (
	"context"
	"sync"
)

// InMemoryStore is a Store backed by a slice. Used in tests and local
// development without Postgres.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []Record
	err     error
}

// NewInMemoryStore constructs an InMemoryStore seeded with records.
func NewInMemoryStore(records ...Record) *InMemoryStore {
	return &InMemoryStore{records: records}
}

// LoadAll returns a copy of the seeded records, or the configured error.
func (s *InMemoryStore) LoadAll(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// SetRecords replaces the seeded records.
func (s *InMemoryStore) SetRecords(records []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
}

// FailWith makes subsequent LoadAll calls return err.
func (s *InMemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
