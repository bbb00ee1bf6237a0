package appointments

import (
	"context"
	"sync"
	"time"

	"wathiq/pkg/platform/sentinel"
)

// InMemoryLedger is a Ledger backed by a slice with a mutex making Append's
// check-and-append atomic. Used in tests and local development.
type InMemoryLedger struct {
	mu      sync.RWMutex
	records []Record
}

// NewInMemoryLedger constructs an empty InMemoryLedger.
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{}
}

// ListByDate returns a copy of the records for date.
func (l *InMemoryLedger) ListByDate(ctx context.Context, date time.Time) ([]Record, error) {
	date = DateOnly(date)
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Record
	for _, rec := range l.records {
		if rec.Date.Equal(date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Append appends rec unless a cap is already met.
func (l *InMemoryLedger) Append(ctx context.Context, rec Record, perSlotCap, perDayCap int) error {
	rec.Date = DateOnly(rec.Date)
	l.mu.Lock()
	defer l.mu.Unlock()

	day, slot := 0, 0
	for _, existing := range l.records {
		if !existing.Date.Equal(rec.Date) {
			continue
		}
		day++
		if existing.Slot == rec.Slot {
			slot++
		}
	}
	if day >= perDayCap || slot >= perSlotCap {
		return sentinel.ErrCapacityReached
	}

	l.records = append(l.records, rec)
	return nil
}

// All returns a copy of every record, for test assertions.
func (l *InMemoryLedger) All() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}
