package appointments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"wathiq/pkg/platform/sentinel"
)

// ErrExhausted is returned when no slot is free within the search horizon.
var ErrExhausted = errors.New("all slots within horizon are booked")

var (
	scanDepthDays = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wathiq_slot_scan_depth_days",
		Help:    "How many days ahead of today the allocated slot was found",
		Buckets: []float64{1, 2, 3, 5, 7, 14, 30, 90, 365},
	})
	reservationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wathiq_slot_reservations_total",
		Help: "Appointments reserved",
	})
)

// Allocator finds and reserves appointment slots. Allocation is first-fit
// and deterministic: earliest date starting tomorrow, then earliest catalog
// slot, wins.
//
// Reserve serializes find-then-append behind one mutex per Allocator, and
// the Ledger's Append is itself conditional, so the capacity caps hold both
// within this process and across instances sharing a ledger.
type Allocator struct {
	ledger      Ledger
	catalog     []Slot
	perSlotCap  int
	perDayCap   int
	horizonDays int
	logger      *slog.Logger

	mu sync.Mutex
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Allocator) { a.logger = logger }
}

// New constructs an Allocator. The catalog's declared order defines
// allocation priority within a day; horizonDays bounds the forward scan so
// a globally exhausted calendar surfaces ErrExhausted instead of spinning.
func New(ledger Ledger, catalog []Slot, perSlotCap, perDayCap, horizonDays int, opts ...Option) *Allocator {
	a := &Allocator{
		ledger:      ledger,
		catalog:     catalog,
		perSlotCap:  perSlotCap,
		perDayCap:   perDayCap,
		horizonDays: horizonDays,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FindSlot returns the first free (slot, date) at or after tomorrow relative
// to now. It does not reserve anything; a probe result can be taken by a
// concurrent request before Reserve runs.
func (a *Allocator) FindSlot(ctx context.Context, now time.Time) (Slot, time.Time, error) {
	for offset := 1; offset <= a.horizonDays; offset++ {
		date := DateOnly(now).AddDate(0, 0, offset)

		records, err := a.ledger.ListByDate(ctx, date)
		if err != nil {
			return Slot{}, time.Time{}, fmt.Errorf("read capacity ledger for %s: %w", date.Format("2006-01-02"), err)
		}

		// A full day is skipped without inspecting per-slot counts.
		if len(records) >= a.perDayCap {
			continue
		}

		bySlot := make(map[string]int, len(a.catalog))
		for _, rec := range records {
			bySlot[rec.Slot]++
		}
		for _, slot := range a.catalog {
			if bySlot[slot.Label()] < a.perSlotCap {
				scanDepthDays.Observe(float64(offset))
				return slot, date, nil
			}
		}
	}
	return Slot{}, time.Time{}, ErrExhausted
}

// Reserve finds the first free slot and appends a reservation for name. If a
// concurrent writer takes the seat between the scan and the append, the
// conditional append fails and the scan repeats; every such failure means a
// (date, slot) pair reached its cap, so the loop terminates within the
// horizon's finite capacity.
func (a *Allocator) Reserve(ctx context.Context, name string, now time.Time) (Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for {
		slot, date, err := a.FindSlot(ctx, now)
		if err != nil {
			return Record{}, err
		}

		rec := Record{
			Name:      name,
			Date:      date,
			Slot:      slot.Label(),
			CreatedAt: now.UTC(),
		}
		err = a.ledger.Append(ctx, rec, a.perSlotCap, a.perDayCap)
		if errors.Is(err, sentinel.ErrCapacityReached) {
			a.logger.Debug("lost slot to concurrent reservation, rescanning",
				"date", date.Format("2006-01-02"), "slot", slot.Label())
			continue
		}
		if err != nil {
			return Record{}, fmt.Errorf("append reservation: %w", err)
		}

		reservationsTotal.Inc()
		return rec, nil
	}
}
