package roster

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"wathiq/internal/names"
	"wathiq/internal/roster/metrics"
	dErrors "wathiq/pkg/domain-errors"
	"wathiq/pkg/platform/sentinel"
)

// Service loads the roster through a bounded-staleness cache and answers
// match queries against it.
type Service struct {
	store     Store
	cache     *SnapshotCache
	threshold int
	ttl       time.Duration

	logger  *slog.Logger
	metrics *metrics.Metrics

	group singleflight.Group

	mu       sync.RWMutex
	snapshot []Record
	expires  time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics attaches roster metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSnapshotCache attaches a Redis snapshot cache shared across replicas.
// Without it the service still caches in process.
func WithSnapshotCache(cache *SnapshotCache) Option {
	return func(s *Service) { s.cache = cache }
}

// New constructs a roster Service. threshold is the minimum similarity score
// (0-100) a candidate must reach to be accepted; ttl bounds snapshot
// staleness.
func New(store Store, threshold int, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		store:     store,
		threshold: threshold,
		ttl:       ttl,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the current roster snapshot, refreshing it when the TTL has
// lapsed. Concurrent refreshes collapse into a single store read.
func (s *Service) Load(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	if s.snapshot != nil && time.Now().Before(s.expires) {
		snapshot := s.snapshot
		s.mu.RUnlock()
		s.metrics.RecordCacheHit()
		return snapshot, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.group.Do("roster", func() (any, error) {
		return s.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]Record), nil
}

// refresh pulls a snapshot from Redis when available, else from the store,
// and installs it locally.
func (s *Service) refresh(ctx context.Context) ([]Record, error) {
	if s.cache != nil {
		if records, err := s.cache.Get(ctx); err == nil {
			s.metrics.RecordCacheHit()
			s.install(records)
			return records, nil
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			// Redis being down must not take matching down with it.
			s.logger.Warn("roster snapshot cache read failed", "error", err)
		}
	}

	s.metrics.RecordCacheMiss()
	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	records = withMatchKeys(records)
	s.install(records)

	if s.cache != nil {
		if err := s.cache.Set(ctx, records); err != nil {
			s.logger.Warn("roster snapshot cache write failed", "error", err)
		}
	}
	return records, nil
}

func (s *Service) install(records []Record) {
	s.mu.Lock()
	s.snapshot = records
	s.expires = time.Now().Add(s.ttl)
	s.mu.Unlock()
}

// Match finds the roster record best matching inputName. The query is
// reduced to its match key and scored against every record's precomputed key
// with partial-ratio similarity; only the single best candidate is
// considered, and it is accepted only at or above the threshold. Ties go to
// the earliest roster record.
//
// Errors: CodeRosterUnavailable when the roster cannot be loaded,
// CodeNameNotFound when no candidate reaches the threshold.
func (s *Service) Match(ctx context.Context, inputName string) (Record, error) {
	records, err := s.Load(ctx)
	if err != nil {
		s.metrics.RecordOutcome("unavailable")
		return Record{}, dErrors.Wrap(err, dErrors.CodeRosterUnavailable, "roster could not be loaded")
	}

	key := names.MatchKey(inputName)
	if key == "" {
		s.metrics.RecordOutcome("not_found")
		return Record{}, dErrors.New(dErrors.CodeNameNotFound, "name not found in roster")
	}

	best := -1
	bestScore := 0
	for i, rec := range records {
		if rec.MatchKey == "" {
			continue
		}
		score := names.PartialRatio(key, rec.MatchKey)
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	if best < 0 || bestScore < s.threshold {
		s.metrics.RecordMatch("not_found", bestScore)
		return Record{}, dErrors.New(dErrors.CodeNameNotFound, "name not found in roster")
	}
	s.metrics.RecordMatch("matched", bestScore)
	return records[best], nil
}
