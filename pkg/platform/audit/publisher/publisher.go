// Package publisher emits audit events with fail-open semantics: a request
// must never be rejected because the audit trail is unavailable. Failed
// appends are logged and dropped.
package publisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	audit "wathiq/pkg/platform/audit"
)

// Publisher writes events to a Store, optionally through an async buffer.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger

	events chan audit.Event
	wg     sync.WaitGroup
	once   sync.Once
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets the logger used to report dropped events.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger.With(slog.String("component", "audit_publisher"))
		}
	}
}

// WithAsyncBuffer switches Emit to a buffered channel drained by a single
// worker. When the buffer is full Emit drops the event rather than block
// the request path.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.events = make(chan audit.Event, size)
	}
}

// NewPublisher creates a publisher over store.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.events != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.events {
		// The request context is gone by the time the worker runs.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := p.store.Append(ctx, event); err != nil {
			p.logger.Error("audit append failed",
				slog.String("action", string(event.Action)),
				slog.String("error", err.Error()))
		}
		cancel()
	}
}

// Emit records event. It never returns an error; audit failures are logged.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if p.events != nil {
		select {
		case p.events <- event:
		default:
			p.logger.Warn("audit buffer full, event dropped",
				slog.String("action", string(event.Action)))
		}
		return
	}

	if err := p.store.Append(ctx, event); err != nil {
		p.logger.Error("audit append failed",
			slog.String("action", string(event.Action)),
			slog.String("error", err.Error()))
	}
}

// Close stops the async worker after draining buffered events. Safe to call
// on a synchronous publisher and safe to call twice.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.events != nil {
			close(p.events)
			p.wg.Wait()
		}
	})
}
