// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them; services read them without
// importing net/http.
//
// Usage in services:
//
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey    struct{}
	requestTimeKey  struct{}
	staffSubjectKey struct{}
)

// RequestID retrieves the request correlation ID, or "" when unset.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a request correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Now returns the request-scoped timestamp when one was captured, falling back
// to the wall clock. All stages of one submission see the same "now", which
// keeps the allocator's "tomorrow" stable across a midnight boundary.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific request time. Middleware calls this once per
// request; tests use it to pin the clock.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// StaffSubject retrieves the authenticated staff subject, or "" when the
// request is unauthenticated.
func StaffSubject(ctx context.Context) string {
	if s, ok := ctx.Value(staffSubjectKey{}).(string); ok {
		return s
	}
	return ""
}

// WithStaffSubject injects an authenticated staff subject.
func WithStaffSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, staffSubjectKey{}, subject)
}
