package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and external-service
// clients return these (optionally wrapped) so services can translate them
// into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: conditional write lost to a concurrent writer
// - ErrCapacityReached: append rejected because a capacity cap is already met
// - ErrUnavailable: store or external service temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrCapacityReached = errors.New("capacity reached")
	ErrUnavailable     = errors.New("unavailable")
)
