package appointments

import (
	"context"
	"time"
)

// Ledger is the append-only reservation store. No update or delete exists.
//
// Append enforces the capacity caps at the storage boundary: it must reject
// the record with sentinel.ErrCapacityReached when the target date already
// holds perDayCap records or the (date, slot) pair already holds perSlotCap.
// The check-and-append must be atomic with respect to concurrent Appends —
// this is the conditional write that keeps two racing requests from both
// landing in the last free seat.
type Ledger interface {
	// ListByDate returns the capacity ledger for one date.
	ListByDate(ctx context.Context, date time.Time) ([]Record, error)

	// Append conditionally appends rec within the given caps.
	Append(ctx context.Context, rec Record, perSlotCap, perDayCap int) error
}
