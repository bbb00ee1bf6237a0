// Package appointments allocates in-person verification slots against an
// append-only reservation ledger with per-slot and per-day capacity caps.
package appointments

import "time"

// Slot is one time-of-day window. Identity is positional: the catalog index
// determines iteration order and tie-breaking, so slots are immutable once
// declared.
type Slot struct {
	Start string
	End   string
}

// Label is the wire and ledger form of a slot, e.g. "09:00-10:00".
func (s Slot) Label() string {
	return s.Start + "-" + s.End
}

// DefaultCatalog is the workday slot catalog: five windows with a midday
// gap. Order defines allocation priority within a day.
func DefaultCatalog() []Slot {
	return []Slot{
		{"09:00", "10:00"},
		{"10:00", "11:00"},
		{"11:00", "12:00"},
		{"13:30", "14:30"},
		{"14:30", "15:00"},
	}
}

// Record is one reservation. Records are append-only: once written they are
// never mutated or deleted by this system. The set of records for one date
// is that date's capacity ledger.
type Record struct {
	Name      string
	Date      time.Time // date-only, midnight UTC
	Slot      string    // slot label
	CreatedAt time.Time
}

// DateOnly truncates t to midnight UTC so ledger dates compare by equality.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
