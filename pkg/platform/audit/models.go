// Package audit defines the audit trail emitted by the intake pipeline and
// the staff dashboard. Events are transport-agnostic so stores and sinks
// can fan out.
package audit

import (
	"context"
	"time"
)

// Action names what happened. The set is closed; new actions are added here
// so downstream consumers can rely on the vocabulary.
type Action string

const (
	ActionRequestIssued       Action = "request_issued"
	ActionRequestRejected     Action = "request_rejected"
	ActionAppointmentReserved Action = "appointment_reserved"
	ActionStaffLogin          Action = "staff_login"
	ActionStaffLoginFailed    Action = "staff_login_failed"
)

// Event is one audit record. Claimant carries the submitted display name,
// not the matched roster name, so the trail reflects what the person typed.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	RequestID string            `json:"request_id,omitempty"`
	Action    Action            `json:"action"`
	Claimant  string            `json:"claimant,omitempty"`
	Code      string            `json:"code,omitempty"`
	Detail    map[string]string `json:"detail,omitempty"`
}

// Store persists events. Implementations must tolerate concurrent Append.
type Store interface {
	Append(ctx context.Context, event Event) error
}
