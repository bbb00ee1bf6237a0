package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"wathiq/pkg/platform/sentinel"
)

// PostgresLedger persists reservations in the appointments table.
//
// Append runs inside a transaction holding an advisory lock keyed on the
// target date, so the count-then-insert is serialized per date even across
// multiple service instances sharing the database. A naive read-then-insert
// would let two racing requests both observe a free seat and both insert,
// exceeding the per-slot cap.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a PostgresLedger.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// ListByDate returns the capacity ledger for one date.
func (l *PostgresLedger) ListByDate(ctx context.Context, date time.Time) ([]Record, error) {
	rows, err := l.db.Query(ctx,
		`SELECT name, date, slot, created_at
		 FROM appointments
		 WHERE date = $1
		 ORDER BY created_at`,
		DateOnly(date),
	)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Name, &rec.Date, &rec.Slot, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		rec.Date = DateOnly(rec.Date)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Append conditionally appends rec within the caps.
func (l *PostgresLedger) Append(ctx context.Context, rec Record, perSlotCap, perDayCap int) (err error) {
	rec.Date = DateOnly(rec.Date)

	tx, err := l.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Serialize all appends for this date. An advisory xact lock is released
	// automatically at COMMIT/ROLLBACK and needs no lock table.
	if _, err = tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`,
		rec.Date.Format("2006-01-02"),
	); err != nil {
		return fmt.Errorf("acquire date lock: %w", err)
	}

	var dayCount, slotCount int
	if err = tx.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE slot = $2)
		 FROM appointments
		 WHERE date = $1`,
		rec.Date, rec.Slot,
	).Scan(&dayCount, &slotCount); err != nil {
		return fmt.Errorf("count appointments: %w", err)
	}
	if dayCount >= perDayCap || slotCount >= perSlotCap {
		return sentinel.ErrCapacityReached
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO appointments (name, date, slot, created_at)
		 VALUES ($1, $2, $3, $4)`,
		rec.Name, rec.Date, rec.Slot, rec.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit appointment: %w", err)
	}
	return nil
}
