//go:build integration

package appointments

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wathiq/pkg/platform/sentinel"
	"wathiq/pkg/testutil/containers"
)

const appointmentsSchema = `
CREATE TABLE IF NOT EXISTS appointments (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT        NOT NULL,
	date       DATE        NOT NULL,
	slot       TEXT        NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS appointments_date_idx ON appointments (date, slot);
`

func setupLedger(t *testing.T) *PostgresLedger {
	t.Helper()
	pg := containers.NewPostgresContainer(t)
	_, err := pg.Pool.Exec(context.Background(), appointmentsSchema)
	require.NoError(t, err)
	return NewPostgresLedger(pg.Pool)
}

func TestPostgresLedgerAppendAndList(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()
	date := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	rec := Record{Name: "احمد علي", Date: date, Slot: "09:00-10:00", CreatedAt: time.Now().UTC()}
	require.NoError(t, ledger.Append(ctx, rec, 20, 100))

	records, err := ledger.ListByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "احمد علي", records[0].Name)
	assert.Equal(t, "09:00-10:00", records[0].Slot)
	assert.True(t, records[0].Date.Equal(date))
}

func TestPostgresLedgerEnforcesCaps(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()
	date := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)

	rec := func(slot string) Record {
		return Record{Name: "x", Date: date, Slot: slot, CreatedAt: time.Now().UTC()}
	}

	require.NoError(t, ledger.Append(ctx, rec("09:00-10:00"), 2, 3))
	require.NoError(t, ledger.Append(ctx, rec("09:00-10:00"), 2, 3))
	assert.ErrorIs(t, ledger.Append(ctx, rec("09:00-10:00"), 2, 3), sentinel.ErrCapacityReached)

	require.NoError(t, ledger.Append(ctx, rec("10:00-11:00"), 2, 3))
	assert.ErrorIs(t, ledger.Append(ctx, rec("10:00-11:00"), 2, 3), sentinel.ErrCapacityReached)
}

// Concurrent appends against the same slot must never exceed the cap; the
// advisory lock serializes the count-then-insert.
func TestPostgresLedgerConcurrentAppends(t *testing.T) {
	ledger := setupLedger(t)
	ctx := context.Background()
	date := time.Date(2026, time.April, 3, 0, 0, 0, 0, time.UTC)

	const workers = 16
	const seats = 5

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = ledger.Append(ctx, Record{
				Name: "worker", Date: date, Slot: "09:00-10:00", CreatedAt: time.Now().UTC(),
			}, seats, 100)
		}()
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		default:
			require.ErrorIs(t, err, sentinel.ErrCapacityReached)
			lost++
		}
	}
	assert.Equal(t, seats, won)
	assert.Equal(t, workers-seats, lost)

	records, err := ledger.ListByDate(ctx, date)
	require.NoError(t, err)
	assert.Len(t, records, seats)
}
