package roster

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "wathiq/pkg/domain-errors"
)

type countingStore struct {
	inner *InMemoryStore
	loads atomic.Int32
}

func (c *countingStore) LoadAll(ctx context.Context) ([]Record, error) {
	c.loads.Add(1)
	return c.inner.LoadAll(ctx)
}

func testRoster() []Record {
	return []Record{
		{FullName: "أحمد علي", Attributes: map[string]string{
			AttrFullName:   "أحمد علي",
			AttrDepartment: "تقنيات الحاسوب",
			AttrAverage:    "87.5",
		}},
		{FullName: "فاطمة الزهراء محمد", Attributes: map[string]string{
			AttrFullName: "فاطمة الزهراء محمد",
		}},
		{FullName: "محمد عبد الكريم صالح", Attributes: map[string]string{
			AttrFullName: "محمد عبد الكريم صالح",
		}},
	}
}

func TestMatch(t *testing.T) {
	ctx := context.Background()
	svc := New(NewInMemoryStore(testRoster()...), 90, time.Minute)

	t.Run("exact display name matches", func(t *testing.T) {
		rec, err := svc.Match(ctx, "أحمد علي")
		require.NoError(t, err)
		assert.Equal(t, "أحمد علي", rec.FullName)
	})

	t.Run("spelling variant matches", func(t *testing.T) {
		// Bare alef and dotless ya, as users commonly type it.
		rec, err := svc.Match(ctx, "احمد على")
		require.NoError(t, err)
		assert.Equal(t, "أحمد علي", rec.FullName)
	})

	t.Run("query missing a trailing token matches", func(t *testing.T) {
		rec, err := svc.Match(ctx, "فاطمة الزهراء")
		require.NoError(t, err)
		assert.Equal(t, "فاطمة الزهراء محمد", rec.FullName)
	})

	t.Run("unrelated name is rejected", func(t *testing.T) {
		_, err := svc.Match(ctx, "زينب حسين جاسم")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNameNotFound))
	})

	t.Run("empty and non-arabic input are rejected without error", func(t *testing.T) {
		for _, input := range []string{"", "   ", "John Smith", "12345"} {
			_, err := svc.Match(ctx, input)
			require.Error(t, err, "input %q", input)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeNameNotFound), "input %q", input)
		}
	})
}

func TestMatchTieBreaksByRosterOrder(t *testing.T) {
	ctx := context.Background()
	// Two records normalizing to the same key; the first must win.
	store := NewInMemoryStore(
		Record{FullName: "أحمد علي", Attributes: map[string]string{"rank": "1"}},
		Record{FullName: "احمد علي", Attributes: map[string]string{"rank": "2"}},
	)
	svc := New(store, 90, time.Minute)

	rec, err := svc.Match(ctx, "احمد علي")
	require.NoError(t, err)
	assert.Equal(t, "أحمد علي", rec.FullName)
	assert.Equal(t, "1", rec.Attributes["rank"])
}

func TestMatchRosterUnavailable(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	store.FailWith(errors.New("connection refused"))
	svc := New(store, 90, time.Minute)

	_, err := svc.Match(ctx, "أحمد علي")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeRosterUnavailable))
}

func TestMatchEmptyRoster(t *testing.T) {
	ctx := context.Background()
	svc := New(NewInMemoryStore(), 90, time.Minute)

	_, err := svc.Match(ctx, "أحمد علي")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNameNotFound))
}

func TestLoadCachesWithinTTL(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{inner: NewInMemoryStore(testRoster()...)}
	svc := New(store, 90, time.Hour)

	for range 5 {
		_, err := svc.Load(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), store.loads.Load(), "snapshot must be reused within the TTL")
}

func TestLoadRefreshesAfterTTL(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{inner: NewInMemoryStore(testRoster()...)}
	svc := New(store, 90, time.Millisecond)

	_, err := svc.Load(ctx)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(2), store.loads.Load(), "expired snapshot must be reloaded")
}
