package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wathiq/pkg/platform/sentinel"
)

const snapshotKey = "roster:snapshot"

// SnapshotCache shares a loaded roster snapshot across replicas through
// Redis. Staleness inside the TTL window is acceptable by design: new
// roster entries appear within one cache cycle.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache constructs a SnapshotCache.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot, or sentinel.ErrNotFound when the key is
// absent or expired.
func (c *SnapshotCache) Get(ctx context.Context) ([]Record, error) {
	payload, err := c.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get roster snapshot: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(payload, &records); err != nil {
		// A snapshot written by an incompatible version; treat as a miss.
		return nil, sentinel.ErrNotFound
	}
	return records, nil
}

// Set stores the snapshot with the configured TTL.
func (c *SnapshotCache) Set(ctx context.Context, records []Record) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode roster snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set roster snapshot: %w", err)
	}
	return nil
}
