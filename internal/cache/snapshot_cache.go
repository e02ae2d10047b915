package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumierefi/store_api/internal/models"
)

// SnapshotCache persists per-session store snapshots as single JSON values
// in Redis. It implements store.SnapshotStore: a load that finds nothing
// usable (absent key, corrupt JSON, wrong shape) reports (nil, nil) so the
// caller falls back to empty defaults instead of failing.
type SnapshotCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewSnapshotCache creates a SnapshotCache. Snapshots expire after ttl of
// inactivity; every save refreshes it.
func NewSnapshotCache(redis *RedisClient, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{redis: redis, ttl: ttl}
}

func (c *SnapshotCache) key(session string) string {
	return fmt.Sprintf("store:snapshot:%s", session)
}

// Load fetches and decodes a session snapshot.
func (c *SnapshotCache) Load(ctx context.Context, session string) (*models.Snapshot, error) {
	raw, err := c.redis.Get(ctx, c.key(session))
	if err != nil {
		if IsNil(err) {
			return nil, nil
		}
		return nil, err
	}
	return DecodeSnapshot([]byte(raw)), nil
}

// Save serializes and writes a session snapshot.
func (c *SnapshotCache) Save(ctx context.Context, session string, snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return c.redis.Set(ctx, c.key(session), string(data), c.ttl)
}

// DecodeSnapshot parses a persisted snapshot payload. Any parse failure or
// shape mismatch (cart or favorites missing or not an object) yields nil:
// garbage on disk behaves exactly like nothing persisted.
func DecodeSnapshot(data []byte) *models.Snapshot {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil
	}
	if snap.Cart == nil || snap.Favorites == nil {
		return nil
	}
	return &snap
}
