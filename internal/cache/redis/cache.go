package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"cryptodash/internal/models"
)

const snapshotKey = "cryptodash:assets:snapshot"

// SnapshotCache keeps the latest asset snapshot in Redis with a staleness
// TTL so repeated reads within the window skip the upstream fetch. A nil
// cache is valid and disables caching.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache connects to Redis. It returns nil (cache disabled) when
// the URL is empty or the connection cannot be established.
func NewSnapshotCache(redisURL string, ttl time.Duration) *SnapshotCache {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Invalid REDIS_URL, snapshot cache disabled: %v", err)
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable, snapshot cache disabled: %v", err)
		return nil
	}

	if ttl <= 0 {
		ttl = 2 * time.Minute
	}

	log.Println("Redis snapshot cache connected")
	return &SnapshotCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot, or ok=false on miss or any cache error.
func (c *SnapshotCache) Get(ctx context.Context) ([]models.Asset, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, snapshotKey).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("Snapshot cache read failed: %v", err)
		return nil, false
	}

	var assets []models.Asset
	if err := json.Unmarshal([]byte(raw), &assets); err != nil {
		log.Printf("Snapshot cache payload corrupt: %v", err)
		return nil, false
	}

	return assets, true
}

// Set stores a snapshot under the staleness TTL. Failures are logged, not
// propagated: the cache is an optimization, never a correctness dependency.
func (c *SnapshotCache) Set(ctx context.Context, assets []models.Asset) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(assets)
	if err != nil {
		log.Printf("Snapshot cache encode failed: %v", err)
		return
	}

	if err := c.client.Set(ctx, snapshotKey, raw, c.ttl).Err(); err != nil {
		log.Printf("Snapshot cache write failed: %v", err)
	}
}

// Invalidate drops the cached snapshot.
func (c *SnapshotCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		log.Printf("Snapshot cache invalidate failed: %v", err)
	}
}

// Close releases the underlying connection.
func (c *SnapshotCache) Close() error {
	if c == nil {
		return nil
	}
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}
