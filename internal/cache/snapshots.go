package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fluxterm/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const (
	snapshotKeyPrefix = "snapshot:"
	snapshotTTL       = 60 * time.Second
)

// SnapshotCache mirrors the latest per-symbol snapshot into redis so
// external consumers can read market state without hitting the engine.
type SnapshotCache struct {
	tracer trace.Tracer
	redis  RedisClient
}

func NewSnapshotCache(tracer trace.Tracer, redisClient RedisClient) *SnapshotCache {
	return &SnapshotCache{tracer: tracer, redis: redisClient}
}

// SaveAll writes every snapshot under its own key. Entries expire so a
// stalled engine does not serve stale market state indefinitely.
func (c *SnapshotCache) SaveAll(ctx context.Context, snapshots []domain.CoinSnapshot) error {
	ctx, span := c.tracer.Start(ctx, "snapshot-cache.save-all")
	defer span.End()

	for _, snap := range snapshots {
		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("encode snapshot %s: %w", snap.Symbol, err)
		}
		if err := c.redis.Set(ctx, snapshotKeyPrefix+snap.Symbol, data, snapshotTTL).Err(); err != nil {
			return fmt.Errorf("save snapshot %s: %w", snap.Symbol, err)
		}
	}
	return nil
}

// Get returns the cached snapshot for a symbol, or nil when absent.
func (c *SnapshotCache) Get(ctx context.Context, symbol string) (*domain.CoinSnapshot, error) {
	ctx, span := c.tracer.Start(ctx, "snapshot-cache.get")
	defer span.End()

	data, err := c.redis.Get(ctx, snapshotKeyPrefix+symbol).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", symbol, err)
	}
	var snap domain.CoinSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", symbol, err)
	}
	return &snap, nil
}
