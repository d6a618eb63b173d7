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

const prefsKey = "prefs:v1"

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// PrefStore persists the user configuration surface as a single JSON blob.
// The core never touches the store directly; it only exchanges Preferences
// values through this boundary.
type PrefStore struct {
	tracer trace.Tracer
	redis  RedisClient
}

func NewPrefStore(tracer trace.Tracer, redisClient RedisClient) *PrefStore {
	return &PrefStore{tracer: tracer, redis: redisClient}
}

// Load returns the persisted preferences, or nil when none are saved yet.
func (s *PrefStore) Load(ctx context.Context) (*domain.Preferences, error) {
	_, span := s.tracer.Start(ctx, "pref-store.load")
	defer span.End()

	data, err := s.redis.Get(ctx, prefsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return &prefs, nil
}

// Save writes the preferences. The blob has no TTL; it lives until the next
// save overwrites it.
func (s *PrefStore) Save(ctx context.Context, prefs domain.Preferences) error {
	_, span := s.tracer.Start(ctx, "pref-store.save")
	defer span.End()

	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.redis.Set(ctx, prefsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
