package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/platform/obs"
)

// RedisPlaceCache caches normalized place records as JSON blobs keyed by
// backend place ID.
type RedisPlaceCache struct {
	Client *redis.Client
}

func NewRedisPlaceCache(client *redis.Client) *RedisPlaceCache {
	return &RedisPlaceCache{Client: client}
}

func placeKey(id string) string {
	return "place:" + id
}

// Fetch a cached place. A nil result with a nil error is a miss.
func (r *RedisPlaceCache) Get(ctx context.Context, id string) (_ *domain.NormalizedPlace, err error) {
	defer obs.Time(ctx, "place.cache.Get")(&err)

	if r.Client == nil {
		return nil, errors.New("place cache: redis client is nil")
	}
	if id == "" {
		return nil, errors.New("place cache: id must be non-empty")
	}

	raw, err := r.Client.Get(ctx, placeKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get place cache %q: %w", id, err)
	}

	var p domain.NormalizedPlace
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("get place cache %q: unmarshal: %w", id, err)
	}
	return &p, nil
}

// Store a place under its ID for the given TTL.
func (r *RedisPlaceCache) Put(ctx context.Context, place *domain.NormalizedPlace, ttl time.Duration) error {
	if r.Client == nil {
		return errors.New("place cache: redis client is nil")
	}
	if place == nil || place.ID == "" {
		return errors.New("place cache: place must have an ID")
	}

	raw, err := json.Marshal(place)
	if err != nil {
		return fmt.Errorf("put place cache %q: marshal: %w", place.ID, err)
	}

	if err := r.Client.Set(ctx, placeKey(place.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("put place cache %q: %w", place.ID, err)
	}
	return nil
}
