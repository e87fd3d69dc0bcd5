package ports

import (
	"context"
	"time"

	"maps-compat-service/internal/domain"
)

// Port: batched cache for reverse-geocoded address labels, keyed by a
// canonical rounded-coordinate string.
type RevGeocodeCache interface {
	// Fetch cached labels for the given keys. Misses are simply absent
	// from the result map.
	GetMany(ctx context.Context, keys []string) (map[string]string, error)

	// Store resolved labels. Existing entries are overwritten.
	PutMany(ctx context.Context, labels map[string]string) error
}

// Port: cache for normalized place records, keyed by backend place ID.
type PlaceCache interface {
	// Fetch a cached place. A nil result with a nil error is a miss.
	Get(ctx context.Context, id string) (*domain.NormalizedPlace, error)

	// Store a place under its ID for the given TTL.
	Put(ctx context.Context, place *domain.NormalizedPlace, ttl time.Duration) error
}
