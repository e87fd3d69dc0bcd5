package ports

import (
	"context"

	"maps-compat-service/internal/domain"
)

// Contract for forward and reverse geocoding on the mapping backend.
type GeocodeProvider interface {
	// Resolve a free-text address into candidate places.
	Geocode(ctx context.Context, address string) ([]domain.NormalizedPlace, error)

	// Resolve a coordinate into the nearest addressable place. A nil
	// result with a nil error means nothing addressable was found there.
	ReverseGeocode(ctx context.Context, at domain.Coordinates) (*domain.NormalizedPlace, error)
}
