package ports

import (
	"context"

	"maps-compat-service/internal/domain"
)

// Free-text place search, optionally biased around a point.
type TextSearchQuery struct {
	Query      string
	Near       *domain.Coordinates
	Categories []string
	Limit      int
}

// Category search around a fixed center.
type NearbyQuery struct {
	Center       domain.Coordinates
	RadiusMeters int
	Categories   []string
	Limit        int
}

// Typeahead suggestion query. SessionToken groups the keystrokes of one
// input session for backend-side billing.
type SuggestQuery struct {
	Query        string
	Near         *domain.Coordinates
	Limit        int
	SessionToken string
}

// Contract for looking up places on the mapping backend.
type PlaceProvider interface {
	// Search places matching a free-text query.
	TextSearch(ctx context.Context, q TextSearchQuery) ([]domain.NormalizedPlace, error)

	// Fetch a single place by its backend identifier.
	PlaceDetails(ctx context.Context, id string) (*domain.NormalizedPlace, error)

	// Search places of the given categories around a center point.
	NearbySearch(ctx context.Context, q NearbyQuery) ([]domain.NormalizedPlace, error)

	// Return typeahead suggestions for a partial query.
	Suggest(ctx context.Context, q SuggestQuery) ([]domain.Suggestion, error)
}
