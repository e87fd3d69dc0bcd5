package ports

import (
	"context"

	"maps-compat-service/internal/domain"
)

// One maneuver within a section. Offset indexes into the section's
// geometry; the step's own coordinates are reconstructed from it.
type RawStep struct {
	Offset          int
	DistanceMeters  int
	DurationSeconds int
	Instruction     string
}

// A leg of a raw backend route between two consecutive stops.
// DeparturePlace and ArrivalPlace are the backend's snapped endpoints;
// they can differ from the first and last geometry vertices.
type RawSection struct {
	Geometry        []domain.Coordinates
	Steps           []RawStep
	RoadLabels      []string
	DistanceMeters  int
	DurationSeconds int
	DeparturePlace  *domain.Coordinates
	ArrivalPlace    *domain.Coordinates
}

// A route as the backend returns it, before legacy translation.
type RawRoute struct {
	Sections []RawSection
}

// Routing request against the backend.
type RouteQuery struct {
	Origin       domain.Coordinates
	Destination  domain.Coordinates
	Waypoints    []domain.Coordinates
	Options      domain.RouteOptions
	Alternatives int
}

// Contract for calculating routes on the mapping backend.
type RouteProvider interface {
	// Calculate one or more routes through the query's stops, in ranking
	// order. The first route is the backend's preferred one.
	CalculateRoutes(ctx context.Context, q RouteQuery) ([]RawRoute, error)
}
