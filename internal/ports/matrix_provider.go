package ports

import (
	"context"

	"maps-compat-service/internal/domain"
)

// One origin-destination entry of a travel matrix. OK is false when the
// backend could not route that pair.
type MatrixCell struct {
	DistanceMeters  int
	DurationSeconds int
	OK              bool
}

// All-pairs matrix request. Region is the bounding box enclosing every
// origin and destination.
type MatrixQuery struct {
	Origins      []domain.Coordinates
	Destinations []domain.Coordinates
	Region       domain.Bounds
	Options      domain.RouteOptions
}

// Contract for computing travel matrices on the mapping backend.
type MatrixProvider interface {
	// Compute the full origins x destinations matrix. The result is
	// indexed [origin][destination] and always has the full dimensions;
	// unroutable pairs carry OK=false.
	CalculateMatrix(ctx context.Context, q MatrixQuery) ([][]MatrixCell, error)
}
