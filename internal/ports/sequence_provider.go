package ports

import (
	"context"

	"maps-compat-service/internal/domain"
)

// Waypoint ordering request. Start and End are fixed endpoints; the
// backend picks the visiting order of the intermediates.
type SequenceQuery struct {
	Start         domain.Coordinates
	End           domain.Coordinates
	Intermediates []domain.Coordinates
	Options       domain.RouteOptions
}

// Contract for waypoint-order optimization on the mapping backend.
type SequenceProvider interface {
	// Return the optimized visiting order as indexes into the query's
	// Intermediates slice. The result is a permutation of 0..n-1.
	OptimizeSequence(ctx context.Context, q SequenceQuery) ([]int, error)
}
