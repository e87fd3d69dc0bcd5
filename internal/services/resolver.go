package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/places"
	"maps-compat-service/internal/platform/obs"
	"maps-compat-service/internal/ports"
)

// LocationInput is one heterogeneous location argument after request
// parsing. Exactly one of Query, PlaceID or Coord is set.
type LocationInput struct {
	Query   string
	PlaceID string
	Coord   *domain.Coordinates
}

// Resolved is a location input pinned to a coordinate, plus whatever
// symbolic metadata the resolution produced.
type Resolved struct {
	Coord            domain.Coordinates
	PlaceID          string
	Types            []string
	FormattedAddress string
}

// HasMetadata reports whether resolution went through a symbolic lookup
// rather than a bare coordinate.
func (r Resolved) HasMetadata() bool {
	return r.PlaceID != "" || len(r.Types) > 0 || r.FormattedAddress != ""
}

// Resolver turns heterogeneous location inputs into coordinates.
type Resolver struct {
	Places ports.PlaceProvider
}

func NewResolver(placeProvider ports.PlaceProvider) *Resolver {
	return &Resolver{Places: placeProvider}
}

// Resolve pins one input to a coordinate. Query inputs take the first
// text-search hit; place IDs go through a details lookup; coordinates
// resolve locally with no backend call.
func (r *Resolver) Resolve(ctx context.Context, input LocationInput) (_ Resolved, err error) {
	defer obs.Time(ctx, "resolver.Resolve")(&err)

	switch {
	case input.Query != "":
		hits, err := r.Places.TextSearch(ctx, ports.TextSearchQuery{Query: input.Query, Limit: 1})
		if err != nil {
			return Resolved{}, fmt.Errorf("resolve query %q: %w", input.Query, err)
		}
		if len(hits) == 0 {
			return Resolved{}, fmt.Errorf("resolve query %q: no results", input.Query)
		}
		return resolvedFromPlace(hits[0]), nil

	case input.PlaceID != "":
		p, err := r.Places.PlaceDetails(ctx, input.PlaceID)
		if err != nil {
			return Resolved{}, fmt.Errorf("resolve place id %q: %w", input.PlaceID, err)
		}
		if p == nil {
			return Resolved{}, fmt.Errorf("resolve place id %q: not found", input.PlaceID)
		}
		return resolvedFromPlace(*p), nil

	case input.Coord != nil:
		return Resolved{Coord: *input.Coord}, nil

	default:
		return Resolved{}, errors.New("resolve: empty location input")
	}
}

// ResolveAll resolves a batch concurrently, preserving input order. Any
// single failure fails the whole batch.
func (r *Resolver) ResolveAll(ctx context.Context, inputs []LocationInput) ([]Resolved, error) {
	out := make([]Resolved, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			resolved, err := r.Resolve(gctx, input)
			if err != nil {
				return err
			}
			out[i] = resolved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func resolvedFromPlace(p domain.NormalizedPlace) Resolved {
	return Resolved{
		Coord:            p.Position,
		PlaceID:          p.ID,
		Types:            places.LegacyTypes(p),
		FormattedAddress: p.Label,
	}
}
