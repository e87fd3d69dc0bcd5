package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/legacy"
	"maps-compat-service/internal/platform/obs"
	"maps-compat-service/internal/ports"
	"maps-compat-service/internal/regions"
	"maps-compat-service/internal/units"
)

// MatrixRequest is a parsed legacy distance-matrix call.
type MatrixRequest struct {
	Origins       []LocationInput
	Destinations  []LocationInput
	Mode          domain.TravelMode
	Avoid         domain.Avoidance
	DepartureTime *time.Time
	UnitSystem    *units.System
}

// MatrixService assembles legacy distance-matrix responses.
type MatrixService struct {
	Resolver *Resolver
	Matrix   ports.MatrixProvider
	Geocoder ports.GeocodeProvider
	Cache    ports.RevGeocodeCache
}

func NewMatrixService(resolver *Resolver, matrix ports.MatrixProvider, geocoder ports.GeocodeProvider, cache ports.RevGeocodeCache) *MatrixService {
	return &MatrixService{Resolver: resolver, Matrix: matrix, Geocoder: geocoder, Cache: cache}
}

// Calculate runs the full matrix pipeline. Failures collapse to
// UNKNOWN_ERROR with the cause logged.
func (s *MatrixService) Calculate(ctx context.Context, req MatrixRequest) (*legacy.DistanceMatrixResult, legacy.Status) {
	res, err := s.calculate(ctx, req)
	if err != nil {
		log.Printf("distance matrix failed err=%q", err)
		return nil, legacy.StatusUnknownError
	}
	return res, legacy.StatusOK
}

func (s *MatrixService) calculate(ctx context.Context, req MatrixRequest) (_ *legacy.DistanceMatrixResult, err error) {
	defer obs.Time(ctx, "matrix.calculate")(&err)

	if len(req.Origins) == 0 || len(req.Destinations) == 0 {
		return nil, fmt.Errorf("matrix: origins and destinations must be non-empty")
	}

	origins, err := s.Resolver.ResolveAll(ctx, req.Origins)
	if err != nil {
		return nil, fmt.Errorf("resolve origins: %w", err)
	}
	destinations, err := s.Resolver.ResolveAll(ctx, req.Destinations)
	if err != nil {
		return nil, fmt.Errorf("resolve destinations: %w", err)
	}

	originCoords := make([]domain.Coordinates, len(origins))
	for i, o := range origins {
		originCoords[i] = o.Coord
	}
	destinationCoords := make([]domain.Coordinates, len(destinations))
	for i, d := range destinations {
		destinationCoords[i] = d.Coord
	}

	var region domain.Bounds
	for _, c := range originCoords {
		region.Extend(c)
	}
	for _, c := range destinationCoords {
		region.Extend(c)
	}

	cells, err := s.Matrix.CalculateMatrix(ctx, ports.MatrixQuery{
		Origins:      originCoords,
		Destinations: destinationCoords,
		Region:       region,
		Options: domain.RouteOptions{
			Mode:          req.Mode,
			Avoid:         req.Avoid,
			DepartureTime: req.DepartureTime,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("calculate matrix: %w", err)
	}
	if len(cells) != len(originCoords) {
		return nil, fmt.Errorf("matrix rows = %d, want %d", len(cells), len(originCoords))
	}

	// Origin and destination labels are independent batches; they run
	// concurrently and individual failures degrade to empty labels.
	var originAddrs, destinationAddrs []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		originAddrs = s.labelAll(gctx, originCoords)
		return nil
	})
	g.Go(func() error {
		destinationAddrs = s.labelAll(gctx, destinationCoords)
		return nil
	})
	_ = g.Wait()

	sys := unitSystemForMatrix(originCoords, req.UnitSystem)

	result := &legacy.DistanceMatrixResult{
		OriginAddresses:      originAddrs,
		DestinationAddresses: destinationAddrs,
	}
	for i := range cells {
		row := legacy.DistanceMatrixRow{Elements: make([]legacy.DistanceMatrixElement, 0, len(cells[i]))}
		for _, cell := range cells[i] {
			row.Elements = append(row.Elements, legacy.DistanceMatrixElement{
				Status:   legacy.StatusOK,
				Distance: textValue(cell.DistanceMeters, sys),
				Duration: durationValue(cell.DurationSeconds),
			})
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

// labelAll reverse-geocodes a coordinate batch into address labels,
// cache-first. A failed lookup leaves an empty label for that slot only.
func (s *MatrixService) labelAll(ctx context.Context, coords []domain.Coordinates) []string {
	out := make([]string, len(coords))

	keys := make([]string, len(coords))
	for i, c := range coords {
		keys[i] = revGeoKey(c)
	}

	cached := map[string]string{}
	if s.Cache != nil {
		hits, err := s.Cache.GetMany(ctx, keys)
		if err != nil {
			log.Printf("revgeocode cache read failed err=%q", err)
		} else {
			cached = hits
		}
	}

	fresh := make(map[string]string)
	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	for i, c := range coords {
		if label, ok := cached[keys[i]]; ok {
			out[i] = label
			continue
		}

		i, c := i, c
		g.Go(func() error {
			place, err := s.Geocoder.ReverseGeocode(gctx, c)
			if err != nil {
				log.Printf("reverse geocode failed coord=%s err=%q", keys[i], err)
				return nil
			}
			if place == nil {
				return nil
			}
			mu.Lock()
			out[i] = place.Label
			fresh[keys[i]] = place.Label
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if s.Cache != nil && len(fresh) > 0 {
		if err := s.Cache.PutMany(ctx, fresh); err != nil {
			log.Printf("revgeocode cache write failed err=%q", err)
		}
	}

	return out
}

// revGeoKey is the canonical cache key for a coordinate, rounded to five
// decimals (about a meter of precision).
func revGeoKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lon)
}

// unitSystemForMatrix resolves the response-wide unit system from the
// first origin, matching the per-response rule used for routes.
func unitSystemForMatrix(origins []domain.Coordinates, explicit *units.System) units.System {
	if len(origins) == 0 {
		return regions.UnitSystemFor(nil, explicit)
	}
	return regions.UnitSystemFor(&origins[0], explicit)
}
