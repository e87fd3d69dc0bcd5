package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/legacy"
	"maps-compat-service/internal/platform/obs"
	"maps-compat-service/internal/ports"
	"maps-compat-service/internal/regions"
	"maps-compat-service/internal/units"
)

// RouteWaypoint is one intermediate stop of a directions request.
type RouteWaypoint struct {
	Location LocationInput
	Stopover bool
}

// DirectionsRequest is a parsed legacy directions call.
type DirectionsRequest struct {
	Origin            LocationInput
	Destination       LocationInput
	Waypoints         []RouteWaypoint
	Mode              domain.TravelMode
	Avoid             domain.Avoidance
	DepartureTime     *time.Time
	OptimizeWaypoints bool
	Alternatives      bool
	UnitSystem        *units.System
}

// DirectionsService assembles legacy directions responses from backend
// routes.
type DirectionsService struct {
	Resolver *Resolver
	Routes   ports.RouteProvider
	Sequence ports.SequenceProvider
}

func NewDirectionsService(resolver *Resolver, routes ports.RouteProvider, sequence ports.SequenceProvider) *DirectionsService {
	return &DirectionsService{Resolver: resolver, Routes: routes, Sequence: sequence}
}

// Calculate runs the full directions pipeline. Failures collapse to
// UNKNOWN_ERROR with the cause logged; callers only ever see a legacy
// status.
func (s *DirectionsService) Calculate(ctx context.Context, req DirectionsRequest) (*legacy.DirectionsResult, legacy.Status) {
	res, err := s.calculate(ctx, req)
	if err != nil {
		log.Printf("directions failed err=%q", err)
		return nil, legacy.StatusUnknownError
	}
	if len(res.Routes) == 0 {
		return nil, legacy.StatusZeroResults
	}
	return res, legacy.StatusOK
}

func (s *DirectionsService) calculate(ctx context.Context, req DirectionsRequest) (_ *legacy.DirectionsResult, err error) {
	defer obs.Time(ctx, "directions.calculate")(&err)

	inputs := make([]LocationInput, 0, 2+len(req.Waypoints))
	inputs = append(inputs, req.Origin, req.Destination)
	for _, w := range req.Waypoints {
		inputs = append(inputs, w.Location)
	}

	resolved, err := s.Resolver.ResolveAll(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("resolve locations: %w", err)
	}

	origin, destination := resolved[0], resolved[1]
	waypoints := resolved[2:]

	waypointCoords := make([]domain.Coordinates, len(waypoints))
	for i, w := range waypoints {
		waypointCoords[i] = w.Coord
	}

	var waypointOrder []int
	if s.shouldOptimize(req) {
		waypointOrder, err = s.Sequence.OptimizeSequence(ctx, ports.SequenceQuery{
			Start:         origin.Coord,
			End:           destination.Coord,
			Intermediates: waypointCoords,
			Options:       s.routeOptions(req),
		})
		if err != nil {
			return nil, fmt.Errorf("optimize waypoints: %w", err)
		}

		reordered := make([]domain.Coordinates, len(waypointOrder))
		for rank, idx := range waypointOrder {
			reordered[rank] = waypointCoords[idx]
		}
		waypointCoords = reordered
	}

	alternatives := 0
	if req.Alternatives {
		alternatives = 2
	}

	raw, err := s.Routes.CalculateRoutes(ctx, ports.RouteQuery{
		Origin:       origin.Coord,
		Destination:  destination.Coord,
		Waypoints:    waypointCoords,
		Options:      s.routeOptions(req),
		Alternatives: alternatives,
	})
	if err != nil {
		return nil, fmt.Errorf("calculate routes: %w", err)
	}

	sys := regions.UnitSystemFor(&origin.Coord, req.UnitSystem)

	result := &legacy.DirectionsResult{}
	for _, r := range raw {
		result.Routes = append(result.Routes, assembleRoute(r, req.Mode, sys, origin, destination, waypointOrder))
	}
	result.GeocodedWaypoints = geocodedWaypoints(origin, destination, waypoints)

	return result, nil
}

// shouldOptimize applies the all-or-nothing precondition: the caller asked
// for it, there is at least one waypoint, and no waypoint is a
// pass-through point.
func (s *DirectionsService) shouldOptimize(req DirectionsRequest) bool {
	if !req.OptimizeWaypoints || len(req.Waypoints) == 0 {
		return false
	}
	for _, w := range req.Waypoints {
		if !w.Stopover {
			return false
		}
	}
	return true
}

func (s *DirectionsService) routeOptions(req DirectionsRequest) domain.RouteOptions {
	return domain.RouteOptions{
		Mode:          req.Mode,
		Avoid:         req.Avoid,
		DepartureTime: req.DepartureTime,
	}
}

func assembleRoute(
	raw ports.RawRoute,
	mode domain.TravelMode,
	sys units.System,
	origin, destination Resolved,
	waypointOrder []int,
) legacy.DirectionsRoute {
	route := legacy.DirectionsRoute{
		Copyrights:    "Map data from HERE",
		WaypointOrder: waypointOrder,
	}
	if route.WaypointOrder == nil {
		route.WaypointOrder = []int{}
	}

	var bounds domain.Bounds
	var labels []string

	for i, sec := range raw.Sections {
		leg := assembleLeg(sec, mode, sys)

		if i == 0 {
			leg.StartAddress = origin.FormattedAddress
		}
		if i == len(raw.Sections)-1 {
			leg.EndAddress = destination.FormattedAddress
		}

		route.Legs = append(route.Legs, leg)

		for _, c := range sec.Geometry {
			bounds.Extend(c)
		}
		labels = append(labels, sec.RoadLabels...)
	}

	if !bounds.IsEmpty() {
		route.Bounds = legacy.LatLngBounds{
			Northeast: legacy.LatLng{Lat: bounds.North, Lng: bounds.East},
			Southwest: legacy.LatLng{Lat: bounds.South, Lng: bounds.West},
		}
	}
	route.Summary = routeSummary(labels)

	return route
}

// assembleLeg reconstructs per-step coordinates from the section geometry:
// a step starts at its own offset vertex and ends at the next step's
// offset vertex, with the final step ending at the last vertex.
func assembleLeg(sec ports.RawSection, mode domain.TravelMode, sys units.System) legacy.DirectionsLeg {
	leg := legacy.DirectionsLeg{
		Distance: textValue(sec.DistanceMeters, sys),
		Duration: durationValue(sec.DurationSeconds),
	}
	// Leg endpoints come from the backend's snapped departure/arrival
	// places; the geometry vertices are a fallback only.
	if start := legEndpoint(sec.DeparturePlace, sec.Geometry, 0); start != nil {
		leg.StartLocation = legacy.LatLng{Lat: start.Lat, Lng: start.Lon}
	}
	if end := legEndpoint(sec.ArrivalPlace, sec.Geometry, len(sec.Geometry)-1); end != nil {
		leg.EndLocation = legacy.LatLng{Lat: end.Lat, Lng: end.Lon}
	}

	for i, step := range sec.Steps {
		start := vertexAt(sec.Geometry, step.Offset)

		var end domain.Coordinates
		if i+1 < len(sec.Steps) {
			end = vertexAt(sec.Geometry, sec.Steps[i+1].Offset)
		} else if len(sec.Geometry) > 0 {
			end = sec.Geometry[len(sec.Geometry)-1]
		}

		leg.Steps = append(leg.Steps, legacy.DirectionsStep{
			Distance:      textValue(step.DistanceMeters, sys),
			Duration:      durationValue(step.DurationSeconds),
			StartLocation: legacy.LatLng{Lat: start.Lat, Lng: start.Lon},
			EndLocation:   legacy.LatLng{Lat: end.Lat, Lng: end.Lon},
			Instructions:  step.Instruction,
			TravelMode:    string(mode),
		})
	}

	return leg
}

func legEndpoint(place *domain.Coordinates, geometry []domain.Coordinates, fallback int) *domain.Coordinates {
	if place != nil {
		return place
	}
	if fallback < 0 || fallback >= len(geometry) {
		return nil
	}
	return &geometry[fallback]
}

func vertexAt(geometry []domain.Coordinates, offset int) domain.Coordinates {
	if len(geometry) == 0 {
		return domain.Coordinates{}
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(geometry) {
		offset = len(geometry) - 1
	}
	return geometry[offset]
}

// routeSummary derives the short route label from major-road names: none
// => empty, one or first==last => that name, otherwise "A and B".
func routeSummary(labels []string) string {
	valid := make([]string, 0, len(labels))
	for _, l := range labels {
		if l != "" {
			valid = append(valid, l)
		}
	}

	switch {
	case len(valid) == 0:
		return ""
	case len(valid) == 1 || valid[0] == valid[len(valid)-1]:
		return valid[0]
	default:
		return fmt.Sprintf("%s and %s", valid[0], valid[len(valid)-1])
	}
}

// geocodedWaypoints is present only when at least one input carried
// symbolic metadata; bare-coordinate-only requests omit the list entirely.
func geocodedWaypoints(origin, destination Resolved, waypoints []Resolved) []legacy.GeocodedWaypoint {
	all := make([]Resolved, 0, 2+len(waypoints))
	all = append(all, origin)
	all = append(all, waypoints...)
	all = append(all, destination)

	any := false
	for _, r := range all {
		if r.HasMetadata() {
			any = true
			break
		}
	}
	if !any {
		return nil
	}

	out := make([]legacy.GeocodedWaypoint, 0, len(all))
	for _, r := range all {
		out = append(out, legacy.GeocodedWaypoint{
			GeocoderStatus: legacy.StatusOK,
			PlaceID:        r.PlaceID,
			Types:          r.Types,
		})
	}
	return out
}

func textValue(meters int, sys units.System) legacy.TextValue {
	return legacy.TextValue{
		Text:  units.FormatDistance(float64(meters), sys),
		Value: meters,
	}
}

func durationValue(seconds int) legacy.TextValue {
	return legacy.TextValue{
		Text:  units.FormatDuration(seconds),
		Value: seconds,
	}
}
