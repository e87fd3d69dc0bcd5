// Package dto parses legacy-shaped request payloads into service inputs.
package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/services"
	"maps-compat-service/internal/units"
)

// DirectionsRequest is the legacy route-calculation payload.
type DirectionsRequest struct {
	Origin            json.RawMessage   `json:"origin"`
	Destination       json.RawMessage   `json:"destination"`
	Waypoints         []WaypointRequest `json:"waypoints"`
	TravelMode        string            `json:"travelMode"`
	AvoidTolls        bool              `json:"avoidTolls"`
	AvoidFerries      bool              `json:"avoidFerries"`
	AvoidHighways     bool              `json:"avoidHighways"`
	DepartureTime     *int64            `json:"departureTime"`
	OptimizeWaypoints bool              `json:"optimizeWaypoints"`
	Alternatives      bool              `json:"provideRouteAlternatives"`
	UnitSystem        string            `json:"unitSystem"`
}

// WaypointRequest is one intermediate stop. Stopover defaults to true when
// absent, matching the legacy API.
type WaypointRequest struct {
	Location json.RawMessage `json:"location"`
	Stopover *bool           `json:"stopover"`
}

// DistanceMatrixRequest is the legacy all-pairs payload.
type DistanceMatrixRequest struct {
	Origins       []json.RawMessage `json:"origins"`
	Destinations  []json.RawMessage `json:"destinations"`
	TravelMode    string            `json:"travelMode"`
	AvoidTolls    bool              `json:"avoidTolls"`
	AvoidFerries  bool              `json:"avoidFerries"`
	AvoidHighways bool              `json:"avoidHighways"`
	DepartureTime *int64            `json:"departureTime"`
	UnitSystem    string            `json:"unitSystem"`
}

// ToService validates and converts the payload into the service request.
func (r DirectionsRequest) ToService() (services.DirectionsRequest, error) {
	origin, err := ParseLocation(r.Origin)
	if err != nil {
		return services.DirectionsRequest{}, fmt.Errorf("origin: %w", err)
	}
	destination, err := ParseLocation(r.Destination)
	if err != nil {
		return services.DirectionsRequest{}, fmt.Errorf("destination: %w", err)
	}

	out := services.DirectionsRequest{
		Origin:            origin,
		Destination:       destination,
		Mode:              parseTravelMode(r.TravelMode),
		OptimizeWaypoints: r.OptimizeWaypoints,
		Alternatives:      r.Alternatives,
		Avoid: domain.Avoidance{
			Tolls:    r.AvoidTolls,
			Ferries:  r.AvoidFerries,
			Highways: r.AvoidHighways,
		},
	}

	for i, w := range r.Waypoints {
		loc, err := ParseLocation(w.Location)
		if err != nil {
			return services.DirectionsRequest{}, fmt.Errorf("waypoint %d: %w", i, err)
		}
		stopover := true
		if w.Stopover != nil {
			stopover = *w.Stopover
		}
		out.Waypoints = append(out.Waypoints, services.RouteWaypoint{Location: loc, Stopover: stopover})
	}

	if r.DepartureTime != nil {
		t := time.Unix(*r.DepartureTime, 0).UTC()
		out.DepartureTime = &t
	}

	sys, err := parseUnitSystem(r.UnitSystem)
	if err != nil {
		return services.DirectionsRequest{}, err
	}
	out.UnitSystem = sys

	return out, nil
}

// ToService validates and converts the payload into the service request.
func (r DistanceMatrixRequest) ToService() (services.MatrixRequest, error) {
	if len(r.Origins) == 0 || len(r.Destinations) == 0 {
		return services.MatrixRequest{}, fmt.Errorf("origins and destinations must be non-empty")
	}

	out := services.MatrixRequest{
		Mode: parseTravelMode(r.TravelMode),
		Avoid: domain.Avoidance{
			Tolls:    r.AvoidTolls,
			Ferries:  r.AvoidFerries,
			Highways: r.AvoidHighways,
		},
	}

	for i, raw := range r.Origins {
		loc, err := ParseLocation(raw)
		if err != nil {
			return services.MatrixRequest{}, fmt.Errorf("origin %d: %w", i, err)
		}
		out.Origins = append(out.Origins, loc)
	}
	for i, raw := range r.Destinations {
		loc, err := ParseLocation(raw)
		if err != nil {
			return services.MatrixRequest{}, fmt.Errorf("destination %d: %w", i, err)
		}
		out.Destinations = append(out.Destinations, loc)
	}

	if r.DepartureTime != nil {
		t := time.Unix(*r.DepartureTime, 0).UTC()
		out.DepartureTime = &t
	}

	sys, err := parseUnitSystem(r.UnitSystem)
	if err != nil {
		return services.MatrixRequest{}, err
	}
	out.UnitSystem = sys

	return out, nil
}

// ParseLocation decodes one heterogeneous location argument: a bare
// string (always a free-text query), a {lat,lng} object, or an object
// carrying query / placeId / a nested location.
func ParseLocation(raw json.RawMessage) (services.LocationInput, error) {
	if len(raw) == 0 {
		return services.LocationInput{}, fmt.Errorf("missing location")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parseLocationString(s)
	}

	var obj struct {
		Query    string          `json:"query"`
		PlaceID  string          `json:"placeId"`
		Lat      *float64        `json:"lat"`
		Lng      *float64        `json:"lng"`
		Location json.RawMessage `json:"location"`
		Circle   *struct {
			Center latLngObj `json:"center"`
		} `json:"circle"`
		Bounds *struct {
			Northeast latLngObj `json:"northeast"`
			Southwest latLngObj `json:"southwest"`
		} `json:"bounds"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return services.LocationInput{}, fmt.Errorf("unparseable location: %w", err)
	}

	switch {
	case obj.Query != "":
		return services.LocationInput{Query: obj.Query}, nil
	case obj.PlaceID != "":
		return services.LocationInput{PlaceID: obj.PlaceID}, nil
	case obj.Lat != nil && obj.Lng != nil:
		return services.LocationInput{Coord: &domain.Coordinates{Lat: *obj.Lat, Lon: *obj.Lng}}, nil
	case obj.Circle != nil:
		return services.LocationInput{Coord: &domain.Coordinates{Lat: obj.Circle.Center.Lat, Lon: obj.Circle.Center.Lng}}, nil
	case obj.Bounds != nil:
		// A bounds input collapses to its center point.
		box := domain.NewBounds(
			obj.Bounds.Southwest.Lng, obj.Bounds.Southwest.Lat,
			obj.Bounds.Northeast.Lng, obj.Bounds.Northeast.Lat,
		)
		center := box.Center()
		return services.LocationInput{Coord: &center}, nil
	case len(obj.Location) > 0:
		return ParseLocation(obj.Location)
	default:
		return services.LocationInput{}, fmt.Errorf("location object carries no query, placeId or coordinate")
	}
}

type latLngObj struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// A bare string is always a text query; coordinate literals arrive as
// {lat,lng} objects.
func parseLocationString(s string) (services.LocationInput, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return services.LocationInput{}, fmt.Errorf("empty location string")
	}
	return services.LocationInput{Query: s}, nil
}

// ParseLatLng parses a "lat,lng" literal.
func ParseLatLng(s string) (domain.Coordinates, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Coordinates{}, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return domain.Coordinates{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return domain.Coordinates{}, false
	}
	return domain.Coordinates{Lat: lat, Lon: lng}, true
}

func parseTravelMode(s string) domain.TravelMode {
	switch strings.ToUpper(s) {
	case string(domain.TravelWalking):
		return domain.TravelWalking
	case string(domain.TravelBicycling):
		return domain.TravelBicycling
	default:
		return domain.TravelDriving
	}
}

func parseUnitSystem(s string) (*units.System, error) {
	switch strings.ToUpper(s) {
	case "":
		return nil, nil
	case "METRIC":
		sys := units.Metric
		return &sys, nil
	case "IMPERIAL":
		sys := units.Imperial
		return &sys, nil
	default:
		return nil, fmt.Errorf("unknown unit system %q", s)
	}
}

// ParseFields splits a comma-separated field list, trimming blanks.
func ParseFields(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
