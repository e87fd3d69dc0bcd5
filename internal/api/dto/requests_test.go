package dto

import (
	"encoding/json"
	"testing"

	"maps-compat-service/internal/units"
)

func TestParseLocationShapes(t *testing.T) {
	// Bare string is a query.
	loc, err := ParseLocation(json.RawMessage(`"covent garden"`))
	if err != nil {
		t.Fatalf("string: %v", err)
	}
	if loc.Query != "covent garden" || loc.Coord != nil {
		t.Fatalf("string: %+v", loc)
	}

	// Query object.
	loc, err = ParseLocation(json.RawMessage(`{"query":"tea shop"}`))
	if err != nil {
		t.Fatalf("query object: %v", err)
	}
	if loc.Query != "tea shop" {
		t.Fatalf("query object: %+v", loc)
	}

	// Place ID object.
	loc, err = ParseLocation(json.RawMessage(`{"placeId":"here:cg"}`))
	if err != nil {
		t.Fatalf("place id: %v", err)
	}
	if loc.PlaceID != "here:cg" {
		t.Fatalf("place id: %+v", loc)
	}

	// Coordinate literal.
	loc, err = ParseLocation(json.RawMessage(`{"lat":51.5,"lng":-0.12}`))
	if err != nil {
		t.Fatalf("literal: %v", err)
	}
	if loc.Coord == nil || loc.Coord.Lat != 51.5 || loc.Coord.Lon != -0.12 {
		t.Fatalf("literal: %+v", loc)
	}

	// Nested location field.
	loc, err = ParseLocation(json.RawMessage(`{"location":{"lat":1,"lng":2}}`))
	if err != nil {
		t.Fatalf("nested: %v", err)
	}
	if loc.Coord == nil || loc.Coord.Lat != 1 {
		t.Fatalf("nested: %+v", loc)
	}

	// Circle collapses to its center, bounds to the box midpoint.
	loc, err = ParseLocation(json.RawMessage(`{"circle":{"center":{"lat":3,"lng":4},"radius":500}}`))
	if err != nil {
		t.Fatalf("circle: %v", err)
	}
	if loc.Coord == nil || loc.Coord.Lat != 3 || loc.Coord.Lon != 4 {
		t.Fatalf("circle: %+v", loc)
	}

	loc, err = ParseLocation(json.RawMessage(`{"bounds":{"northeast":{"lat":10,"lng":20},"southwest":{"lat":0,"lng":10}}}`))
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	if loc.Coord == nil || loc.Coord.Lat != 5 || loc.Coord.Lon != 15 {
		t.Fatalf("bounds: %+v", loc)
	}
}

func TestParseLocationRejectsEmpty(t *testing.T) {
	for _, raw := range []string{``, `""`, `{}`, `{"stopover":true}`} {
		if _, err := ParseLocation(json.RawMessage(raw)); err == nil {
			t.Fatalf("raw %q: expected error", raw)
		}
	}
}

func TestParseLatLng(t *testing.T) {
	c, ok := ParseLatLng("33.448,-112.074")
	if !ok || c.Lat != 33.448 || c.Lon != -112.074 {
		t.Fatalf("got %+v ok=%v", c, ok)
	}
	if _, ok := ParseLatLng("91.0,0.0"); ok {
		t.Fatal("latitude out of range accepted")
	}
	if _, ok := ParseLatLng("not,numbers"); ok {
		t.Fatal("garbage accepted")
	}
	if _, ok := ParseLatLng("1.0"); ok {
		t.Fatal("single component accepted")
	}
}

func TestDirectionsToService(t *testing.T) {
	departure := int64(1788595200)
	stopoverFalse := false

	payload := DirectionsRequest{
		Origin:        json.RawMessage(`"covent garden"`),
		Destination:   json.RawMessage(`{"lat":51.52,"lng":-0.10}`),
		TravelMode:    "bicycling",
		AvoidTolls:    true,
		AvoidHighways: true,
		DepartureTime: &departure,
		UnitSystem:    "imperial",
		Waypoints: []WaypointRequest{
			{Location: json.RawMessage(`{"lat":51.51,"lng":-0.11}`)},
			{Location: json.RawMessage(`{"placeId":"here:x"}`), Stopover: &stopoverFalse},
		},
	}

	req, err := payload.ToService()
	if err != nil {
		t.Fatalf("ToService: %v", err)
	}

	if req.Origin.Query != "covent garden" || req.Destination.Coord == nil {
		t.Fatalf("locations: %+v", req)
	}
	if req.Mode != "BICYCLING" {
		t.Fatalf("mode = %s", req.Mode)
	}
	if !req.Avoid.Tolls || !req.Avoid.Highways || req.Avoid.Ferries {
		t.Fatalf("avoid = %+v", req.Avoid)
	}
	if req.DepartureTime == nil || req.DepartureTime.Unix() != departure {
		t.Fatalf("departure = %v", req.DepartureTime)
	}
	if req.UnitSystem == nil || *req.UnitSystem != units.Imperial {
		t.Fatalf("unit system = %v", req.UnitSystem)
	}

	// Stopover defaults true when absent.
	if !req.Waypoints[0].Stopover || req.Waypoints[1].Stopover {
		t.Fatalf("stopovers = %+v", req.Waypoints)
	}
}

func TestDirectionsToServiceRejectsBadUnitSystem(t *testing.T) {
	payload := DirectionsRequest{
		Origin:      json.RawMessage(`"a"`),
		Destination: json.RawMessage(`"b"`),
		UnitSystem:  "furlongs",
	}
	if _, err := payload.ToService(); err == nil {
		t.Fatal("expected error")
	}
}

func TestMatrixToService(t *testing.T) {
	payload := DistanceMatrixRequest{
		Origins:      []json.RawMessage{json.RawMessage(`{"lat":1,"lng":2}`)},
		Destinations: []json.RawMessage{json.RawMessage(`"somewhere"`)},
	}
	req, err := payload.ToService()
	if err != nil {
		t.Fatalf("ToService: %v", err)
	}
	if len(req.Origins) != 1 || len(req.Destinations) != 1 {
		t.Fatalf("req = %+v", req)
	}
	if req.Mode != "DRIVING" {
		t.Fatalf("mode = %s, want driving default", req.Mode)
	}

	if _, err := (DistanceMatrixRequest{}).ToService(); err == nil {
		t.Fatal("expected error for empty origins")
	}
}

func TestParseFields(t *testing.T) {
	got := ParseFields(" name , geometry ,,website")
	if len(got) != 3 || got[0] != "name" || got[2] != "website" {
		t.Fatalf("got %v", got)
	}
	if ParseFields("") != nil {
		t.Fatal("empty list should be nil")
	}
}
