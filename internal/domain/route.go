package domain

import "time"

// Travel modes accepted by the legacy API surface.
type TravelMode string

const (
	TravelDriving   TravelMode = "DRIVING"
	TravelWalking   TravelMode = "WALKING"
	TravelBicycling TravelMode = "BICYCLING"
)

// Avoidance carries route feature avoidance flags. Flags are independent;
// setting one never clears another.
type Avoidance struct {
	Tolls    bool
	Ferries  bool
	Highways bool
}

// RouteOptions is everything a route or matrix calculation needs beyond the
// endpoints themselves.
type RouteOptions struct {
	Mode          TravelMode
	Avoid         Avoidance
	DepartureTime *time.Time
}
