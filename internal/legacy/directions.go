package legacy

// TextValue pairs a raw numeric value with its formatted text.
type TextValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// DirectionsStep is one navigation step with derived endpoint coordinates.
type DirectionsStep struct {
	Distance      TextValue `json:"distance"`
	Duration      TextValue `json:"duration"`
	StartLocation LatLng    `json:"start_location"`
	EndLocation   LatLng    `json:"end_location"`
	Instructions  string    `json:"html_instructions,omitempty"`
	TravelMode    string    `json:"travel_mode"`
}

// DirectionsLeg is one origin-to-stop span of a route.
type DirectionsLeg struct {
	Steps         []DirectionsStep `json:"steps"`
	Distance      TextValue        `json:"distance"`
	Duration      TextValue        `json:"duration"`
	StartAddress  string           `json:"start_address"`
	EndAddress    string           `json:"end_address"`
	StartLocation LatLng           `json:"start_location"`
	EndLocation   LatLng           `json:"end_location"`
}

// DirectionsRoute is one complete route alternative.
type DirectionsRoute struct {
	Legs          []DirectionsLeg `json:"legs"`
	Bounds        LatLngBounds    `json:"bounds"`
	Summary       string          `json:"summary"`
	Copyrights    string          `json:"copyrights"`
	WaypointOrder []int           `json:"waypoint_order"`
}

// GeocodedWaypoint carries resolution metadata for symbolic route inputs.
type GeocodedWaypoint struct {
	GeocoderStatus Status   `json:"geocoder_status"`
	PlaceID        string   `json:"place_id,omitempty"`
	Types          []string `json:"types,omitempty"`
}

// DirectionsResult is the legacy route-calculation response.
// GeocodedWaypoints is omitted entirely, not empty, when every input was a
// bare coordinate.
type DirectionsResult struct {
	Routes            []DirectionsRoute  `json:"routes"`
	GeocodedWaypoints []GeocodedWaypoint `json:"geocoded_waypoints,omitempty"`
}

// DistanceMatrixElement is one origin-destination cell.
type DistanceMatrixElement struct {
	Status   Status    `json:"status"`
	Distance TextValue `json:"distance"`
	Duration TextValue `json:"duration"`
}

// DistanceMatrixRow groups one origin's cells.
type DistanceMatrixRow struct {
	Elements []DistanceMatrixElement `json:"elements"`
}

// DistanceMatrixResult is the legacy all-pairs matrix response.
type DistanceMatrixResult struct {
	OriginAddresses      []string            `json:"origin_addresses"`
	DestinationAddresses []string            `json:"destination_addresses"`
	Rows                 []DistanceMatrixRow `json:"rows"`
}
