package legacy

// LatLng is the legacy coordinate literal (latitude first).
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LatLngBounds is the legacy viewport shape.
type LatLngBounds struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
}

// Geometry groups a result's location with its recommended viewport.
type Geometry struct {
	Location LatLng        `json:"location"`
	Viewport *LatLngBounds `json:"viewport,omitempty"`
}

// AddressComponent is one decomposed address part with its type tags.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// PlusCode is the open-location-code pair attached to place results.
type PlusCode struct {
	GlobalCode   string `json:"global_code"`
	CompoundCode string `json:"compound_code,omitempty"`
}

// OpeningHoursPoint is one side of a legacy open/close pair.
type OpeningHoursPoint struct {
	Day     int    `json:"day"`
	Time    string `json:"time"` // "hhmm"
	Hours   int    `json:"hours"`
	Minutes int    `json:"minutes"`
}

// OpeningHoursPeriod is a legacy weekly period; Close is absent for the
// open-24-hours representation.
type OpeningHoursPeriod struct {
	Open  OpeningHoursPoint  `json:"open"`
	Close *OpeningHoursPoint `json:"close,omitempty"`
}

// OpeningHours is the legacy opening-hours block.
type OpeningHours struct {
	OpenNow     *bool                `json:"open_now,omitempty"`
	Periods     []OpeningHoursPeriod `json:"periods,omitempty"`
	WeekdayText []string             `json:"weekday_text,omitempty"`
}

// PlaceResult is the legacy flat place shape. Fields are populated only
// when requested; unrequested fields stay absent from the serialized form.
type PlaceResult struct {
	PlaceID                  string             `json:"place_id,omitempty"`
	Name                     string             `json:"name,omitempty"`
	FormattedAddress         string             `json:"formatted_address,omitempty"`
	Vicinity                 string             `json:"vicinity,omitempty"`
	Geometry                 *Geometry          `json:"geometry,omitempty"`
	Types                    []string           `json:"types,omitempty"`
	AddressComponents        []AddressComponent `json:"address_components,omitempty"`
	AdrAddress               string             `json:"adr_address,omitempty"`
	PlusCode                 *PlusCode          `json:"plus_code,omitempty"`
	FormattedPhoneNumber     string             `json:"formatted_phone_number,omitempty"`
	InternationalPhoneNumber string             `json:"international_phone_number,omitempty"`
	Website                  string             `json:"website,omitempty"`
	OpeningHours             *OpeningHours      `json:"opening_hours,omitempty"`
	UTCOffset                *int               `json:"utc_offset,omitempty"` // minutes
}

// Place is the newer class-based place shape with its smaller field set.
// Instances support progressive field population across lookups.
type Place struct {
	ID               string  `json:"id"`
	DisplayName      string  `json:"displayName,omitempty"`
	FormattedAddress string  `json:"formattedAddress,omitempty"`
	Location         *LatLng `json:"location,omitempty"`
	UTCOffsetMinutes *int    `json:"utcOffsetMinutes,omitempty"`
}

// GeocoderResult is the legacy geocoder shape, a close cousin of the flat
// place result.
type GeocoderResult struct {
	PlaceID           string             `json:"place_id,omitempty"`
	FormattedAddress  string             `json:"formatted_address,omitempty"`
	Geometry          *Geometry          `json:"geometry,omitempty"`
	Types             []string           `json:"types,omitempty"`
	AddressComponents []AddressComponent `json:"address_components,omitempty"`
	PlusCode          *PlusCode          `json:"plus_code,omitempty"`
}

// MatchedSubstring locates one autocomplete match inside a description.
type MatchedSubstring struct {
	Length int `json:"length"`
	Offset int `json:"offset"`
}

// AutocompletePrediction is one legacy query prediction.
type AutocompletePrediction struct {
	Description       string             `json:"description"`
	PlaceID           string             `json:"place_id,omitempty"`
	Types             []string           `json:"types,omitempty"`
	MatchedSubstrings []MatchedSubstring `json:"matched_substrings,omitempty"`
}
