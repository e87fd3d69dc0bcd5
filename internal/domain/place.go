package domain

// Structured address sub-parts as returned by backend geocoding lookups.
// Field names follow the backend taxonomy; translation to the legacy
// component taxonomy happens in internal/places.
type Address struct {
	Label       string
	CountryCode string // three-letter code
	CountryName string
	State       string
	StateCode   string
	County      string
	City        string
	District    string
	Street      string
	HouseNumber string
	PostalCode  string
}

// HoursComponent is one weekly recurrence entry of an opening-hours block,
// carried verbatim from the backend (compact time/duration/recurrence codes).
type HoursComponent struct {
	OpenTime   string // "Thhmmss"
	Duration   string // "PTxxHyyM"
	Recurrence string // "FREQ:DAILY;BYDAY:MO,TU,..."
}

// OpeningHoursData is the raw opening-hours block of a place.
type OpeningHoursData struct {
	Components []HoursComponent
	IsOpen     bool
}

// Contacts carries phone numbers and websites in backend order.
type Contacts struct {
	Phones   []string
	Websites []string
}

// Coarse classification of what a geocode/lookup result points at.
type ResultType string

const (
	ResultCountry         ResultType = "country"
	ResultRegion          ResultType = "administrativeArea"
	ResultSubRegion       ResultType = "county"
	ResultLocality        ResultType = "locality"
	ResultPostalCode      ResultType = "postalCode"
	ResultDistrict        ResultType = "district"
	ResultStreet          ResultType = "street"
	ResultPointAddress    ResultType = "houseNumber"
	ResultPointOfInterest ResultType = "place"
)

// NormalizedPlace is the internal representation of a backend place or
// geocode result. It is produced by the backend adapter and treated as
// immutable by every translation component.
type NormalizedPlace struct {
	ID               string
	Title            string
	Label            string // formatted address
	Position         Coordinates
	MapView          *Bounds
	ResultType       ResultType
	Categories       []string
	Address          Address
	Contacts         Contacts
	OpeningHours     *OpeningHoursData
	UTCOffsetSeconds *int
}

// Suggestion is one autocomplete prediction from the backend.
type Suggestion struct {
	ID         string
	Title      string
	ResultType ResultType
	// Highlight ranges into Title, as [start, end) rune offsets.
	Highlights [][2]int
}
