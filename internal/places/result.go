package places

import (
	"fmt"

	olc "github.com/google/open-location-code/go"
	"github.com/nyaruka/phonenumbers"

	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/legacy"
	"maps-compat-service/internal/openhours"
)

// defaultPhoneRegion resolves ambiguous national numbers; the legacy API
// assumed US when the number carried no country prefix.
const defaultPhoneRegion = "US"

// ToPlaceResult projects a normalized place into the legacy flat result.
// Only requested fields are populated; everything else stays absent.
func ToPlaceResult(p domain.NormalizedPlace, fields FieldSet) legacy.PlaceResult {
	var r legacy.PlaceResult

	if fields.Has("place_id") {
		r.PlaceID = p.ID
	}
	if fields.Has("name") {
		r.Name = p.Title
	}
	if fields.Has("formatted_address") {
		r.FormattedAddress = p.Label
	}
	if fields.Has("vicinity") {
		r.Vicinity = vicinity(p.Address)
	}
	if fields.Has("geometry") {
		r.Geometry = geometry(p)
	}
	if fields.Has("types") {
		r.Types = LegacyTypes(p)
	}
	if fields.Has("address_components") {
		r.AddressComponents = addressComponents(p.Address)
	}
	if fields.Has("adr_address") {
		r.AdrAddress = adrAddress(p.Address)
	}
	if fields.Has("plus_code") {
		r.PlusCode = plusCode(p)
	}
	if fields.Has("formatted_phone_number") || fields.Has("international_phone_number") {
		national, international := formatPhone(p.Contacts.Phones)
		if fields.Has("formatted_phone_number") {
			r.FormattedPhoneNumber = national
		}
		if fields.Has("international_phone_number") {
			r.InternationalPhoneNumber = international
		}
	}
	if fields.Has("website") {
		r.Website = pickWebsite(p.Contacts.Websites)
	}
	if fields.Has("opening_hours") && p.OpeningHours != nil {
		r.OpeningHours = legacyOpeningHours(p.OpeningHours, p.UTCOffsetSeconds)
	}
	if fields.Has("utc_offset") && p.UTCOffsetSeconds != nil {
		minutes := *p.UTCOffsetSeconds / 60
		r.UTCOffset = &minutes
	}

	return r
}

// ToGeocoderResult projects a normalized geocode hit into the legacy
// geocoder shape (always fully populated; the geocoder has no field mask).
func ToGeocoderResult(p domain.NormalizedPlace) legacy.GeocoderResult {
	return legacy.GeocoderResult{
		PlaceID:           p.ID,
		FormattedAddress:  p.Label,
		Geometry:          geometry(p),
		Types:             LegacyTypes(p),
		AddressComponents: addressComponents(p.Address),
		PlusCode:          plusCode(p),
	}
}

// ApplyPlaceFields populates the class-based shape. When dst is non-nil the
// existing instance is mutated in place, supporting progressive field
// population across successive lookups.
func ApplyPlaceFields(p domain.NormalizedPlace, fields FieldSet, dst *legacy.Place) *legacy.Place {
	if dst == nil {
		dst = &legacy.Place{}
	}
	dst.ID = p.ID

	if fields.Has("displayName") {
		dst.DisplayName = p.Title
	}
	if fields.Has("formattedAddress") {
		dst.FormattedAddress = p.Label
	}
	if fields.Has("location") {
		dst.Location = &legacy.LatLng{Lat: p.Position.Lat, Lng: p.Position.Lon}
	}
	if fields.Has("utcOffsetMinutes") && p.UTCOffsetSeconds != nil {
		minutes := *p.UTCOffsetSeconds / 60
		dst.UTCOffsetMinutes = &minutes
	}

	return dst
}

func geometry(p domain.NormalizedPlace) *legacy.Geometry {
	g := &legacy.Geometry{
		Location: legacy.LatLng{Lat: p.Position.Lat, Lng: p.Position.Lon},
	}
	if p.MapView != nil && !p.MapView.IsEmpty() {
		g.Viewport = &legacy.LatLngBounds{
			Northeast: legacy.LatLng{Lat: p.MapView.North, Lng: p.MapView.East},
			Southwest: legacy.LatLng{Lat: p.MapView.South, Lng: p.MapView.West},
		}
	}
	return g
}

// plusCode computes the open-location-code pair. The compound code strips
// the four-character area prefix and appends "<locality>, <region>", where
// the region is the state for US addresses and the country name elsewhere.
func plusCode(p domain.NormalizedPlace) *legacy.PlusCode {
	global := olc.Encode(p.Position.Lat, p.Position.Lon, 10)
	code := &legacy.PlusCode{GlobalCode: global}

	locality := p.Address.City
	if locality == "" || len(global) < 4 {
		return code
	}

	region := p.Address.CountryName
	if p.Address.CountryCode == "USA" && p.Address.State != "" {
		region = p.Address.State
	}
	if region == "" {
		return code
	}

	code.CompoundCode = fmt.Sprintf("%s %s, %s", global[4:], locality, region)
	return code
}

// formatPhone renders the first phone number both nationally and
// internationally. Unparseable input passes through untouched.
func formatPhone(phones []string) (national, international string) {
	if len(phones) == 0 {
		return "", ""
	}
	raw := phones[0]

	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return raw, raw
	}

	return phonenumbers.Format(num, phonenumbers.NATIONAL),
		phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}

// pickWebsite returns the longest URL. Longer URLs tend to be the specific
// location page rather than a chain's generic homepage. Ties keep the
// first seen.
func pickWebsite(websites []string) string {
	best := ""
	for _, w := range websites {
		if len(w) > len(best) {
			best = w
		}
	}
	return best
}

func vicinity(a domain.Address) string {
	if a.District != "" {
		return a.District
	}
	return a.City
}

// legacyOpeningHours converts the translated hours block into the legacy
// opening-hours shape.
func legacyOpeningHours(data *domain.OpeningHoursData, utcOffsetSeconds *int) *legacy.OpeningHours {
	h := openhours.Translate(data, utcOffsetSeconds)
	if h == nil {
		return nil
	}

	out := &legacy.OpeningHours{WeekdayText: h.WeekdayText}
	openNow := h.OpenNow
	out.OpenNow = &openNow

	for _, p := range h.Periods {
		period := legacy.OpeningHoursPeriod{Open: legacyPoint(p.Open)}
		if p.Close != nil {
			cp := legacyPoint(*p.Close)
			period.Close = &cp
		}
		out.Periods = append(out.Periods, period)
	}

	return out
}

func legacyPoint(p openhours.Point) legacy.OpeningHoursPoint {
	return legacy.OpeningHoursPoint{
		Day:     p.Day,
		Time:    fmt.Sprintf("%02d%02d", p.Hour, p.Minute),
		Hours:   p.Hour,
		Minutes: p.Minute,
	}
}
