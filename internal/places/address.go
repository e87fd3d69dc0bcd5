package places

import (
	"fmt"
	"strings"

	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/legacy"
)

// addressComponents decomposes the structured backend address into the
// legacy component list. Each part carries its fixed type-tag array; empty
// parts are skipped rather than emitted blank.
func addressComponents(a domain.Address) []legacy.AddressComponent {
	var out []legacy.AddressComponent

	add := func(long, short string, types ...string) {
		if long == "" {
			return
		}
		if short == "" {
			short = long
		}
		out = append(out, legacy.AddressComponent{LongName: long, ShortName: short, Types: types})
	}

	add(a.HouseNumber, "", "street_number")
	add(a.Street, "", "route")
	add(a.District, "", "sublocality_level_1", "sublocality", "political")
	add(a.City, "", "locality", "political")
	add(a.County, "", "administrative_area_level_2", "political")
	add(a.State, a.StateCode, "administrative_area_level_1", "political")
	add(a.CountryName, a.CountryCode, "country", "political")
	add(a.PostalCode, "", "postal_code")

	return out
}

// adrAddress renders the adr-microformat string. The country span uses the
// three-letter code whenever the full country name contains a space, a
// quirk the legacy output carries.
func adrAddress(a domain.Address) string {
	street := strings.TrimSpace(fmt.Sprintf("%s %s", a.HouseNumber, a.Street))

	var segments []string
	if street != "" {
		segments = append(segments, span("street-address", street))
	}
	if a.City != "" {
		segments = append(segments, span("locality", a.City))
	}

	region := a.StateCode
	if region == "" {
		region = a.State
	}
	regionPostal := make([]string, 0, 2)
	if region != "" {
		regionPostal = append(regionPostal, span("region", region))
	}
	if a.PostalCode != "" {
		regionPostal = append(regionPostal, span("postal-code", a.PostalCode))
	}
	if len(regionPostal) > 0 {
		segments = append(segments, strings.Join(regionPostal, " "))
	}

	country := a.CountryName
	if strings.Contains(country, " ") && a.CountryCode != "" {
		country = a.CountryCode
	}
	if country != "" {
		segments = append(segments, span("country-name", country))
	}

	return strings.Join(segments, ", ")
}

func span(class, value string) string {
	return fmt.Sprintf("<span class=%q>%s</span>", class, value)
}
