package places

import (
	"strings"
	"testing"

	"maps-compat-service/internal/domain"
)

func samplePlace() domain.NormalizedPlace {
	offset := -25200 // -07:00
	return domain.NormalizedPlace{
		ID:         "here:pds:place:8409q8vn-1",
		Title:      "Roasting House",
		Label:      "Roasting House, 123 W Main St, Phoenix, AZ 85003, United States",
		Position:   domain.Coordinates{Lon: -112.074, Lat: 33.448},
		ResultType: domain.ResultPointOfInterest,
		Categories: []string{"100-1100-0010"},
		Address: domain.Address{
			Label:       "123 W Main St, Phoenix, AZ 85003, United States",
			CountryCode: "USA",
			CountryName: "United States",
			State:       "Arizona",
			StateCode:   "AZ",
			County:      "Maricopa",
			City:        "Phoenix",
			Street:      "W Main St",
			HouseNumber: "123",
			PostalCode:  "85003",
		},
		Contacts: domain.Contacts{
			Phones:   []string{"+16025550133"},
			Websites: []string{"https://roast.example.com", "https://roast.example.com/locations/phoenix"},
		},
		UTCOffsetSeconds: &offset,
	}
}

func TestToPlaceResultFieldFiltering(t *testing.T) {
	p := samplePlace()

	r := ToPlaceResult(p, NewFieldSet([]string{"name", "geometry"}))
	if r.Name != "Roasting House" {
		t.Fatalf("name = %q", r.Name)
	}
	if r.Geometry == nil || r.Geometry.Location.Lat != 33.448 {
		t.Fatalf("geometry = %+v", r.Geometry)
	}
	if r.PlaceID != "" || r.FormattedAddress != "" || r.Website != "" {
		t.Fatalf("unrequested fields leaked: %+v", r)
	}
}

func TestToPlaceResultAllFieldsSentinel(t *testing.T) {
	p := samplePlace()

	for _, fields := range [][]string{nil, {"ALL"}, {"name", "*"}} {
		r := ToPlaceResult(p, NewFieldSet(fields))
		if r.PlaceID == "" || r.Name == "" || r.Website == "" || r.AdrAddress == "" {
			t.Fatalf("fields=%v: expected all fields populated, got %+v", fields, r)
		}
	}
}

func TestAddressComponents(t *testing.T) {
	comps := addressComponents(samplePlace().Address)

	wantTypes := map[string][]string{
		"123":           {"street_number"},
		"W Main St":     {"route"},
		"Phoenix":       {"locality", "political"},
		"Maricopa":      {"administrative_area_level_2", "political"},
		"Arizona":       {"administrative_area_level_1", "political"},
		"United States": {"country", "political"},
		"85003":         {"postal_code"},
	}

	if len(comps) != len(wantTypes) {
		t.Fatalf("got %d components, want %d: %+v", len(comps), len(wantTypes), comps)
	}
	for _, c := range comps {
		want, ok := wantTypes[c.LongName]
		if !ok {
			t.Fatalf("unexpected component %+v", c)
		}
		if len(c.Types) != len(want) {
			t.Fatalf("component %q types = %v, want %v", c.LongName, c.Types, want)
		}
		for i := range want {
			if c.Types[i] != want[i] {
				t.Fatalf("component %q types = %v, want %v", c.LongName, c.Types, want)
			}
		}
	}

	// Short names where a code exists.
	for _, c := range comps {
		switch c.LongName {
		case "Arizona":
			if c.ShortName != "AZ" {
				t.Fatalf("state short name = %q, want AZ", c.ShortName)
			}
		case "United States":
			if c.ShortName != "USA" {
				t.Fatalf("country short name = %q, want USA", c.ShortName)
			}
		}
	}
}

func TestAdrAddressUsesCountryCodeWhenNameHasSpace(t *testing.T) {
	adr := adrAddress(samplePlace().Address)

	if !strings.Contains(adr, `<span class="country-name">USA</span>`) {
		t.Fatalf("adr = %q, want 3-letter country code", adr)
	}
	if !strings.Contains(adr, `<span class="street-address">123 W Main St</span>`) {
		t.Fatalf("adr = %q, missing street address span", adr)
	}
	if !strings.Contains(adr, `<span class="region">AZ</span> <span class="postal-code">85003</span>`) {
		t.Fatalf("adr = %q, region/postal grouping wrong", adr)
	}
}

func TestAdrAddressKeepsSingleWordCountry(t *testing.T) {
	a := samplePlace().Address
	a.CountryName = "France"
	a.CountryCode = "FRA"

	if adr := adrAddress(a); !strings.Contains(adr, `<span class="country-name">France</span>`) {
		t.Fatalf("adr = %q, want full single-word country name", adr)
	}
}

func TestPlusCodeCompound(t *testing.T) {
	code := plusCode(samplePlace())

	if code.GlobalCode == "" || !strings.Contains(code.GlobalCode, "+") {
		t.Fatalf("global code = %q", code.GlobalCode)
	}
	want := code.GlobalCode[4:] + " Phoenix, Arizona"
	if code.CompoundCode != want {
		t.Fatalf("compound code = %q, want %q", code.CompoundCode, want)
	}
}

func TestPlusCodeCompoundPrefersCountryOutsideUS(t *testing.T) {
	p := samplePlace()
	p.Address.CountryCode = "DEU"
	p.Address.CountryName = "Germany"

	code := plusCode(p)
	if !strings.HasSuffix(code.CompoundCode, "Phoenix, Germany") {
		t.Fatalf("compound code = %q, want country name suffix", code.CompoundCode)
	}
}

func TestFormatPhone(t *testing.T) {
	national, international := formatPhone([]string{"+16025550133"})
	if national != "(602) 555-0133" {
		t.Fatalf("national = %q", national)
	}
	if international != "+1 602-555-0133" {
		t.Fatalf("international = %q", international)
	}
}

func TestFormatPhonePassthroughOnGarbage(t *testing.T) {
	national, international := formatPhone([]string{"not-a-number"})
	if national != "not-a-number" || international != "not-a-number" {
		t.Fatalf("garbage input should pass through, got %q / %q", national, international)
	}
}

func TestPickWebsiteLongestWinsTiesFirst(t *testing.T) {
	got := pickWebsite([]string{"https://a.example.com/xx", "https://b.example.com/yy", "https://chain.example.com/locations/1"})
	if got != "https://chain.example.com/locations/1" {
		t.Fatalf("pickWebsite = %q, want longest", got)
	}

	got = pickWebsite([]string{"https://first.example", "https://secnd.example"})
	if got != "https://first.example" {
		t.Fatalf("pickWebsite tie = %q, want first seen", got)
	}
}

func TestApplyPlaceFieldsProgressive(t *testing.T) {
	p := samplePlace()

	dst := ApplyPlaceFields(p, NewFieldSet([]string{"displayName"}), nil)
	if dst.DisplayName != "Roasting House" || dst.Location != nil {
		t.Fatalf("first pass = %+v", dst)
	}

	same := ApplyPlaceFields(p, NewFieldSet([]string{"location", "utcOffsetMinutes"}), dst)
	if same != dst {
		t.Fatal("expected in-place mutation of the existing instance")
	}
	if dst.DisplayName != "Roasting House" {
		t.Fatal("earlier fields must survive progressive population")
	}
	if dst.Location == nil || dst.Location.Lng != -112.074 {
		t.Fatalf("location = %+v", dst.Location)
	}
	if dst.UTCOffsetMinutes == nil || *dst.UTCOffsetMinutes != -420 {
		t.Fatalf("utc offset = %v, want -420", dst.UTCOffsetMinutes)
	}
}

func TestLegacyTypesPOIRefinement(t *testing.T) {
	p := samplePlace()
	types := LegacyTypes(p)

	if types[0] != "cafe" {
		t.Fatalf("types = %v, want cafe first (100-1100-0010)", types)
	}
	if types[len(types)-2] != "point_of_interest" || types[len(types)-1] != "establishment" {
		t.Fatalf("types = %v, want point_of_interest/establishment suffix", types)
	}
}

func TestToPlaceResultOpeningHours(t *testing.T) {
	p := samplePlace()
	p.OpeningHours = &domain.OpeningHoursData{
		IsOpen: true,
		Components: []domain.HoursComponent{
			{OpenTime: "T090000", Duration: "PT08H00M", Recurrence: "FREQ:DAILY;BYDAY:FR"},
		},
	}

	r := ToPlaceResult(p, NewFieldSet([]string{"opening_hours"}))
	if r.OpeningHours == nil {
		t.Fatal("opening hours missing")
	}
	if r.OpeningHours.OpenNow == nil || !*r.OpeningHours.OpenNow {
		t.Fatal("open_now should carry the backend flag")
	}
	if len(r.OpeningHours.Periods) != 1 {
		t.Fatalf("periods = %+v", r.OpeningHours.Periods)
	}
	open := r.OpeningHours.Periods[0].Open
	if open.Day != 5 || open.Time != "0900" {
		t.Fatalf("open point = %+v", open)
	}
	if len(r.OpeningHours.WeekdayText) != 7 {
		t.Fatalf("weekday text = %v", r.OpeningHours.WeekdayText)
	}
}
