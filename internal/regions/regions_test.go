package regions

import (
	"testing"

	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/units"
)

func TestUnitSystemForExplicitWins(t *testing.T) {
	kansas := domain.Coordinates{Lon: -98.0, Lat: 38.5}
	metric := units.Metric

	if got := UnitSystemFor(&kansas, &metric); got != units.Metric {
		t.Fatalf("explicit metric over US point = %v, want Metric", got)
	}
}

func TestUnitSystemForNilPointDefaultsMetric(t *testing.T) {
	if got := UnitSystemFor(nil, nil); got != units.Metric {
		t.Fatalf("nil point = %v, want Metric", got)
	}
}

func TestUnitSystemForClassifies(t *testing.T) {
	cases := []struct {
		name string
		lon  float64
		lat  float64
		want units.System
	}{
		{"kansas", -98.0, 38.5, units.Imperial},
		{"denver", -104.99, 39.74, units.Imperial},
		{"anchorage", -149.90, 61.22, units.Imperial},
		{"mandalay", 96.08, 21.97, units.Imperial},
		{"yangon", 96.16, 16.87, units.Imperial},
		{"monrovia", -10.80, 6.31, units.Imperial},
		{"london", -0.12, 51.50, units.Metric},
		{"paris", 2.35, 48.85, units.Metric},
		{"toronto", -79.38, 43.65, units.Metric},
		{"tokyo", 139.69, 35.69, units.Metric},
		{"accra", -0.19, 5.60, units.Metric},
	}

	for _, c := range cases {
		p := domain.Coordinates{Lon: c.lon, Lat: c.lat}
		if got := UnitSystemFor(&p, nil); got != c.want {
			t.Fatalf("%s: UnitSystemFor = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestContainsRejectsMalformedRing(t *testing.T) {
	if _, err := contains([][2]float64{{0, 0}, {1, 1}}, domain.Coordinates{}); err == nil {
		t.Fatal("expected error for 2-vertex ring")
	}
}
