// Package regions decides which unit system applies to a coordinate.
//
// The three countries that use imperial road distances (USA, Myanmar,
// Liberia) are preloaded as coarse boundary polygons from bundled static
// data; everything else is metric.
package regions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/units"
)

//go:embed data/boundaries.json
var boundaryData []byte

type countryBoundary struct {
	Country  string         `json:"country"`
	Polygons [][][2]float64 `json:"polygons"` // rings of [lon, lat]
}

var imperialBoundaries []countryBoundary

func init() {
	if err := json.Unmarshal(boundaryData, &imperialBoundaries); err != nil {
		panic(fmt.Sprintf("regions: malformed bundled boundary data: %v", err))
	}
}

// UnitSystemFor returns the explicit preference when present, otherwise
// classifies the point against the preloaded imperial-country polygons.
// A nil point defaults to metric.
func UnitSystemFor(point *domain.Coordinates, explicit *units.System) units.System {
	if explicit != nil {
		return *explicit
	}
	if point == nil {
		return units.Metric
	}

	for _, boundary := range imperialBoundaries {
		for i, ring := range boundary.Polygons {
			inside, err := contains(ring, *point)
			if err != nil {
				// A bad polygon never matches; the rest still count.
				log.Printf("regions: skipping polygon country=%s idx=%d err=%v", boundary.Country, i, err)
				continue
			}
			if inside {
				return units.Imperial
			}
		}
	}

	return units.Metric
}

// contains runs a ray-casting point-in-polygon test over a [lon, lat] ring.
func contains(ring [][2]float64, point domain.Coordinates) (bool, error) {
	if len(ring) < 3 {
		return false, fmt.Errorf("polygon has %d vertices, need at least 3", len(ring))
	}

	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]

		if (yi > point.Lat) != (yj > point.Lat) &&
			point.Lon < (xj-xi)*(point.Lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}

	return inside, nil
}
