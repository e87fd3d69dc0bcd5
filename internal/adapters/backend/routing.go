package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/twpayne/go-polyline"

	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/platform/obs"
	"maps-compat-service/internal/ports"
)

type sectionEnd struct {
	Place struct {
		Location *itemPoint `json:"location"`
	} `json:"place"`
}

func (e sectionEnd) coordinates() *domain.Coordinates {
	if e.Place.Location == nil {
		return nil
	}
	return &domain.Coordinates{Lat: e.Place.Location.Lat, Lon: e.Place.Location.Lng}
}

type routesResponse struct {
	Routes []struct {
		Sections []struct {
			Polyline string `json:"polyline"`
			Summary  struct {
				Duration int `json:"duration"`
				Length   int `json:"length"`
			} `json:"summary"`
			Departure sectionEnd `json:"departure"`
			Arrival   sectionEnd `json:"arrival"`
			Actions   []struct {
				Instruction string `json:"instruction"`
				Duration    int    `json:"duration"`
				Length      int    `json:"length"`
				Offset      int    `json:"offset"`
			} `json:"actions"`
			Spans []struct {
				Names []itemValue `json:"names"`
			} `json:"spans"`
		} `json:"sections"`
	} `json:"routes"`
}

// CalculateRoutes requests routes through the query's stops and decodes
// the section geometry.
func (c *Client) CalculateRoutes(ctx context.Context, q ports.RouteQuery) (_ []ports.RawRoute, err error) {
	defer obs.Time(ctx, "backend.CalculateRoutes")(&err)

	params := url.Values{}
	params.Set("origin", formatAt(q.Origin))
	params.Set("destination", formatAt(q.Destination))
	for _, w := range q.Waypoints {
		params.Add("via", formatAt(w))
	}
	params.Set("transportMode", transportMode(q.Options.Mode))
	params.Set("return", "polyline,summary,actions,travelSummary")
	params.Set("spans", "names")
	if features := avoidFeatures(q.Options.Avoid); features != "" {
		params.Set("avoid[features]", features)
	}
	if q.Options.DepartureTime != nil {
		params.Set("departureTime", q.Options.DepartureTime.Format(time.RFC3339))
	}
	if q.Alternatives > 0 {
		params.Set("alternatives", strconv.Itoa(q.Alternatives))
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, c.routerURL+"/routes", cloneValues(params), nil)
	})
	if err != nil {
		return nil, fmt.Errorf("routes: %w", err)
	}
	defer resp.Body.Close()

	var decoded routesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode routes response: %w", err)
	}

	out := make([]ports.RawRoute, 0, len(decoded.Routes))
	for _, rt := range decoded.Routes {
		raw := ports.RawRoute{Sections: make([]ports.RawSection, 0, len(rt.Sections))}
		for _, sec := range rt.Sections {
			geometry, err := decodeGeometry(sec.Polyline)
			if err != nil {
				return nil, fmt.Errorf("decode section geometry: %w", err)
			}

			section := ports.RawSection{
				Geometry:        geometry,
				DistanceMeters:  sec.Summary.Length,
				DurationSeconds: sec.Summary.Duration,
				DeparturePlace:  sec.Departure.coordinates(),
				ArrivalPlace:    sec.Arrival.coordinates(),
			}
			for _, a := range sec.Actions {
				section.Steps = append(section.Steps, ports.RawStep{
					Offset:          a.Offset,
					DistanceMeters:  a.Length,
					DurationSeconds: a.Duration,
					Instruction:     a.Instruction,
				})
			}
			section.RoadLabels = spanNames(sec.Spans)
			raw.Sections = append(raw.Sections, section)
		}
		out = append(out, raw)
	}
	return out, nil
}

func decodeGeometry(encoded string) ([]domain.Coordinates, error) {
	if encoded == "" {
		return nil, nil
	}
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}

	out := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		out = append(out, domain.Coordinates{Lat: c[0], Lon: c[1]})
	}
	return out, nil
}

func spanNames(spans []struct {
	Names []itemValue `json:"names"`
}) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, sp := range spans {
		for _, n := range sp.Names {
			if n.Value == "" {
				continue
			}
			if _, dup := seen[n.Value]; dup {
				continue
			}
			seen[n.Value] = struct{}{}
			out = append(out, n.Value)
		}
	}
	return out
}

func transportMode(mode domain.TravelMode) string {
	switch mode {
	case domain.TravelWalking:
		return "pedestrian"
	case domain.TravelBicycling:
		return "bicycle"
	default:
		return "car"
	}
}

func avoidFeatures(a domain.Avoidance) string {
	var features []string
	if a.Tolls {
		features = append(features, "tollRoad")
	}
	if a.Ferries {
		features = append(features, "ferry")
	}
	if a.Highways {
		features = append(features, "controlledAccessHighway")
	}
	return strings.Join(features, ",")
}
