package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"maps-compat-service/internal/platform/obs"
	"maps-compat-service/internal/ports"
)

// Degrees of slack added around the computed bounding box.
const boundsMarginDeg = 0.25

type matrixRequest struct {
	Origins          []itemPoint `json:"origins"`
	Destinations     []itemPoint `json:"destinations"`
	TransportMode    string      `json:"transportMode"`
	RegionDefinition struct {
		Type  string   `json:"type"`
		West  *float64 `json:"west,omitempty"`
		South *float64 `json:"south,omitempty"`
		East  *float64 `json:"east,omitempty"`
		North *float64 `json:"north,omitempty"`
	} `json:"regionDefinition"`
	Matrix struct {
		Attributes []string `json:"attributes"`
	} `json:"matrixAttributes"`
}

type matrixResponse struct {
	Matrix struct {
		NumOrigins      int   `json:"numOrigins"`
		NumDestinations int   `json:"numDestinations"`
		TravelTimes     []int `json:"travelTimes"`
		Distances       []int `json:"distances"`
		ErrorCodes      []int `json:"errorCodes"`
	} `json:"matrix"`
}

// CalculateMatrix computes the full origins x destinations travel matrix
// in one synchronous backend call. The flattened response is re-shaped
// into [origin][destination] cells; per-pair backend errors become
// OK=false cells rather than a failed call.
func (c *Client) CalculateMatrix(ctx context.Context, q ports.MatrixQuery) (_ [][]ports.MatrixCell, err error) {
	defer obs.Time(ctx, "backend.CalculateMatrix")(&err)

	if len(q.Origins) == 0 || len(q.Destinations) == 0 {
		return nil, fmt.Errorf("matrix: origins and destinations must be non-empty")
	}

	var body matrixRequest
	for _, o := range q.Origins {
		body.Origins = append(body.Origins, itemPoint{Lat: o.Lat, Lng: o.Lon})
	}
	for _, d := range q.Destinations {
		body.Destinations = append(body.Destinations, itemPoint{Lat: d.Lat, Lng: d.Lon})
	}
	body.TransportMode = transportMode(q.Options.Mode)
	if q.Region.IsEmpty() {
		body.RegionDefinition.Type = "world"
	} else {
		// Pad the box so routes may leave the strict hull of the stops.
		west, south := q.Region.West-boundsMarginDeg, q.Region.South-boundsMarginDeg
		east, north := q.Region.East+boundsMarginDeg, q.Region.North+boundsMarginDeg
		body.RegionDefinition.Type = "boundingBox"
		body.RegionDefinition.West = &west
		body.RegionDefinition.South = &south
		body.RegionDefinition.East = &east
		body.RegionDefinition.North = &north
	}
	body.Matrix.Attributes = []string{"travelTimes", "distances"}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	params := url.Values{}
	params.Set("async", "false")

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, c.matrixURL+"/matrix", cloneValues(params), bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	n, m := len(q.Origins), len(q.Destinations)
	if mr.Matrix.NumOrigins != n || mr.Matrix.NumDestinations != m {
		return nil, fmt.Errorf(
			"matrix dimensions do not match request: got %dx%d want %dx%d",
			mr.Matrix.NumOrigins, mr.Matrix.NumDestinations, n, m,
		)
	}
	if len(mr.Matrix.TravelTimes) != n*m || len(mr.Matrix.Distances) != n*m {
		return nil, fmt.Errorf(
			"matrix payload lengths do not match dimensions: times=%d distances=%d want %d",
			len(mr.Matrix.TravelTimes), len(mr.Matrix.Distances), n*m,
		)
	}

	out := make([][]ports.MatrixCell, n)
	for i := 0; i < n; i++ {
		row := make([]ports.MatrixCell, m)
		for j := 0; j < m; j++ {
			flat := i*m + j
			cell := ports.MatrixCell{
				DistanceMeters:  mr.Matrix.Distances[flat],
				DurationSeconds: mr.Matrix.TravelTimes[flat],
				OK:              true,
			}
			if len(mr.Matrix.ErrorCodes) == n*m && mr.Matrix.ErrorCodes[flat] != 0 {
				cell = ports.MatrixCell{}
			}
			row[j] = cell
		}
		out[i] = row
	}
	return out, nil
}
