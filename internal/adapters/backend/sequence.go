package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"maps-compat-service/internal/platform/obs"
	"maps-compat-service/internal/ports"
)

type sequenceResponse struct {
	Results []struct {
		Waypoints []struct {
			ID       string `json:"id"`
			Sequence int    `json:"sequence"`
		} `json:"waypoints"`
	} `json:"results"`
}

// OptimizeSequence asks the backend for the best visiting order of the
// intermediate stops. Intermediates are keyed "destination<i>" on the
// wire; the response's sequence positions are mapped back to the query's
// slice indexes.
func (c *Client) OptimizeSequence(ctx context.Context, q ports.SequenceQuery) (_ []int, err error) {
	defer obs.Time(ctx, "backend.OptimizeSequence")(&err)

	if len(q.Intermediates) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("start", formatAt(q.Start))
	params.Set("end", formatAt(q.End))
	params.Set("mode", "fastest;"+transportMode(q.Options.Mode))
	for i, w := range q.Intermediates {
		params.Set(fmt.Sprintf("destination%d", i), formatAt(w))
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, c.sequenceURL+"/findsequence.json", cloneValues(params), nil)
	})
	if err != nil {
		return nil, fmt.Errorf("findsequence: %w", err)
	}
	defer resp.Body.Close()

	var decoded sequenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode findsequence response: %w", err)
	}
	if len(decoded.Results) == 0 {
		return nil, fmt.Errorf("findsequence: empty result set")
	}

	// Waypoints include the fixed start and end stops; only the
	// destination entries participate in the ordering.
	type placed struct {
		index    int
		sequence int
	}
	var ordered []placed
	for _, wp := range decoded.Results[0].Waypoints {
		if !strings.HasPrefix(wp.ID, "destination") {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimPrefix(wp.ID, "destination"))
		if err != nil || idx < 0 || idx >= len(q.Intermediates) {
			return nil, fmt.Errorf("findsequence: unexpected waypoint id %q", wp.ID)
		}
		ordered = append(ordered, placed{index: idx, sequence: wp.Sequence})
	}
	if len(ordered) != len(q.Intermediates) {
		return nil, fmt.Errorf(
			"findsequence: got %d ordered waypoints, want %d",
			len(ordered), len(q.Intermediates),
		)
	}

	sort.Slice(ordered, func(i, j int) bool { return ordered[i].sequence < ordered[j].sequence })

	out := make([]int, len(ordered))
	used := make([]bool, len(ordered))
	for rank, p := range ordered {
		if used[p.index] {
			return nil, fmt.Errorf("findsequence: duplicate waypoint index %d", p.index)
		}
		used[p.index] = true
		out[rank] = p.index
	}
	return out, nil
}
