package backend

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/platform/obs"
)

// Geocode resolves a free-text address into candidate places, best match
// first.
func (c *Client) Geocode(ctx context.Context, address string) (_ []domain.NormalizedPlace, err error) {
	defer obs.Time(ctx, "backend.Geocode")(&err)

	if strings.TrimSpace(address) == "" {
		return nil, fmt.Errorf("geocode: address must be non-empty")
	}

	params := url.Values{}
	params.Set("q", address)

	items, err := c.fetchItems(ctx, c.searchURL+"/geocode", params)
	if err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	return normalizeItems(items), nil
}

// ReverseGeocode resolves a coordinate into the nearest addressable place.
func (c *Client) ReverseGeocode(ctx context.Context, at domain.Coordinates) (_ *domain.NormalizedPlace, err error) {
	defer obs.Time(ctx, "backend.ReverseGeocode")(&err)

	params := url.Values{}
	params.Set("at", formatAt(at))
	params.Set("limit", "1")

	items, err := c.fetchItems(ctx, c.revGeoURL+"/revgeocode", params)
	if err != nil {
		return nil, fmt.Errorf("revgeocode: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	p := normalizeItem(items[0])
	return &p, nil
}
