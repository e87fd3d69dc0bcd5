package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/platform/obs"
	"maps-compat-service/internal/ports"
)

type placeItem struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	ResultType string       `json:"resultType"`
	Address    *itemAddress `json:"address"`
	Position   *itemPoint   `json:"position"`
	MapView    *itemBounds  `json:"mapView"`
	Categories []struct {
		ID      string `json:"id"`
		Primary bool   `json:"primary"`
	} `json:"categories"`
	Contacts []struct {
		Phone []itemValue `json:"phone"`
		WWW   []itemValue `json:"www"`
	} `json:"contacts"`
	OpeningHours []struct {
		IsOpen     bool `json:"isOpen"`
		Structured []struct {
			Start      string `json:"start"`
			Duration   string `json:"duration"`
			Recurrence string `json:"recurrence"`
		} `json:"structured"`
	} `json:"openingHours"`
	TimeZone *struct {
		UTCOffset string `json:"utcOffset"`
	} `json:"timeZone"`
}

type itemAddress struct {
	Label       string `json:"label"`
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
	State       string `json:"state"`
	StateCode   string `json:"stateCode"`
	County      string `json:"county"`
	City        string `json:"city"`
	District    string `json:"district"`
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber"`
	PostalCode  string `json:"postalCode"`
}

type itemPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type itemBounds struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

type itemValue struct {
	Value string `json:"value"`
}

type itemsResponse struct {
	Items []placeItem `json:"items"`
}

// TextSearch queries the backend's free-text discover endpoint.
func (c *Client) TextSearch(ctx context.Context, q ports.TextSearchQuery) (_ []domain.NormalizedPlace, err error) {
	defer obs.Time(ctx, "backend.TextSearch")(&err)

	if strings.TrimSpace(q.Query) == "" {
		return nil, fmt.Errorf("text search: query must be non-empty")
	}

	params := url.Values{}
	params.Set("q", q.Query)
	if q.Near != nil {
		params.Set("at", formatAt(*q.Near))
	}
	if len(q.Categories) > 0 {
		params.Set("categories", strings.Join(q.Categories, ","))
	}
	params.Set("limit", strconv.Itoa(limitOrDefault(q.Limit)))

	items, err := c.fetchItems(ctx, c.searchURL+"/discover", params)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	return normalizeItems(items), nil
}

// PlaceDetails fetches one place by backend ID. A nil result with a nil
// error means the ID is unknown.
func (c *Client) PlaceDetails(ctx context.Context, id string) (_ *domain.NormalizedPlace, err error) {
	defer obs.Time(ctx, "backend.PlaceDetails")(&err)

	if id == "" {
		return nil, fmt.Errorf("place details: id must be non-empty")
	}

	params := url.Values{}
	params.Set("id", id)

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, c.searchURL+"/lookup", cloneValues(params), nil)
	})
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup: %w", err)
	}
	defer resp.Body.Close()

	var item placeItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}
	if item.ID == "" {
		return nil, nil
	}

	p := normalizeItem(item)
	return &p, nil
}

// NearbySearch queries the browse endpoint around a center point.
func (c *Client) NearbySearch(ctx context.Context, q ports.NearbyQuery) (_ []domain.NormalizedPlace, err error) {
	defer obs.Time(ctx, "backend.NearbySearch")(&err)

	params := url.Values{}
	params.Set("at", formatAt(q.Center))
	if q.RadiusMeters > 0 {
		params.Set("in", fmt.Sprintf("circle:%s;r=%d", formatAt(q.Center), q.RadiusMeters))
	}
	if len(q.Categories) > 0 {
		params.Set("categories", strings.Join(q.Categories, ","))
	}
	params.Set("limit", strconv.Itoa(limitOrDefault(q.Limit)))

	items, err := c.fetchItems(ctx, c.searchURL+"/browse", params)
	if err != nil {
		return nil, fmt.Errorf("browse: %w", err)
	}
	return normalizeItems(items), nil
}

type suggestResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		ResultType string `json:"resultType"`
		Highlights struct {
			Title []struct {
				Start int `json:"start"`
				End   int `json:"end"`
			} `json:"title"`
		} `json:"highlights"`
	} `json:"items"`
}

// Suggest queries the typeahead endpoint.
func (c *Client) Suggest(ctx context.Context, q ports.SuggestQuery) (_ []domain.Suggestion, err error) {
	defer obs.Time(ctx, "backend.Suggest")(&err)

	if strings.TrimSpace(q.Query) == "" {
		return nil, fmt.Errorf("suggest: query must be non-empty")
	}

	params := url.Values{}
	params.Set("q", q.Query)
	if q.Near != nil {
		params.Set("at", formatAt(*q.Near))
	}
	if q.SessionToken != "" {
		params.Set("sessionToken", q.SessionToken)
	}
	params.Set("limit", strconv.Itoa(limitOrDefault(q.Limit)))

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, c.searchURL+"/autosuggest", cloneValues(params), nil)
	})
	if err != nil {
		return nil, fmt.Errorf("autosuggest: %w", err)
	}
	defer resp.Body.Close()

	var decoded suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode autosuggest response: %w", err)
	}

	out := make([]domain.Suggestion, 0, len(decoded.Items))
	for _, it := range decoded.Items {
		s := domain.Suggestion{
			ID:         it.ID,
			Title:      it.Title,
			ResultType: domain.ResultType(it.ResultType),
		}
		for _, h := range it.Highlights.Title {
			s.Highlights = append(s.Highlights, [2]int{h.Start, h.End})
		}
		out = append(out, s)
	}
	return out, nil
}

func (c *Client) fetchItems(ctx context.Context, endpoint string, params url.Values) ([]placeItem, error) {
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, endpoint, cloneValues(params), nil)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded itemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return decoded.Items, nil
}

func normalizeItems(items []placeItem) []domain.NormalizedPlace {
	out := make([]domain.NormalizedPlace, 0, len(items))
	for _, it := range items {
		out = append(out, normalizeItem(it))
	}
	return out
}

func normalizeItem(it placeItem) domain.NormalizedPlace {
	p := domain.NormalizedPlace{
		ID:         it.ID,
		Title:      it.Title,
		ResultType: domain.ResultType(it.ResultType),
	}

	if it.Position != nil {
		p.Position = domain.Coordinates{Lon: it.Position.Lng, Lat: it.Position.Lat}
	}
	if it.MapView != nil {
		b := domain.NewBounds(it.MapView.West, it.MapView.South, it.MapView.East, it.MapView.North)
		p.MapView = &b
	}
	if it.Address != nil {
		p.Label = it.Address.Label
		p.Address = domain.Address{
			Label:       it.Address.Label,
			CountryCode: it.Address.CountryCode,
			CountryName: it.Address.CountryName,
			State:       it.Address.State,
			StateCode:   it.Address.StateCode,
			County:      it.Address.County,
			City:        it.Address.City,
			District:    it.Address.District,
			Street:      it.Address.Street,
			HouseNumber: it.Address.HouseNumber,
			PostalCode:  it.Address.PostalCode,
		}
	}

	// Primary category first so downstream type mapping sees it first.
	for _, cat := range it.Categories {
		if cat.Primary {
			p.Categories = append(p.Categories, cat.ID)
		}
	}
	for _, cat := range it.Categories {
		if !cat.Primary {
			p.Categories = append(p.Categories, cat.ID)
		}
	}

	for _, contact := range it.Contacts {
		for _, ph := range contact.Phone {
			p.Contacts.Phones = append(p.Contacts.Phones, ph.Value)
		}
		for _, w := range contact.WWW {
			p.Contacts.Websites = append(p.Contacts.Websites, w.Value)
		}
	}

	if len(it.OpeningHours) > 0 {
		oh := it.OpeningHours[0]
		data := &domain.OpeningHoursData{IsOpen: oh.IsOpen}
		for _, s := range oh.Structured {
			data.Components = append(data.Components, domain.HoursComponent{
				OpenTime:   s.Start,
				Duration:   s.Duration,
				Recurrence: s.Recurrence,
			})
		}
		p.OpeningHours = data
	}

	if it.TimeZone != nil {
		if secs, ok := parseUTCOffset(it.TimeZone.UTCOffset); ok {
			p.UTCOffsetSeconds = &secs
		}
	}

	return p
}

// parseUTCOffset parses "+05:30" / "-07:00" into seconds.
func parseUTCOffset(s string) (int, bool) {
	if len(s) != 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return 0, false
	}
	hours, err := strconv.Atoi(s[1:3])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(s[4:6])
	if err != nil {
		return 0, false
	}
	secs := hours*3600 + minutes*60
	if s[0] == '-' {
		secs = -secs
	}
	return secs, true
}

func formatAt(c domain.Coordinates) string {
	return fmt.Sprintf("%g,%g", c.Lat, c.Lon)
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
