package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/ports"
)

var errBackendDown = errors.New("backend unavailable")

type mockPlaceProvider struct {
	byID        map[string]domain.NormalizedPlace
	byQuery     map[string][]domain.NormalizedPlace
	nearby      []domain.NormalizedPlace
	suggestions []domain.Suggestion
	fail        bool

	detailCalls atomic.Int32
	lastNearby  ports.NearbyQuery
	lastSuggest ports.SuggestQuery
}

func (m *mockPlaceProvider) TextSearch(ctx context.Context, q ports.TextSearchQuery) ([]domain.NormalizedPlace, error) {
	if m.fail {
		return nil, errBackendDown
	}
	return m.byQuery[q.Query], nil
}

func (m *mockPlaceProvider) PlaceDetails(ctx context.Context, id string) (*domain.NormalizedPlace, error) {
	m.detailCalls.Add(1)
	if m.fail {
		return nil, errBackendDown
	}
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockPlaceProvider) NearbySearch(ctx context.Context, q ports.NearbyQuery) ([]domain.NormalizedPlace, error) {
	if m.fail {
		return nil, errBackendDown
	}
	m.lastNearby = q
	return m.nearby, nil
}

func (m *mockPlaceProvider) Suggest(ctx context.Context, q ports.SuggestQuery) ([]domain.Suggestion, error) {
	if m.fail {
		return nil, errBackendDown
	}
	m.lastSuggest = q
	return m.suggestions, nil
}

type mockRouteProvider struct {
	routes []ports.RawRoute
	fail   bool

	lastQuery ports.RouteQuery
}

func (m *mockRouteProvider) CalculateRoutes(ctx context.Context, q ports.RouteQuery) ([]ports.RawRoute, error) {
	if m.fail {
		return nil, errBackendDown
	}
	m.lastQuery = q
	return m.routes, nil
}

type mockSequenceProvider struct {
	order []int
	fail  bool

	calls     atomic.Int32
	lastQuery ports.SequenceQuery
}

func (m *mockSequenceProvider) OptimizeSequence(ctx context.Context, q ports.SequenceQuery) ([]int, error) {
	m.calls.Add(1)
	if m.fail {
		return nil, errBackendDown
	}
	m.lastQuery = q
	return m.order, nil
}

type mockMatrixProvider struct {
	cells [][]ports.MatrixCell
	fail  bool

	lastQuery ports.MatrixQuery
}

func (m *mockMatrixProvider) CalculateMatrix(ctx context.Context, q ports.MatrixQuery) ([][]ports.MatrixCell, error) {
	if m.fail {
		return nil, errBackendDown
	}
	m.lastQuery = q
	return m.cells, nil
}

// mockGeocodeProvider keys reverse lookups by the canonical rounded
// coordinate, same as the cache.
type mockGeocodeProvider struct {
	forward  map[string][]domain.NormalizedPlace
	reverse  map[string]string
	failKeys map[string]bool

	reverseCalls atomic.Int32
}

func (m *mockGeocodeProvider) Geocode(ctx context.Context, address string) ([]domain.NormalizedPlace, error) {
	if m.forward == nil {
		return nil, errBackendDown
	}
	return m.forward[address], nil
}

func (m *mockGeocodeProvider) ReverseGeocode(ctx context.Context, at domain.Coordinates) (*domain.NormalizedPlace, error) {
	m.reverseCalls.Add(1)
	key := revGeoKey(at)
	if m.failKeys[key] {
		return nil, errBackendDown
	}
	label, ok := m.reverse[key]
	if !ok {
		return nil, nil
	}
	return &domain.NormalizedPlace{Label: label, Position: at}, nil
}

type mockRevGeoCache struct {
	store map[string]string

	getCalls atomic.Int32
	putCalls atomic.Int32
}

func newMockRevGeoCache() *mockRevGeoCache {
	return &mockRevGeoCache{store: map[string]string{}}
}

func (m *mockRevGeoCache) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	m.getCalls.Add(1)
	out := map[string]string{}
	for _, k := range keys {
		if v, ok := m.store[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *mockRevGeoCache) PutMany(ctx context.Context, labels map[string]string) error {
	m.putCalls.Add(1)
	for k, v := range labels {
		m.store[k] = v
	}
	return nil
}

type mockPlaceCache struct {
	store map[string]*domain.NormalizedPlace
}

func newMockPlaceCache() *mockPlaceCache {
	return &mockPlaceCache{store: map[string]*domain.NormalizedPlace{}}
}

func (m *mockPlaceCache) Get(ctx context.Context, id string) (*domain.NormalizedPlace, error) {
	return m.store[id], nil
}

func (m *mockPlaceCache) Put(ctx context.Context, place *domain.NormalizedPlace, ttl time.Duration) error {
	m.store[place.ID] = place
	return nil
}
