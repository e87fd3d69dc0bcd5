package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"maps-compat-service/internal/categories"
	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/legacy"
	"maps-compat-service/internal/places"
	"maps-compat-service/internal/platform/obs"
	"maps-compat-service/internal/ports"
)

// How long place-details records stay cached. Contact details and opening
// hours drift slowly; a day keeps lookups cheap without serving stale
// closures for long.
const placeCacheTTL = 24 * time.Hour

// PlaceService fronts the backend place operations with legacy-shaped
// results and a details cache.
type PlaceService struct {
	Places   ports.PlaceProvider
	Geocoder ports.GeocodeProvider
	Cache    ports.PlaceCache
}

func NewPlaceService(placeProvider ports.PlaceProvider, geocoder ports.GeocodeProvider, cache ports.PlaceCache) *PlaceService {
	return &PlaceService{Places: placeProvider, Geocoder: geocoder, Cache: cache}
}

// Details looks up one place by ID, cache-first, projected through the
// requested field list.
func (s *PlaceService) Details(ctx context.Context, id string, fields []string) (*legacy.PlaceResult, legacy.Status) {
	if id == "" {
		return nil, legacy.StatusInvalidRequest
	}

	p, err := s.details(ctx, id)
	if err != nil {
		log.Printf("place details failed id=%q err=%q", id, err)
		return nil, legacy.StatusUnknownError
	}
	if p == nil {
		return nil, legacy.StatusNotFound
	}

	r := places.ToPlaceResult(*p, places.NewFieldSet(fields))
	return &r, legacy.StatusOK
}

// ModernDetails serves the class-based place shape used by the newer
// details surface, from the same cache-first lookup.
func (s *PlaceService) ModernDetails(ctx context.Context, id string, fields []string) (*legacy.Place, legacy.Status) {
	if id == "" {
		return nil, legacy.StatusInvalidRequest
	}

	p, err := s.details(ctx, id)
	if err != nil {
		log.Printf("place details failed id=%q err=%q", id, err)
		return nil, legacy.StatusUnknownError
	}
	if p == nil {
		return nil, legacy.StatusNotFound
	}

	return places.ApplyPlaceFields(*p, places.NewFieldSet(fields), nil), legacy.StatusOK
}

func (s *PlaceService) details(ctx context.Context, id string) (_ *domain.NormalizedPlace, err error) {
	defer obs.Time(ctx, "place.details")(&err)

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, id)
		if err != nil {
			log.Printf("place cache read failed id=%q err=%q", id, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	p, err := s.Places.PlaceDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("place details %q: %w", id, err)
	}
	if p == nil {
		return nil, nil
	}

	if s.Cache != nil {
		if err := s.Cache.Put(ctx, p, placeCacheTTL); err != nil {
			log.Printf("place cache write failed id=%q err=%q", id, err)
		}
	}
	return p, nil
}

// TextSearch runs a free-text place search.
func (s *PlaceService) TextSearch(ctx context.Context, query string, near *domain.Coordinates, fields []string) ([]legacy.PlaceResult, legacy.Status) {
	if query == "" {
		return nil, legacy.StatusInvalidRequest
	}

	hits, err := s.Places.TextSearch(ctx, ports.TextSearchQuery{Query: query, Near: near})
	if err != nil {
		log.Printf("text search failed query=%q err=%q", query, err)
		return nil, legacy.StatusUnknownError
	}
	if len(hits) == 0 {
		return nil, legacy.StatusZeroResults
	}

	return toPlaceResults(hits, fields), legacy.StatusOK
}

// NearbySearch searches around a center, optionally narrowed to one legacy
// place type. Types with explicit nil mappings search unfiltered.
func (s *PlaceService) NearbySearch(ctx context.Context, center domain.Coordinates, radiusMeters int, legacyType string, fields []string) ([]legacy.PlaceResult, legacy.Status) {
	q := ports.NearbyQuery{Center: center, RadiusMeters: radiusMeters}
	if legacyType != "" {
		q.Categories = categories.ToBackendCategories(legacyType)
	}

	hits, err := s.Places.NearbySearch(ctx, q)
	if err != nil {
		log.Printf("nearby search failed err=%q", err)
		return nil, legacy.StatusUnknownError
	}
	if len(hits) == 0 {
		return nil, legacy.StatusZeroResults
	}

	return toPlaceResults(hits, fields), legacy.StatusOK
}

// Autocomplete translates backend suggestions into legacy query
// predictions. A missing session token gets a fresh one so backend
// billing still groups the call.
func (s *PlaceService) Autocomplete(ctx context.Context, input, sessionToken string, near *domain.Coordinates) ([]legacy.AutocompletePrediction, legacy.Status) {
	if input == "" {
		return nil, legacy.StatusInvalidRequest
	}
	if sessionToken == "" {
		sessionToken = uuid.NewString()
	}

	suggestions, err := s.Places.Suggest(ctx, ports.SuggestQuery{
		Query:        input,
		Near:         near,
		SessionToken: sessionToken,
	})
	if err != nil {
		log.Printf("autocomplete failed input=%q err=%q", input, err)
		return nil, legacy.StatusUnknownError
	}
	if len(suggestions) == 0 {
		return nil, legacy.StatusZeroResults
	}

	out := make([]legacy.AutocompletePrediction, 0, len(suggestions))
	for _, sug := range suggestions {
		pred := legacy.AutocompletePrediction{
			Description: sug.Title,
			PlaceID:     sug.ID,
			Types:       places.LegacyTypes(domain.NormalizedPlace{ResultType: sug.ResultType}),
		}
		for _, h := range sug.Highlights {
			pred.MatchedSubstrings = append(pred.MatchedSubstrings, legacy.MatchedSubstring{
				Offset: h[0],
				Length: h[1] - h[0],
			})
		}
		out = append(out, pred)
	}
	return out, legacy.StatusOK
}

// Geocode resolves a free-text address into legacy geocoder results.
func (s *PlaceService) Geocode(ctx context.Context, address string) ([]legacy.GeocoderResult, legacy.Status) {
	if address == "" {
		return nil, legacy.StatusInvalidRequest
	}

	hits, err := s.Geocoder.Geocode(ctx, address)
	if err != nil {
		log.Printf("geocode failed address=%q err=%q", address, err)
		return nil, legacy.StatusUnknownError
	}
	if len(hits) == 0 {
		return nil, legacy.StatusZeroResults
	}

	out := make([]legacy.GeocoderResult, 0, len(hits))
	for _, h := range hits {
		out = append(out, places.ToGeocoderResult(h))
	}
	return out, legacy.StatusOK
}

// ReverseGeocode resolves a coordinate into legacy geocoder results.
func (s *PlaceService) ReverseGeocode(ctx context.Context, at domain.Coordinates) ([]legacy.GeocoderResult, legacy.Status) {
	hit, err := s.Geocoder.ReverseGeocode(ctx, at)
	if err != nil {
		log.Printf("reverse geocode failed err=%q", err)
		return nil, legacy.StatusUnknownError
	}
	if hit == nil {
		return nil, legacy.StatusZeroResults
	}

	return []legacy.GeocoderResult{places.ToGeocoderResult(*hit)}, legacy.StatusOK
}

func toPlaceResults(hits []domain.NormalizedPlace, fields []string) []legacy.PlaceResult {
	fs := places.NewFieldSet(fields)
	out := make([]legacy.PlaceResult, 0, len(hits))
	for _, h := range hits {
		out = append(out, places.ToPlaceResult(h, fs))
	}
	return out
}
