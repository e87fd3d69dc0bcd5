package handlers

import (
	"net/http"
	"strconv"

	"maps-compat-service/internal/api/dto"
	"maps-compat-service/internal/domain"
	"maps-compat-service/internal/legacy"
	"maps-compat-service/internal/services"
)

// PlaceHandler serves the legacy place surface: details, text search,
// nearby search and autocomplete.
type PlaceHandler struct {
	Service *services.PlaceService
}

// Details handles GET /place/details.
func (h *PlaceHandler) Details(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := r.URL.Query().Get("place_id")
	fields := dto.ParseFields(r.URL.Query().Get("fields"))

	result, status := h.Service.Details(r.Context(), id, fields)
	writeJSON(w, r, httpStatus(status), map[string]any{
		"status": status,
		"result": result,
	})
}

// ModernDetails handles GET /place/v2/details, serving the class-based
// result shape with camelCase fields.
func (h *PlaceHandler) ModernDetails(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := r.URL.Query().Get("place_id")
	fields := dto.ParseFields(r.URL.Query().Get("fields"))

	place, status := h.Service.ModernDetails(r.Context(), id, fields)
	writeJSON(w, r, httpStatus(status), map[string]any{
		"status": status,
		"place":  place,
	})
}

// TextSearch handles GET /place/textsearch.
func (h *PlaceHandler) TextSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	near := parseOptionalLatLng(q.Get("location"))
	fields := dto.ParseFields(q.Get("fields"))

	results, status := h.Service.TextSearch(r.Context(), q.Get("query"), near, fields)
	writeJSON(w, r, httpStatus(status), map[string]any{
		"status":  status,
		"results": emptyWhenNil(results),
	})
}

// Nearby handles GET /place/nearbysearch.
func (h *PlaceHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	center, ok := dto.ParseLatLng(q.Get("location"))
	if !ok {
		writeJSON(w, r, http.StatusBadRequest, map[string]any{"status": legacy.StatusInvalidRequest})
		return
	}

	radius := 0
	if s := q.Get("radius"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeJSON(w, r, http.StatusBadRequest, map[string]any{"status": legacy.StatusInvalidRequest})
			return
		}
		radius = n
	}

	results, status := h.Service.NearbySearch(r.Context(), center, radius, q.Get("type"), dto.ParseFields(q.Get("fields")))
	writeJSON(w, r, httpStatus(status), map[string]any{
		"status":  status,
		"results": emptyWhenNil(results),
	})
}

// Autocomplete handles GET /place/autocomplete.
func (h *PlaceHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	near := parseOptionalLatLng(q.Get("location"))

	predictions, status := h.Service.Autocomplete(r.Context(), q.Get("input"), q.Get("sessiontoken"), near)
	writeJSON(w, r, httpStatus(status), map[string]any{
		"status":      status,
		"predictions": emptyWhenNil(predictions),
	})
}

func parseOptionalLatLng(s string) *domain.Coordinates {
	if s == "" {
		return nil
	}
	c, ok := dto.ParseLatLng(s)
	if !ok {
		return nil
	}
	return &c
}

// The legacy surface keeps HTTP 200 for domain statuses like ZERO_RESULTS;
// only malformed requests and internal failures surface as HTTP errors.
func httpStatus(status legacy.Status) int {
	switch status {
	case legacy.StatusInvalidRequest:
		return http.StatusBadRequest
	case legacy.StatusUnknownError:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

func emptyWhenNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
