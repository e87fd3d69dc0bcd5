package handlers

import (
	"net/http"

	"maps-compat-service/internal/api/dto"
	"maps-compat-service/internal/legacy"
	"maps-compat-service/internal/services"
)

// GeocodeHandler serves forward and reverse geocoding on one endpoint,
// selected by whether the caller passed address= or latlng=.
type GeocodeHandler struct {
	Service *services.PlaceService
}

func (h *GeocodeHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()

	if latlng := q.Get("latlng"); latlng != "" {
		at, ok := dto.ParseLatLng(latlng)
		if !ok {
			writeJSON(w, r, http.StatusBadRequest, map[string]any{"status": legacy.StatusInvalidRequest})
			return
		}
		results, status := h.Service.ReverseGeocode(r.Context(), at)
		writeJSON(w, r, httpStatus(status), map[string]any{
			"status":  status,
			"results": emptyWhenNil(results),
		})
		return
	}

	results, status := h.Service.Geocode(r.Context(), q.Get("address"))
	writeJSON(w, r, httpStatus(status), map[string]any{
		"status":  status,
		"results": emptyWhenNil(results),
	})
}
