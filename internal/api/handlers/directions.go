package handlers

import (
	"encoding/json"
	"net/http"

	"maps-compat-service/internal/api/dto"
	"maps-compat-service/internal/legacy"
	"maps-compat-service/internal/services"
)

// DirectionsHandler serves POST /directions.
type DirectionsHandler struct {
	Service *services.DirectionsService
}

func (h *DirectionsHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var payload dto.DirectionsRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	req, err := payload.ToService()
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]any{
			"status": legacy.StatusInvalidRequest,
			"error":  err.Error(),
		})
		return
	}

	result, status := h.Service.Calculate(r.Context(), req)

	body := map[string]any{"status": status}
	if result != nil {
		body["routes"] = result.Routes
		if result.GeocodedWaypoints != nil {
			body["geocoded_waypoints"] = result.GeocodedWaypoints
		}
	} else {
		body["routes"] = []legacy.DirectionsRoute{}
	}
	writeJSON(w, r, httpStatus(status), body)
}
