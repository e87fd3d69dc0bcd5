package api

import (
	"net/http"

	"maps-compat-service/internal/api/handlers"
	"maps-compat-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware
// of concrete adapters).
func NewRouter(
	placeService *services.PlaceService,
	directionsService *services.DirectionsService,
	matrixService *services.MatrixService,
) http.Handler {
	mux := http.NewServeMux()

	placeHandler := &handlers.PlaceHandler{Service: placeService}
	geocodeHandler := &handlers.GeocodeHandler{Service: placeService}
	directionsHandler := &handlers.DirectionsHandler{Service: directionsService}
	matrixHandler := &handlers.MatrixHandler{Service: matrixService}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/place/details", placeHandler.Details)
	mux.HandleFunc("/place/v2/details", placeHandler.ModernDetails)
	mux.HandleFunc("/place/textsearch", placeHandler.TextSearch)
	mux.HandleFunc("/place/nearbysearch", placeHandler.Nearby)
	mux.HandleFunc("/place/autocomplete", placeHandler.Autocomplete)
	mux.HandleFunc("/geocode", geocodeHandler.Geocode)
	mux.HandleFunc("/directions", directionsHandler.Calculate)
	mux.HandleFunc("/distancematrix", matrixHandler.Calculate)

	return requestIDMiddleware(loggingMiddleware(mux))
}
