package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"maps-compat-service/internal/adapters/backend"
	"maps-compat-service/internal/adapters/cache"
	"maps-compat-service/internal/api"
	"maps-compat-service/internal/config"
	"maps-compat-service/internal/platform/db"
	"maps-compat-service/internal/ports"
	"maps-compat-service/internal/services"
)

// main is the application composition root. It wires the mapping backend
// and the optional caches behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	apiKey := os.Getenv("BACKEND_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Fatal("BACKEND_API_KEY is required")
	}

	client, err := backend.NewClient(apiKey)
	if err != nil {
		log.Fatal(err)
	}

	// Postgres backs the reverse-geocode label cache. The service runs
	// without it; matrix requests just hit the backend more often.
	var revGeoCache ports.RevGeocodeCache
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		revGeoCache = cache.NewPGRevGeocodeCache(pg)
	} else {
		log.Println("DATABASE_URL not set, reverse-geocode cache disabled")
	}

	// Redis backs the place-details cache, likewise optional.
	var placeCache ports.PlaceCache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		placeCache = cache.NewRedisPlaceCache(redis.NewClient(&redis.Options{Addr: redisAddr}))
	} else {
		log.Println("REDIS_ADDR not set, place cache disabled")
	}

	resolver := services.NewResolver(client)
	placeService := services.NewPlaceService(client, client, placeCache)
	directionsService := services.NewDirectionsService(resolver, client, client)
	matrixService := services.NewMatrixService(resolver, client, client, revGeoCache)

	router := api.NewRouter(placeService, directionsService, matrixService)

	// Timeouts are tuned for fan-out requests (matrix label batches hit
	// the backend once per uncached stop).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
