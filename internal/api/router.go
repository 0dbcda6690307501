package api

import (
	"net/http"
	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/platform/obs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	Trips          handlers.TripPlanner
	Metrics        *obs.Metrics
	AllowedOrigins []string
	RouteMaxPoints int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(cfg.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	tripHandler := &handlers.TripHandler{
		Service:        cfg.Trips,
		RouteMaxPoints: cfg.RouteMaxPoints,
	}

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())

	r.Route("/api/trips", func(r chi.Router) {
		r.Post("/plan", tripHandler.Plan)
		r.Post("/feasibility", tripHandler.Feasibility)
	})

	return r
}
