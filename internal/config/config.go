// Package config loads service settings from the environment (and an optional
// .env file) plus the HOS rules file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	ORSAPIKey  string
	ORSBaseURL string
	ORSProfile string

	Geocoder           string // nominatim | ors
	NominatimBaseURL   string
	NominatimUserAgent string
	NominatimRPS       float64

	CacheBackend string // sqlite | postgres | none
	DBPath       string
	DatabaseURL  string

	NATSURL     string // empty disables trip events
	NATSSubject string

	// Location decides where daily logs are split at midnight.
	Location  *time.Location
	RulesPath string

	RouteMaxPoints     int
	CORSAllowedOrigins []string
	HTTPTimeout        time.Duration
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Port:               Get("PORT", "8080"),
		ORSAPIKey:          Get("ORS_API_KEY", ""),
		ORSBaseURL:         Get("ORS_BASE_URL", "https://api.openrouteservice.org"),
		ORSProfile:         Get("ORS_PROFILE", "driving-car"),
		Geocoder:           strings.ToLower(Get("GEOCODER", "nominatim")),
		NominatimBaseURL:   Get("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: Get("NOMINATIM_USER_AGENT", "trip-planner-service"),
		CacheBackend:       strings.ToLower(Get("CACHE_BACKEND", "sqlite")),
		DBPath:             Get("DB_PATH", "data/app.db"),
		DatabaseURL:        Get("DATABASE_URL", ""),
		NATSURL:            Get("NATS_URL", ""),
		NATSSubject:        Get("NATS_SUBJECT", "trips.planned"),
		RulesPath:          Get("RULES_PATH", ""),
		CORSAllowedOrigins: splitList(Get("CORS_ALLOWED_ORIGINS", "*")),
	}

	if cfg.ORSAPIKey == "" {
		return nil, errors.New("ORS_API_KEY is required")
	}

	switch cfg.Geocoder {
	case "nominatim", "ors":
	default:
		return nil, fmt.Errorf("invalid GEOCODER: %q (want nominatim or ors)", cfg.Geocoder)
	}

	switch cfg.CacheBackend {
	case "sqlite", "none":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required when CACHE_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("invalid CACHE_BACKEND: %q (want sqlite, postgres or none)", cfg.CacheBackend)
	}

	rps, err := strconv.ParseFloat(Get("NOMINATIM_RPS", "1"), 64)
	if err != nil || rps <= 0 {
		return nil, fmt.Errorf("invalid NOMINATIM_RPS: %q", os.Getenv("NOMINATIM_RPS"))
	}
	cfg.NominatimRPS = rps

	maxPoints, err := strconv.Atoi(Get("ROUTE_MAX_POINTS", "500"))
	if err != nil || maxPoints <= 0 {
		return nil, fmt.Errorf("invalid ROUTE_MAX_POINTS: %q", os.Getenv("ROUTE_MAX_POINTS"))
	}
	cfg.RouteMaxPoints = maxPoints

	timeoutSec, err := strconv.Atoi(Get("HTTP_TIMEOUT_SEC", "30"))
	if err != nil || timeoutSec <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT_SEC: %q", os.Getenv("HTTP_TIMEOUT_SEC"))
	}
	cfg.HTTPTimeout = time.Duration(timeoutSec) * time.Second

	tz := Get("TZ", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ %q: %w", tz, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
