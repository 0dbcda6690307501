package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/events"
	"trip-planner-service/internal/adapters/nominatim"
	"trip-planner-service/internal/adapters/ors"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/clock"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/httpclient"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (ORS, Nominatim, SQL caches, NATS) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		log.Fatal(err)
	}

	metrics := obs.NewMetrics()

	conn, dialect, err := openCacheDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if conn != nil {
		defer conn.Close()
		if err := db.InitSchema(context.Background(), conn, dialect); err != nil {
			log.Fatal(err)
		}
	}
	geocodeCache, routeCache := newCaches(conn, dialect)

	orsClient, err := ors.NewClient(
		cfg.ORSAPIKey, cfg.ORSBaseURL, cfg.ORSProfile,
		httpclient.New(cfg.HTTPTimeout, nil),
		metrics,
	)
	if err != nil {
		log.Fatal(err)
	}

	var geocoder ports.LocationResolver
	switch cfg.Geocoder {
	case "ors":
		geocoder = ors.NewGeocoder(orsClient)
	default:
		limiter := rate.NewLimiter(rate.Limit(cfg.NominatimRPS), 1)
		geocoder = nominatim.NewGeocoder(
			httpclient.New(cfg.HTTPTimeout, limiter),
			cfg.NominatimBaseURL, cfg.NominatimUserAgent, metrics,
		)
	}

	var resolver ports.LocationResolver = geocoder
	if geocodeCache != nil {
		resolver = cache.NewCachingResolver(geocoder, geocodeCache, metrics)
	}

	routes := ors.NewRouteProvider(orsClient, routeCache)

	var publisher ports.TripEventPublisher = events.NopPublisher{}
	if cfg.NATSURL != "" {
		p, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			log.Fatal(err)
		}
		defer p.Close()
		publisher = p
	}

	clk := clock.RealClock{Location: cfg.Location}
	planner := services.NewTripPlanner(rules, services.DefaultLegPolicy(), clk)
	svc := services.NewTripService(resolver, routes, planner,
		services.WithPublisher(publisher),
		services.WithMetrics(metrics),
		services.WithClock(clk),
		services.WithLocation(cfg.Location),
	)

	router := api.NewRouter(api.RouterConfig{
		Trips:          svc,
		Metrics:        metrics,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RouteMaxPoints: cfg.RouteMaxPoints,
	})

	// Write timeout covers cold-cache planning: three geocodes plus directions, each retried.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server listening addr=:%s geocoder=%s cache=%s tz=%s", cfg.Port, cfg.Geocoder, cfg.CacheBackend, cfg.Location)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown failed: %v", err)
	}
}

func openCacheDB(cfg *config.Config) (*sql.DB, db.Dialect, error) {
	switch cfg.CacheBackend {
	case "sqlite":
		conn, err := db.OpenSQLite(cfg.DBPath)
		return conn, db.SQLite, err
	case "postgres":
		conn, err := db.Open(cfg.DatabaseURL)
		return conn, db.Postgres, err
	case "none":
		return nil, "", nil
	default:
		return nil, "", fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

func newCaches(conn *sql.DB, dialect db.Dialect) (ports.GeocodeCache, ports.RouteCache) {
	switch {
	case conn == nil:
		return nil, nil
	case dialect == db.Postgres:
		return cache.NewSQLGeocodeCache(conn), cache.NewSQLRouteCache(conn)
	default:
		return cache.NewSqliteGeocodeCache(conn), cache.NewSqliteRouteCache(conn)
	}
}
