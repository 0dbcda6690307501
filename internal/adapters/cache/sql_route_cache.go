package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"trip-planner-service/internal/adapters/geometry"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

// SQLRouteCache is the Postgres-backed route cache.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ domain.RouteSummary, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return domain.RouteSummary{}, false, errors.New("route cache: db is nil")
	}

	var miles, hours float64
	var encoded string
	err = s.DB.QueryRowContext(ctx, `
	SELECT distance_miles, duration_hours, geometry
    FROM route_cache
    WHERE cache_key = $1;
	`, key).Scan(&miles, &hours, &encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RouteSummary{}, false, nil
	}
	if err != nil {
		return domain.RouteSummary{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	route, err := decodeRoute(miles, hours, encoded)
	if err != nil {
		return domain.RouteSummary{}, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}
	return route, true, nil
}

func (s *SQLRouteCache) Put(ctx context.Context, key string, route domain.RouteSummary) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: empty key")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO route_cache (cache_key, distance_miles, duration_hours, geometry)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (cache_key) DO UPDATE
	SET distance_miles = EXCLUDED.distance_miles,
		duration_hours = EXCLUDED.duration_hours,
		geometry = EXCLUDED.geometry,
		created_at = now();
	`, key, route.DistanceMiles, route.DurationHours, geometry.Encode(route.Path))
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
