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

// SqliteRouteCache stores route summaries keyed by profile and waypoints.
// The path is kept as an encoded polyline, so cached coordinates carry
// 5-decimal precision.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

func (s *SqliteRouteCache) Get(ctx context.Context, key string) (_ domain.RouteSummary, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return domain.RouteSummary{}, false, errors.New("route cache: db is nil")
	}

	var miles, hours float64
	var encoded string
	err = s.DB.QueryRowContext(ctx, `
	SELECT
        distance_miles,
        duration_hours,
        geometry
    FROM route_cache
    WHERE cache_key = ?;
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

func (s *SqliteRouteCache) Put(ctx context.Context, key string, route domain.RouteSummary) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: empty key")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO route_cache (
        cache_key,
        distance_miles,
        duration_hours,
        geometry
    )
    VALUES (?, ?, ?, ?);
	`, key, route.DistanceMiles, route.DurationHours, geometry.Encode(route.Path))
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}

func decodeRoute(miles, hours float64, encoded string) (domain.RouteSummary, error) {
	path, err := geometry.Decode(encoded)
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("decode geometry: %w", err)
	}
	return domain.NewRouteSummary(miles, hours, path)
}
