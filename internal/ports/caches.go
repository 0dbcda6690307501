package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Persistent cache of address -> location lookups.
// Get reports ok=false on a miss; errors are reserved for storage failures.
type GeocodeCache interface {
	Get(ctx context.Context, address string) (domain.Location, bool, error)
	Put(ctx context.Context, address string, loc domain.Location) error
}

// Persistent cache of routing results keyed by profile and waypoint list.
type RouteCache interface {
	Get(ctx context.Context, key string) (domain.RouteSummary, bool, error)
	Put(ctx context.Context, key string, route domain.RouteSummary) error
}
