package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Contract for turning a free-text address into a resolved location.
type LocationResolver interface {
	// Failures are returned as *domain.LocationError.
	Resolve(ctx context.Context, address string) (domain.Location, error)
}
