package mock

import (
	"context"
	"errors"
	"sync"
	"trip-planner-service/internal/domain"
)

var ErrUnknownAddress = errors.New("address not found")

// LocationResolver resolves addresses from a fixed table. Unknown addresses
// fail with *domain.LocationError.
type LocationResolver struct {
	mu        sync.Mutex
	locations map[string]domain.Location
	lookups   int
}

func NewLocationResolver(points map[string]domain.Coordinates) *LocationResolver {
	m := make(map[string]domain.Location, len(points))
	for addr, c := range points {
		m[addr] = domain.Location{DisplayName: addr, Coordinates: c}
	}
	return &LocationResolver{locations: m}
}

// Rename sets the display name returned for an address already in the table.
func (r *LocationResolver) Rename(address, displayName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if loc, ok := r.locations[address]; ok {
		loc.DisplayName = displayName
		r.locations[address] = loc
	}
}

func (r *LocationResolver) Resolve(ctx context.Context, address string) (domain.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lookups++
	loc, ok := r.locations[address]
	if !ok {
		return domain.Location{}, &domain.LocationError{Address: address, Err: ErrUnknownAddress}
	}
	return loc, nil
}

// Lookups counts Resolve calls, hits and misses alike.
func (r *LocationResolver) Lookups() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookups
}
