package cache

import (
	"context"
	"errors"
	"log"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// CachingResolver puts a GeocodeCache in front of a LocationResolver.
// Cache errors are logged and fall through to the upstream resolver.
type CachingResolver struct {
	next    ports.LocationResolver
	cache   ports.GeocodeCache
	metrics *obs.Metrics
}

func NewCachingResolver(next ports.LocationResolver, cache ports.GeocodeCache, metrics *obs.Metrics) *CachingResolver {
	return &CachingResolver{next: next, cache: cache, metrics: metrics}
}

// Normalize collapses whitespace so equivalent addresses share a cache key.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (r *CachingResolver) Resolve(ctx context.Context, address string) (domain.Location, error) {
	norm := Normalize(address)
	if norm == "" {
		return domain.Location{}, &domain.LocationError{Address: address, Err: errors.New("address is empty")}
	}

	loc, ok, err := r.cache.Get(ctx, norm)
	switch {
	case err != nil:
		log.Printf("req_id=%s op=geocode.cache.Get address=%q err=%v", obs.RequestID(ctx), norm, err)
		r.metrics.ObserveCache("geocode", "error")
	case ok:
		r.metrics.ObserveCache("geocode", "hit")
		return loc, nil
	default:
		r.metrics.ObserveCache("geocode", "miss")
	}

	loc, err = r.next.Resolve(ctx, norm)
	if err != nil {
		return domain.Location{}, err
	}

	if err := r.cache.Put(ctx, norm, loc); err != nil {
		log.Printf("req_id=%s op=geocode.cache.Put address=%q err=%v", obs.RequestID(ctx), norm, err)
	}

	return loc, nil
}
