package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"trip-planner-service/internal/adapters/geometry"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

const metersPerMile = 1609.34

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
		} `json:"summary"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// RouteProvider implements ports.RouteProvider with the ORS directions API.
// Routes are cached by profile and rounded waypoints when a cache is set.
type RouteProvider struct {
	client *Client
	cache  ports.RouteCache
}

func NewRouteProvider(client *Client, cache ports.RouteCache) *RouteProvider {
	return &RouteProvider{client: client, cache: cache}
}

func (p *RouteProvider) GetRoute(ctx context.Context, waypoints []domain.Coordinates) (_ domain.RouteSummary, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	if len(waypoints) < 2 {
		return domain.RouteSummary{}, fmt.Errorf("get route: need at least 2 waypoints, got %d: %w",
			len(waypoints), domain.ErrRouteComputation)
	}

	key := RouteCacheKey(p.client.profile, waypoints)

	if p.cache != nil {
		route, ok, err := p.cache.Get(ctx, key)
		switch {
		case err != nil:
			// cache failures degrade to a live lookup
			log.Printf("op=ors.GetRoute cache_get_err=%v", err)
			p.client.metrics.ObserveCache("route", "error")
		case ok:
			p.client.metrics.ObserveCache("route", "hit")
			return route, nil
		default:
			p.client.metrics.ObserveCache("route", "miss")
		}
	}

	route, err := p.fetch(ctx, waypoints)
	p.client.metrics.ObserveUpstream("ors_directions", err)
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("get route: %w: %w", domain.ErrRouteComputation, err)
	}

	if p.cache != nil {
		if err := p.cache.Put(ctx, key, route); err != nil {
			log.Printf("op=ors.GetRoute cache_put_err=%v", err)
		}
	}

	return route, nil
}

func (p *RouteProvider) fetch(ctx context.Context, waypoints []domain.Coordinates) (domain.RouteSummary, error) {
	coords := make([][]float64, 0, len(waypoints))
	for _, w := range waypoints {
		coords = append(coords, w.CoordsToList())
	}

	body, err := json.Marshal(directionsRequest{Coordinates: coords})
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("marshal directions request: %w", err)
	}

	endpoint := p.client.baseURL + "/v2/directions/" + p.client.profile

	resp, err := p.client.http.Do(ctx, func() (*http.Request, error) {
		return p.client.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	})
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("execute directions request: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RouteSummary{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return domain.RouteSummary{}, fmt.Errorf("directions response has no routes")
	}
	r := decoded.Routes[0]

	path, err := geometry.Decode(r.Geometry)
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("decode geometry: %w", err)
	}
	if len(path) == 0 {
		path = append([]domain.Coordinates(nil), waypoints...)
	}

	return domain.NewRouteSummary(r.Summary.Distance/metersPerMile, r.Summary.Duration/3600, path)
}

// RouteCacheKey identifies a route by profile and waypoints rounded to 6 decimals.
func RouteCacheKey(profile string, waypoints []domain.Coordinates) string {
	parts := make([]string, 0, len(waypoints))
	for _, w := range domain.RoundCoordinates(waypoints) {
		parts = append(parts, fmt.Sprintf("%.6f,%.6f", w.Lon, w.Lat))
	}
	return profile + "|" + strings.Join(parts, ";")
}
