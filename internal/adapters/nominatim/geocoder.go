package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/httpclient"
	"trip-planner-service/internal/platform/obs"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "trip-planner-service"
)

var errNotFound = errors.New("location not found")

// Nominatim returns coordinates as strings.
type place struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Geocoder resolves free-form addresses with the OpenStreetMap Nominatim
// search API. The public instance allows one request per second, so the
// httpclient passed in should carry a limiter.
type Geocoder struct {
	http      *httpclient.Client
	baseURL   string
	userAgent string
	metrics   *obs.Metrics
}

func NewGeocoder(hc *httpclient.Client, baseURL, userAgent string, metrics *obs.Metrics) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Geocoder{
		http:      hc,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		metrics:   metrics,
	}
}

func (g *Geocoder) Resolve(ctx context.Context, address string) (_ domain.Location, err error) {
	defer obs.Time(ctx, "nominatim.Resolve")(&err)

	loc, err := g.search(ctx, address)
	g.metrics.ObserveUpstream("nominatim", err)
	if err != nil {
		return domain.Location{}, &domain.LocationError{Address: address, Err: err}
	}
	return loc, nil
}

func (g *Geocoder) search(ctx context.Context, address string) (domain.Location, error) {
	endpoint := g.baseURL + "/search"

	resp, err := g.http.Do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", g.userAgent)
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("q", address)
		q.Set("format", "json")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Location{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return domain.Location{}, fmt.Errorf("decode search response: %w", err)
	}
	if len(places) == 0 {
		return domain.Location{}, errNotFound
	}

	p := places[0]
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("parse lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("parse lon %q: %w", p.Lon, err)
	}

	name := p.DisplayName
	if name == "" {
		name = address
	}

	return domain.Location{
		DisplayName: name,
		Coordinates: domain.Coordinates{Lon: lon, Lat: lat},
	}, nil
}
