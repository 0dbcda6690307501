package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"trip-planner-service/internal/adapters/mock"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/clock"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler http.Handler
	routes  *mock.RouteProvider
	metrics *obs.Metrics
}

func newTestServer(miles, hours float64) *testServer {
	clk := clock.NewMockClock(time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC))
	routes := mock.NewRouteProvider(miles, hours, 1200)
	resolver := mock.NewLocationResolver(map[string]domain.Coordinates{
		"Chicago, IL":     {Lon: -87.6298, Lat: 41.8781},
		"St. Louis, MO":   {Lon: -90.1994, Lat: 38.627},
		"Kansas City, MO": {Lon: -94.5786, Lat: 39.0997},
	})
	metrics := obs.NewMetrics()

	planner := services.NewTripPlanner(domain.DefaultRules(), nil, clk)
	svc := services.NewTripService(resolver, routes, planner,
		services.WithClock(clk),
		services.WithMetrics(metrics),
		services.WithLocation(time.UTC),
	)

	return &testServer{
		handler: NewRouter(RouterConfig{
			Trips:          svc,
			Metrics:        metrics,
			AllowedOrigins: []string{"http://localhost:5173"},
			RouteMaxPoints: 100,
		}),
		routes:  routes,
		metrics: metrics,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

const validBody = `{
	"current_location": "Chicago, IL",
	"pickup_location": "St. Louis, MO",
	"dropoff_location": "Kansas City, MO",
	"cycle_used": 20
}`

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestPlanTrip(t *testing.T) {
	srv := newTestServer(1300, 24)

	rec := srv.do(t, http.MethodPost, "/api/trips/plan", validBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	var res dto.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	assert.Equal(t, 1300.0, res.Route.DistanceMiles)
	assert.Equal(t, "1 days 0 hours", res.Route.Duration)
	assert.LessOrEqual(t, len(res.Route.Coordinates), 101)

	require.Len(t, res.Stops, 4)
	assert.Equal(t, "pickup", res.Stops[0].Type)
	assert.Equal(t, "St. Louis, MO", res.Stops[0].Location)
	assert.Equal(t, "rest", res.Stops[1].Type)
	assert.Equal(t, "dropoff", res.Stops[3].Type)
	require.Len(t, res.FuelStops, 1)
	assert.Equal(t, "Fuel stop at mile 1000", res.FuelStops[0].Description)

	require.NotEmpty(t, res.ELDLogs)
	assert.Equal(t, "2026-03-02", res.ELDLogs[0].Date)
	assert.Equal(t, "on_duty", res.ELDLogs[0].Entries[0].Status)

	assert.NotNil(t, res.LogViolations)
	assert.False(t, res.HOSStatus.Compliant)
	assert.Contains(t, res.HOSStatus.Violations, "Trip requires multi-day planning with mandatory rest periods")
	assert.Equal(t, "multi-day planning needed", res.Feasibility.Reason)
	assert.Len(t, res.RestPeriods, 3)
}

func TestPlanTripKeepsValidRequestID(t *testing.T) {
	srv := newTestServer(100, 2)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodPost, "/api/trips/plan", strings.NewReader(validBody))
	req.Header.Set("X-Request-ID", id)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodPost, "/api/trips/plan", strings.NewReader(validBody))
	req.Header.Set("X-Request-ID", "'; drop table")
	rec = httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	assert.NotEqual(t, "'; drop table", rec.Header().Get("X-Request-ID"))
}

func TestPlanTripBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"current_location":`, "invalid json body"},
		{"unknown field", `{"current_location":"a","pickup_location":"b","dropoff_location":"c","cycle_used":1,"truck":1}`, "invalid json body"},
		{"trailing data", validBody + `{}`, "body must contain only one JSON object"},
		{"missing cycle", `{"current_location":"a","pickup_location":"b","dropoff_location":"c"}`, "cycle_used: is required"},
		{"cycle out of range", `{"current_location":"a","pickup_location":"b","dropoff_location":"c","cycle_used":70.5}`, "cycle_used: must be between 0 and 70 hours"},
		{"negative cycle", `{"current_location":"a","pickup_location":"b","dropoff_location":"c","cycle_used":-1}`, "cycle_used: must be between 0 and 70 hours"},
		{"missing pickup", `{"current_location":"a","pickup_location":" ","dropoff_location":"c","cycle_used":1}`, "pickup_location: is required"},
	}

	srv := newTestServer(100, 2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/api/trips/plan", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, errorMessage(t, rec))
		})
	}
	assert.Empty(t, srv.routes.Calls())
}

func TestPlanTripUpstreamFailures(t *testing.T) {
	srv := newTestServer(100, 2)

	body := strings.Replace(validBody, "Kansas City, MO", "Atlantis", 1)
	rec := srv.do(t, http.MethodPost, "/api/trips/plan", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "could not resolve location: Atlantis", errorMessage(t, rec))

	srv.routes.Err = errors.New("dial tcp: connection refused")
	rec = srv.do(t, http.MethodPost, "/api/trips/plan", validBody)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "route computation failed", errorMessage(t, rec))
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestPlanTripMalformedRouteAndInternalFailure(t *testing.T) {
	srv := newTestServer(100, 2)
	srv.routes.Route.Path = nil

	rec := srv.do(t, http.MethodPost, "/api/trips/plan", validBody)
	assert.Equal(t, http.StatusBadGateway, rec.Code, "provider summary without a path")
	assert.Equal(t, "route computation failed", errorMessage(t, rec))

	srv.routes.Route = domain.RouteSummary{DistanceMiles: 100, DurationHours: 2, Path: []domain.Coordinates{{}}}
	start := `"start_at": "0001-01-01T00:00:00Z"`
	body := strings.Replace(validBody, `"cycle_used": 20`, `"cycle_used": 20, `+start, 1)
	rec = srv.do(t, http.MethodPost, "/api/trips/plan", body)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "trip planning failed", errorMessage(t, rec))
}

func TestFeasibility(t *testing.T) {
	srv := newTestServer(825, 15)

	rec := srv.do(t, http.MethodPost, "/api/trips/feasibility", strings.Replace(validBody, "20", "65", 1))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.FeasibilityReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Feasibility.Feasible)
	assert.Equal(t, "multi-day planning needed", res.Feasibility.Reason)
	assert.Equal(t, 5.0, res.AvailableDriveTime.EffectiveLimitHours)
	assert.Equal(t, 5.0, res.AvailableDriveTime.WeeklyRemaining)
	assert.Len(t, res.RestPeriods, 2)
	assert.Equal(t, 825.0, res.Route.DistanceMiles)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(100, 2)

	rec := srv.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	srv.do(t, http.MethodPost, "/api/trips/plan", validBody)

	rec = srv.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `trip_planner_http_requests_total{method="POST",route="/api/trips/plan",status="200"} 1`)
	assert.Contains(t, string(body), `trip_planner_trips_planned_total{outcome="ok"} 1`)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(100, 2)

	rec := srv.do(t, http.MethodGet, "/api/trips/plan", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(100, 2)

	req := httptest.NewRequest(http.MethodOptions, "/api/trips/plan", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
