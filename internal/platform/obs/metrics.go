package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	TripsPlanned       *prometheus.CounterVec // outcome: ok|invalid|upstream|failed
	PlanDuration       prometheus.Histogram
	HOSViolationsTotal prometheus.Counter
	LogDays            prometheus.Histogram

	UpstreamRequests *prometheus.CounterVec // provider, outcome
	CacheLookups     *prometheus.CounterVec // cache, result: hit|miss|error
	EventsPublished  *prometheus.CounterVec // outcome
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trip_planner_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trip_planner_http_request_duration_seconds",
			Help:    "HTTP request latency distribution.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		TripsPlanned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trip_planner_trips_planned_total",
			Help: "Trip planning requests by outcome.",
		}, []string{"outcome"}),
		PlanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trip_planner_plan_duration_seconds",
			Help:    "End-to-end trip planning latency including upstream lookups.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		HOSViolationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trip_planner_hos_violations_total",
			Help: "HOS violations reported across all planned trips.",
		}),
		LogDays: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trip_planner_log_days",
			Help:    "Number of daily log sheets generated per trip.",
			Buckets: []float64{1, 2, 3, 4, 5, 7, 10, 14},
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trip_planner_upstream_requests_total",
			Help: "Geocoding and routing lookups by provider and outcome.",
		}, []string{"provider", "outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trip_planner_cache_lookups_total",
			Help: "Cache lookups by cache and result.",
		}, []string{"cache", "result"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trip_planner_events_published_total",
			Help: "Trip events published by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.TripsPlanned,
		m.PlanDuration,
		m.HOSViolationsTotal,
		m.LogDays,
		m.UpstreamRequests,
		m.CacheLookups,
		m.EventsPublished,
	)

	return m
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObservePlan(outcome string, d time.Duration, violations, logDays int) {
	if m == nil {
		return
	}
	m.TripsPlanned.WithLabelValues(outcome).Inc()
	m.PlanDuration.Observe(d.Seconds())
	if outcome == "ok" {
		m.HOSViolationsTotal.Add(float64(violations))
		m.LogDays.Observe(float64(logDays))
	}
}

func (m *Metrics) ObserveUpstream(provider string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamRequests.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) ObserveCache(cache, result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(cache, result).Inc()
}

func (m *Metrics) ObserveEvent(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.EventsPublished.WithLabelValues(outcome).Inc()
}
