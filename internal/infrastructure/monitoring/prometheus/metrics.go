// Package prometheus exposes the service's Prometheus instrumentation.
package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles every collector the service registers. Construct exactly one
// per process with NewMetrics; collectors are registered on the given registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ExtractionsTotal    *prometheus.CounterVec
	ExtractionFallbacks prometheus.Counter

	RetrievalDuration  prometheus.Histogram
	CandidatesReturned prometheus.Histogram
	MatchesTotal       *prometheus.CounterVec

	CatalogEventsTotal *prometheus.CounterVec
}

// NewMetrics creates a fresh registry with all service collectors plus the
// standard Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendoriq",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vendoriq",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		ExtractionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendoriq",
			Subsystem: "extract",
			Name:      "extractions_total",
			Help:      "Criteria extractions by strategy actually used.",
		}, []string{"strategy"}),

		ExtractionFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vendoriq",
			Subsystem: "extract",
			Name:      "fallbacks_total",
			Help:      "Extractions that fell back to the deterministic strategy.",
		}),

		RetrievalDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vendoriq",
			Subsystem: "match",
			Name:      "retrieval_duration_seconds",
			Help:      "Candidate retrieval latency against the graph store.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		CandidatesReturned: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vendoriq",
			Subsystem: "match",
			Name:      "candidates_returned",
			Help:      "Number of candidates the retriever produced per request.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100, 250},
		}),

		MatchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendoriq",
			Subsystem: "match",
			Name:      "requests_total",
			Help:      "Match requests by outcome (ok, empty, error).",
		}, []string{"outcome"}),

		CatalogEventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendoriq",
			Subsystem: "catalog",
			Name:      "events_total",
			Help:      "Catalog change events published, by event type and result.",
		}, []string{"type", "result"}),
	}
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records one completed HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
