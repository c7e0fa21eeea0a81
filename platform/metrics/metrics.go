// Package metrics provides Prometheus instrumentation for the HTTP layer and
// the federated search pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "records"

// Metrics holds all Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Search metrics
	SearchRequestsTotal  *prometheus.CounterVec
	SearchDuration       prometheus.Histogram
	SearchResultsTotal   prometheus.Histogram
	SearcherDuration     *prometheus.HistogramVec
	SearcherErrorsTotal  *prometheus.CounterVec
	SearcherResultsTotal *prometheus.CounterVec
}

// New creates a registry with Go/process collectors and registers all metrics on it.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(registry)
}

// NewWithRegistry creates and registers all metrics on registry.
func NewWithRegistry(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		SearchRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_requests_total",
				Help:      "Total number of federated searches by outcome",
			},
			[]string{"outcome"},
		),
		SearchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "End-to-end federated search duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		SearchResultsTotal: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_total_count",
				Help:      "Pre-pagination match count per search",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		SearcherDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "searcher_duration_seconds",
				Help:      "Per-entity searcher duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"entity"},
		),
		SearcherErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searcher_errors_total",
				Help:      "Total number of per-entity searcher failures",
			},
			[]string{"entity"},
		),
		SearcherResultsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searcher_results_total",
				Help:      "Total number of results emitted per entity searcher",
			},
			[]string{"entity"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SearchRequestsTotal,
		m.SearchDuration,
		m.SearchResultsTotal,
		m.SearcherDuration,
		m.SearcherErrorsTotal,
		m.SearcherResultsTotal,
	)

	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveSearch records the outcome of one federated search.
func (m *Metrics) ObserveSearch(outcome string, duration time.Duration, totalCount int) {
	m.SearchRequestsTotal.WithLabelValues(outcome).Inc()
	m.SearchDuration.Observe(duration.Seconds())
	if outcome == "ok" || outcome == "partial" {
		m.SearchResultsTotal.Observe(float64(totalCount))
	}
}

// ObserveSearcher records one entity searcher invocation.
func (m *Metrics) ObserveSearcher(entity string, duration time.Duration, results int, err error) {
	m.SearcherDuration.WithLabelValues(entity).Observe(duration.Seconds())
	if err != nil {
		m.SearcherErrorsTotal.WithLabelValues(entity).Inc()
		return
	}
	m.SearcherResultsTotal.WithLabelValues(entity).Add(float64(results))
}
