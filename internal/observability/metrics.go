package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// search pipeline.
type Metrics struct {
	SearchRequests *prometheus.CounterVec // labels: outcome={hit,miss,error}
	CacheEntries   prometheus.Gauge

	// Upstream client metrics.
	UpstreamRequests *prometheus.CounterVec // labels: outcome={success,rate_limited,timeout,error}
	UpstreamDuration prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SearchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "top_places",
			Name:      "search_requests_total",
			Help:      "Search requests by outcome: served from cache, fetched upstream, or failed.",
		}, []string{"outcome"}),
		CacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "top_places",
			Name:      "cache_entries",
			Help:      "Live (unexpired) entries in the response cache.",
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "top_places",
			Name:      "upstream_requests_total",
			Help:      "Yelp API requests by outcome.",
		}, []string{"outcome"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "top_places",
			Name:      "upstream_request_duration_seconds",
			Help:      "Yelp API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}

	prometheus.MustRegister(
		m.SearchRequests,
		m.CacheEntries,
		m.UpstreamRequests,
		m.UpstreamDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SearchRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "top_places", Name: "search_requests_total"}, []string{"outcome"}),
		CacheEntries:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "top_places", Name: "cache_entries"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "top_places", Name: "upstream_requests_total"}, []string{"outcome"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "top_places", Name: "upstream_request_duration_seconds"}),
	}
}
