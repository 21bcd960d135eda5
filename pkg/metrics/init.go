package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPipelineMetrics() {
	f := promauto.With(r.registry)

	r.PassesTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "Total number of layout passes by outcome",
		},
		[]string{"status"},
	)

	r.PassDuration = f.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Layout pass latency in seconds",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
	)

	r.PassItems = f.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_items",
			Help:      "Number of items per layout pass",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		},
	)

	r.PassesInFlight = f.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "passes_in_flight",
			Help:      "Current number of layout passes being computed",
		},
	)

	r.RepairMoves = f.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "repair_moves",
			Help:      "Committed collision moves per pass",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		},
	)

	r.RepairDuration = f.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "repair_duration_seconds",
			Help:      "Collision repair latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	r.RoutesTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routes_total",
			Help:      "Total number of joins routed, by whether a path was found",
		},
		[]string{"routed"},
	)

	r.RouteDuration = f.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_duration_seconds",
			Help:      "Per-join routing latency in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	r.RoutePoints = f.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_points",
			Help:      "Points per computed route",
			Buckets:   []float64{2, 3, 4, 6, 8, 12, 16, 32},
		},
	)
}

func (r *Registry) initCacheMetrics() {
	f := promauto.With(r.registry)

	r.CacheHitsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of cache hits",
		},
		[]string{"type"},
	)

	r.CacheMissesTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of cache misses",
		},
		[]string{"type"},
	)

	r.CacheWriteBytes = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cache_write_bytes",
			Help:      "Size of cache entries written",
			Buckets:   []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"type"},
	)
}

func (r *Registry) initHTTPMetrics() {
	f := promauto.With(r.registry)

	r.HTTPRequestsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestsInFlight = f.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
}
