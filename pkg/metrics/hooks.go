package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/matzehuels/arranger/pkg/observability"
)

var (
	_ observability.PipelineHooks = (*Registry)(nil)
	_ observability.CacheHooks    = (*Registry)(nil)
	_ observability.HTTPHooks     = (*Registry)(nil)
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

func (r *Registry) OnArrangeStart(_ context.Context, items, _ int) {
	r.PassesInFlight.Inc()
	r.PassItems.Observe(float64(items))
}

func (r *Registry) OnArrangeComplete(_ context.Context, duration time.Duration, err error) {
	r.PassesInFlight.Dec()
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.PassesTotal.WithLabelValues(status).Inc()
	r.PassDuration.Observe(duration.Seconds())
}

func (r *Registry) OnRepairComplete(_ context.Context, moves int, duration time.Duration) {
	r.RepairMoves.Observe(float64(moves))
	r.RepairDuration.Observe(duration.Seconds())
}

func (r *Registry) OnRouteComplete(_ context.Context, _ string, routed bool, points int, duration time.Duration) {
	r.RoutesTotal.WithLabelValues(strconv.FormatBool(routed)).Inc()
	r.RouteDuration.Observe(duration.Seconds())
	r.RoutePoints.Observe(float64(points))
}

// =============================================================================
// Cache Hooks
// =============================================================================

func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheHitsTotal.WithLabelValues(keyType).Inc()
}

func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheMissesTotal.WithLabelValues(keyType).Inc()
}

func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheWriteBytes.WithLabelValues(keyType).Observe(float64(size))
}

// =============================================================================
// HTTP Hooks
// =============================================================================

func (r *Registry) OnRequest(context.Context, string, string) {
	r.HTTPRequestsInFlight.Inc()
}

func (r *Registry) OnResponse(_ context.Context, method, route string, statusCode int, duration time.Duration) {
	r.HTTPRequestsInFlight.Dec()
	status := strconv.Itoa(statusCode)
	r.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}
