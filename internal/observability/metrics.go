// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tapestry_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// StoreQueryLatency records store query latency by operation and table.
	StoreQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tapestry_store_query_latency_seconds",
		Help:    "Persistent store query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ThreadsCreated counts thread writes by kind (root or reply).
	ThreadsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tapestry_threads_created_total",
		Help: "Total number of threads created",
	}, []string{"kind"})

	// CacheHits counts profile cache hits and misses.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tapestry_cache_requests_total",
		Help: "Cache lookups by key prefix and result",
	}, []string{"prefix", "result"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		StoreQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
