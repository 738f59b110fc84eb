// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the recommendation API.
package observability

import "github.com/prometheus/client_golang/prometheus"

// SearchBuckets defines histogram buckets suited for in-memory vector
// search latencies, ranging from 1ms to 10s.
var SearchBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}

var (
	// RequestsTotal counts all HTTP requests by method, path, and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shl_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration records HTTP request duration in seconds.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shl_request_duration_seconds",
			Help:    "Request duration",
			Buckets: SearchBuckets,
		},
		[]string{"method", "path"},
	)

	// RecommendationsTotal counts recommendation queries by outcome.
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shl_recommendations_total",
			Help: "Recommendation queries",
		},
		[]string{"status"},
	)

	// EmbeddingLatency records embedding backend latency in seconds.
	EmbeddingLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shl_embedding_latency_seconds",
			Help:    "Embedding latency",
			Buckets: SearchBuckets,
		},
		[]string{"backend"},
	)

	// RateLimitRejectedTotal counts requests rejected by the rate limiter.
	RateLimitRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shl_ratelimit_rejected_total",
			Help: "Rate limit rejections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		RecommendationsTotal,
		EmbeddingLatency,
		RateLimitRejectedTotal,
	)
}
