package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Cache metrics

	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tearoma",
		Name:      "cache_hits_total",
		Help:      "Total cache reads served from Redis.",
	})

	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tearoma",
		Name:      "cache_misses_total",
		Help:      "Total cache reads that fell through to Postgres.",
	})

	CacheErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tearoma",
		Name:      "cache_errors_total",
		Help:      "Total failed Redis operations, by operation.",
	}, []string{"operation"})

	// Reset-token metrics

	ResetTokensIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tearoma",
		Name:      "reset_tokens_issued_total",
		Help:      "Total password reset tokens issued.",
	})

	ResetTokensConsumed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tearoma",
		Name:      "reset_tokens_consumed_total",
		Help:      "Total reset token consumption attempts, by outcome.",
	}, []string{"outcome"})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tearoma",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tearoma",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		CacheHits,
		CacheMisses,
		CacheErrors,
		ResetTokensIssued,
		ResetTokensConsumed,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer serves /metrics plus the health endpoints on a separate port.
func NewServer(addr string, checker HealthHandler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if checker != nil {
		mux.HandleFunc("/healthz", checker.LivenessHTTP)
		mux.HandleFunc("/readyz", checker.ReadinessHTTP)
	}
	return &http.Server{Addr: addr, Handler: mux}
}

// HealthHandler is satisfied by *health.Checker.
type HealthHandler interface {
	LivenessHTTP(w http.ResponseWriter, r *http.Request)
	ReadinessHTTP(w http.ResponseWriter, r *http.Request)
}
