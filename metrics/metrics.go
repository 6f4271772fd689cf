package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Upstream (Databricks) metrics
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_upstream_requests_total",
			Help: "Total number of requests forwarded to the Databricks workspace",
		},
		[]string{"method", "status_code"},
	)

	upstreamTransportErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_upstream_transport_errors_total",
			Help: "Total number of upstream calls that failed before a response was obtained",
		},
	)

	runtimeConfigServedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_runtime_config_served_total",
			Help: "Total number of /config.js responses synthesized",
		},
	)
)

// PrometheusMiddleware creates a Fiber middleware for Prometheus metrics
func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Process request
		err := c.Next()

		// Record metrics
		duration := time.Since(start).Seconds()
		method := c.Method()
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		statusCode := strconv.Itoa(c.Response().StatusCode())

		httpRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// RecordUpstreamRequest increments the forwarded-request counter
func RecordUpstreamRequest(method string, statusCode int) {
	upstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
}

// IncrementUpstreamError increments the transport-failure counter
func IncrementUpstreamError() {
	upstreamTransportErrorsTotal.Inc()
}

// IncrementRuntimeConfigServed increments the /config.js counter
func IncrementRuntimeConfigServed() {
	runtimeConfigServedTotal.Inc()
}

// Serve exposes /metrics and /healthz on a dedicated listener, keeping the
// gateway's public surface limited to the SPA, /config.js and /api/*.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return http.ListenAndServe(addr, mux)
}
