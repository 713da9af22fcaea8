package http

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics are the per-server Prometheus collectors. Each HTTPServer owns its
// own registry so several servers can live in one process.
type metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{registry: prometheus.NewRegistry()}

	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snipkeeper",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "snipkeeper",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	m.failures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snipkeeper",
		Subsystem: "http",
		Name:      "errors_total",
		Help:      "Error responses by kind",
	}, []string{"kind"})

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.failures,
		collectors.NewGoCollector(),
	)

	return m
}

func (m *metrics) observe(method, route string, status int, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(seconds)
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
