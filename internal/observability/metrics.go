package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the prometheus instruments the service exposes.
type Metrics struct {
	commandDuration *prometheus.HistogramVec
	conflicts       *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "commerce",
			Name:      "command_duration_seconds",
			Help:      "Latency of command handler units of work.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "commerce",
			Name:      "command_conflicts_total",
			Help:      "Optimistic concurrency conflicts per operation.",
		}, []string{"op"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "commerce",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "commerce",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	registry.MustRegister(m.commandDuration, m.conflicts, m.httpRequests, m.httpLatency)
	return m
}

func (m *Metrics) ObserveCommand(op, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.commandDuration.WithLabelValues(op, status).Observe(dur.Seconds())
}

func (m *Metrics) IncConflict(op string) {
	if m == nil {
		return
	}
	m.conflicts.WithLabelValues(op).Inc()
}

func (m *Metrics) ObserveRequest(route, method, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// Handler serves the default registry on /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
