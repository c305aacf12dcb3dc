package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	globalMetrics *Metrics
	globalMu      sync.RWMutex
)

// Metrics holds all Prometheus metrics of the service
type Metrics struct {
	// Outbound LINE API calls
	LineRequestsTotal          *prometheus.CounterVec
	LineRequestDurationSeconds *prometheus.HistogramVec
	LineTransportErrorsTotal   *prometheus.CounterVec

	// Inbound gateway requests
	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec
	HTTPInFlight               prometheus.Gauge

	// Narrowcast tracking
	NarrowcastRecordsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates a new Metrics instance with all metrics registered
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		LineRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "line_api_requests_total",
				Help: "Total number of LINE Messaging API calls by operation and status code",
			},
			[]string{"operation", "status"},
		),
		LineRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "line_api_request_duration_seconds",
				Help:    "LINE Messaging API call duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		LineTransportErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "line_api_transport_errors_total",
				Help: "Total number of LINE Messaging API calls that failed before a response",
			},
			[]string{"operation"},
		),

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_inflight_requests",
				Help: "Number of HTTP requests currently being served",
			},
		),

		NarrowcastRecordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "narrowcast_records_total",
				Help: "Total number of tracked narrowcasts by initial phase",
			},
			[]string{"phase"},
		),

		registry: reg,
	}

	reg.MustRegister(
		m.LineRequestsTotal,
		m.LineRequestDurationSeconds,
		m.LineTransportErrorsTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		m.HTTPInFlight,
		m.NarrowcastRecordsTotal,
	)

	return m
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetGlobal sets the global metrics instance
func SetGlobal(m *Metrics) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalMetrics = m
}

// Global returns the global metrics instance
func Global() *Metrics {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalMetrics
}

// ObserveLineRequest records one completed LINE API call
func ObserveLineRequest(operation string, status int, seconds float64) {
	m := Global()
	if m != nil {
		m.LineRequestsTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
		m.LineRequestDurationSeconds.WithLabelValues(operation).Observe(seconds)
	}
}

// IncLineTransportErrors increments the transport failure counter
func IncLineTransportErrors(operation string) {
	m := Global()
	if m != nil {
		m.LineTransportErrorsTotal.WithLabelValues(operation).Inc()
	}
}

// IncNarrowcastRecords increments the tracked narrowcast counter
func IncNarrowcastRecords(phase string) {
	m := Global()
	if m != nil {
		m.NarrowcastRecordsTotal.WithLabelValues(phase).Inc()
	}
}
