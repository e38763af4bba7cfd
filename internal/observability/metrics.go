package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom application metrics.
type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Auth Metrics
	RegistrationsTotal   prometheus.Counter
	LoginAttemptsTotal   *prometheus.CounterVec
	TokensIssuedTotal    prometheus.Counter
	TokenRejectionsTotal *prometheus.CounterVec

	// Task Metrics
	TaskOperationsTotal *prometheus.CounterVec

	// Database Metrics
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge
}

// NewMetrics registers and returns the application metric set.
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		RegistrationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "registrations_total",
				Help: "Total number of successful user registrations",
			},
		),

		LoginAttemptsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "login_attempts_total",
				Help: "Total number of login attempts",
			},
			[]string{"result"}, // success, failure
		),

		TokensIssuedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tokens_issued_total",
				Help: "Total number of bearer tokens issued",
			},
		),

		TokenRejectionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "token_rejections_total",
				Help: "Total number of bearer tokens rejected by the auth middleware",
			},
			[]string{"reason"}, // missing, malformed, expired, invalid
		),

		TaskOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "task_operations_total",
				Help: "Total number of task CRUD operations",
			},
			[]string{"operation", "result"},
		),

		DBConnectionsOpen: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "db_connections_open",
				Help: "Number of open database connections",
			},
		),

		DBConnectionsInUse: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "db_connections_in_use",
				Help: "Number of database connections currently in use",
			},
		),
	}
}

// GlobalMetrics is the process-wide metric set.
var GlobalMetrics *Metrics

// InitMetrics initializes the global metric set.
func InitMetrics() {
	GlobalMetrics = NewMetrics()
}
