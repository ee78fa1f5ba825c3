package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Rental workflow metrics
	RentalsTotal   *prometheus.CounterVec
	ReturnsTotal   *prometheus.CounterVec
	OverdueRentals prometheus.Gauge

	// Payment gateway metrics
	PaymentAttemptsTotal *prometheus.CounterVec
	BreakerState         *prometheus.GaugeVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// Rental/return outcome labels.
const (
	OutcomeOK          = "ok"
	OutcomeDeclined    = "payment_declined"
	OutcomeUnavailable = "unavailable"
	OutcomeNotFound    = "not_found"
	OutcomeError       = "error"
)

// NewMetrics creates and registers all metrics against the given registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := prometheus.WrapRegistererWith(nil, reg)

	m := &Metrics{
		RentalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rentals_total",
				Help:      "Total number of rent attempts by outcome",
			},
			[]string{"outcome"},
		),
		ReturnsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "returns_total",
				Help:      "Total number of return attempts by outcome",
			},
			[]string{"outcome"},
		),
		OverdueRentals: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "overdue_rentals",
				Help:      "Number of active rentals past their due date at the last sweep",
			},
		),
		PaymentAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payment_attempts_total",
				Help:      "Total number of payment attempts by gateway and result",
			},
			[]string{"gateway", "result"},
		),
		BreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "payment_breaker_state",
				Help:      "Circuit breaker state per gateway (0 closed, 1 half-open, 2 open)",
			},
			[]string{"gateway"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	factory.MustRegister(
		m.RentalsTotal,
		m.ReturnsTotal,
		m.OverdueRentals,
		m.PaymentAttemptsTotal,
		m.BreakerState,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}
