package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the psychrometric
// API server.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec   // labels: route, outcome={success,client_error,server_error}
	RequestDuration *prometheus.HistogramVec // labels: route

	// Computation metrics.
	StateComputations  *prometheus.CounterVec // labels: constructor
	SolverFailures     prometheus.Counter
	ChartLinesRendered prometheus.Counter
}

// NewMetrics creates and registers all server metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psychro",
			Name:      "requests_total",
			Help:      "API requests by route and outcome.",
		}, []string{"route", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "psychro",
			Name:      "request_duration_seconds",
			Help:      "API request duration in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
		}, []string{"route"}),
		StateComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psychro",
			Name:      "state_computations_total",
			Help:      "Moist-air states computed, by constructor.",
		}, []string{"constructor"}),
		SolverFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "psychro",
			Name:      "solver_failures_total",
			Help:      "Newton-Raphson solves that failed to converge.",
		}),
		ChartLinesRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "psychro",
			Name:      "chart_lines_rendered_total",
			Help:      "Psychrometric chart lines generated.",
		}),
	}

	prometheus.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.StateComputations,
		m.SolverFailures,
		m.ChartLinesRendered,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RequestsTotal:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "psychro", Name: "requests_total"}, []string{"route", "outcome"}),
		RequestDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "psychro", Name: "request_duration_seconds"}, []string{"route"}),
		StateComputations:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "psychro", Name: "state_computations_total"}, []string{"constructor"}),
		SolverFailures:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "psychro", Name: "solver_failures_total"}),
		ChartLinesRendered: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "psychro", Name: "chart_lines_rendered_total"}),
	}
}
