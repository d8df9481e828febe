package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/inflate/pkg/errors"
	"github.com/matzehuels/inflate/pkg/growth"
	"github.com/matzehuels/inflate/pkg/observability"
)

const metricsNamespace = "inflate"

// Solve outcomes used as the "outcome" label.
const (
	outcomeConverged    = "converged"
	outcomeNotConverged = "not_converged"
)

// Metrics records solver and HTTP activity in a private Prometheus registry.
// It implements [observability.SolverHooks] and [observability.HTTPHooks].
type Metrics struct {
	registry *prometheus.Registry

	solvesTotal      *prometheus.CounterVec
	solveIterations  prometheus.Histogram
	solveDuration    prometheus.Histogram
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
}

var (
	_ observability.SolverHooks = (*Metrics)(nil)
	_ observability.HTTPHooks   = (*Metrics)(nil)
)

// NewMetrics creates and registers all metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		solvesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "solver",
			Name:      "solves_total",
			Help:      "Solves by outcome (converged, not_converged, or an error code).",
		}, []string{"outcome"}),
		solveIterations: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "solver",
			Name:      "iterations",
			Help:      "Bisection steps per successful solve.",
			Buckets:   []float64{1, 5, 10, 15, 20, 25, 30, 40, 60, 100, 1000},
		}),
		solveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "solver",
			Name:      "duration_seconds",
			Help:      "Wall-clock time per solve.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		requestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// OnSolveStart implements observability.SolverHooks.
func (m *Metrics) OnSolveStart(context.Context, growth.Request) {}

// OnSolveComplete implements observability.SolverHooks.
func (m *Metrics) OnSolveComplete(_ context.Context, _ growth.Request, res growth.Result, d time.Duration, err error) {
	m.solveDuration.Observe(d.Seconds())
	switch {
	case err != nil:
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		m.solvesTotal.WithLabelValues(string(code)).Inc()
	case res.Converged:
		m.solvesTotal.WithLabelValues(outcomeConverged).Inc()
		m.solveIterations.Observe(float64(res.Iterations))
	default:
		m.solvesTotal.WithLabelValues(outcomeNotConverged).Inc()
		m.solveIterations.Observe(float64(res.Iterations))
	}
}

// OnRequest implements observability.HTTPHooks.
func (m *Metrics) OnRequest(context.Context, string, string) {
	m.requestsInFlight.Inc()
}

// OnResponse implements observability.HTTPHooks.
func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.requestsInFlight.Dec()
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
