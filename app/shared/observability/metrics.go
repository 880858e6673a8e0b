package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics records the lifecycle of a service operation.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// Metrics is the full metric surface used by the modules.
type Metrics interface {
	OperationMetrics

	// RecordResolutionDefault counts a resolved field that fell through
	// every level and was defaulted.
	RecordResolutionDefault(ctx context.Context, field string)

	// RecordTimeParseFailure counts a finish time string that could not be
	// parsed and was stored as zero seconds.
	RecordTimeParseFailure(ctx context.Context)
}

// PrometheusMetrics implements Metrics on a prometheus registry.
type PrometheusMetrics struct {
	attempts          *prometheus.CounterVec
	successes         *prometheus.CounterVec
	failures          *prometheus.CounterVec
	duration          *prometheus.HistogramVec
	resolutionDefault *prometheus.CounterVec
	timeParseFailures prometheus.Counter
}

// NewPrometheusMetrics registers all collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) *PrometheusMetrics {
	labels := []string{"operation", "service"}
	m := &PrometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, labels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_success_total",
			Help:      "Service operations that completed without infrastructure error.",
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Service operations that failed with an infrastructure error or panic.",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, labels),
		resolutionDefault: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolution_defaults_total",
			Help:      "Resolved edition fields that fell back to the zero default.",
		}, []string{"field"}),
		timeParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "time_parse_failures_total",
			Help:      "Finish time strings that could not be parsed.",
		}),
	}

	reg.MustRegister(
		m.attempts,
		m.successes,
		m.failures,
		m.duration,
		m.resolutionDefault,
		m.timeParseFailures,
	)
	return m
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordResolutionDefault(_ context.Context, field string) {
	m.resolutionDefault.WithLabelValues(field).Inc()
}

func (m *PrometheusMetrics) RecordTimeParseFailure(_ context.Context) {
	m.timeParseFailures.Inc()
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoopMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoopMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (NoopMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (NoopMetrics) RecordResolutionDefault(context.Context, string)                        {}
func (NoopMetrics) RecordTimeParseFailure(context.Context)                                 {}
