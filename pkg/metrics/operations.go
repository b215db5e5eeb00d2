package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// OperationMetrics records aggregate manager operations (template and location
// mutations) with their outcome.
type OperationMetrics struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewOperationMetrics registers the operation metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewOperationMetrics(reg prometheus.Registerer) *OperationMetrics {
	if reg == nil {
		return &OperationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aggregate_operation_duration_seconds",
		Help:    "Duration of aggregate operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aggregate_operations_total",
		Help: "Aggregate operations by outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(duration, total)
	return &OperationMetrics{
		duration: duration,
		total:    total,
	}
}

// Observe records one completed operation. err decides the outcome label.
func (m *OperationMetrics) Observe(operation string, started time.Time, err error) {
	if m == nil || m.total == nil {
		return
	}
	op := normalizeLabel(operation)
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.duration.WithLabelValues(op).Observe(time.Since(started).Seconds())
	m.total.WithLabelValues(op, outcome).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
