package account

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"credvault/internal/domain"
)

// Metrics records credential operations. A nil *Metrics records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics registers the account metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "credvault",
			Subsystem: "account",
			Name:      "operations_total",
			Help:      "Total number of account credential operations",
		}, []string{"operation", "result"}), // result: ok or an error kind
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "credvault",
			Subsystem: "account",
			Name:      "operation_duration_seconds",
			Help:      "Duration of account credential operations, including key derivation",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}, []string{"operation"}),
	}
}

// Operations returns the counter for operation and result, for inspection.
func (m *Metrics) Operations(operation, result string) prometheus.Counter {
	return m.operations.WithLabelValues(operation, result)
}

func (m *Metrics) count(operation string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, resultLabel(err)).Inc()
}

func (m *Metrics) observeDuration(operation string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if kind, ok := domain.KindOf(err); ok {
		return kind.String()
	}
	return "error"
}
