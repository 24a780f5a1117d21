package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks collaborator call latency and outcomes.
type Metrics struct {
	CallLatency *prometheus.HistogramVec
}

// NewMetrics registers the collaborator metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		CallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "travelgate_collaborator_duration_seconds",
			Help:    "Duration of remote API calls by operation and outcome",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"operation", "outcome"}), // outcome: "ok" or an ErrorCategory
	}
}

// ObserveCall records one call.
func (m *Metrics) ObserveCall(operation, outcome string, d time.Duration) {
	if m != nil {
		m.CallLatency.WithLabelValues(operation, outcome).Observe(d.Seconds())
	}
}
