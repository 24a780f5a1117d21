package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the declaration wizard.
type Metrics struct {
	// Step transitions by source step, target step and outcome
	Transitions *prometheus.CounterVec

	// Wizard operation latency including collaborator calls
	OperationLatency *prometheus.HistogramVec

	// Mutations rejected because the session was busy
	BusyRejections prometheus.Counter
}

// New creates a new Metrics instance with all wizard metrics registered.
func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "travelgate_wizard_transitions_total",
			Help: "Total wizard step transitions by source step, target step and outcome",
		}, []string{"from", "to", "outcome"}), // outcome: "advanced", "advanced_with_warning", "blocked_validation", "blocked_remote", "back"

		OperationLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "travelgate_wizard_operation_duration_seconds",
			Help:    "Duration of wizard operations including collaborator calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),

		BusyRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "travelgate_wizard_busy_rejections_total",
			Help: "Total mutations rejected because another request held the session",
		}),
	}
}

// IncrementTransition records one transition attempt.
func (m *Metrics) IncrementTransition(from, to, outcome string) {
	if m != nil {
		m.Transitions.WithLabelValues(from, to, outcome).Inc()
	}
}

// ObserveOperation records the duration of a wizard operation.
func (m *Metrics) ObserveOperation(operation string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementBusy() {
	if m != nil {
		m.BusyRejections.Inc()
	}
}
