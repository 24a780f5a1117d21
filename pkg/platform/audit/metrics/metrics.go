package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for audit publishing.
type Metrics struct {
	Emitted               *prometheus.CounterVec
	BufferDropped         prometheus.Counter
	CircuitBreakerDropped prometheus.Counter
	PersistFailures       prometheus.Counter
	CircuitBreakerState   prometheus.Gauge
}

// New creates audit metrics registered with the default registry.
func New() *Metrics {
	return &Metrics{
		Emitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "travelgate_audit_events_total",
			Help: "Total number of audit events persisted, by category",
		}, []string{"category"}),
		BufferDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "travelgate_audit_buffer_dropped_total",
			Help: "Total number of audit events rejected because the async buffer was full",
		}),
		CircuitBreakerDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "travelgate_audit_circuit_breaker_dropped_total",
			Help: "Total number of audit events dropped while the store breaker was open",
		}),
		PersistFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "travelgate_audit_persist_failures_total",
			Help: "Total number of audit event persistence failures",
		}),
		CircuitBreakerState: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "travelgate_audit_circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed/healthy, 1=open/unhealthy)",
		}),
	}
}

func (m *Metrics) IncEmitted(category string) {
	if m == nil {
		return
	}
	m.Emitted.WithLabelValues(category).Inc()
}

func (m *Metrics) IncBufferDropped() {
	if m == nil {
		return
	}
	m.BufferDropped.Inc()
}

func (m *Metrics) IncCircuitBreakerDropped() {
	if m == nil {
		return
	}
	m.CircuitBreakerDropped.Inc()
}

func (m *Metrics) IncPersistFailures() {
	if m == nil {
		return
	}
	m.PersistFailures.Inc()
}

// SetCircuitBreakerState sets the circuit breaker state gauge.
func (m *Metrics) SetCircuitBreakerState(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitBreakerState.Set(1)
	} else {
		m.CircuitBreakerState.Set(0)
	}
}
