package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Denied *prometheus.CounterVec
	Errors *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		Denied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "travelgate_ratelimit_denied_total",
			Help: "Requests rejected by a rate limiter",
		}, []string{"scope"}),
		Errors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "travelgate_ratelimit_errors_total",
			Help: "Rate limit checks that failed and let the request through",
		}, []string{"scope"}),
	}
}

func (m *Metrics) IncrementDenied(scope string) {
	if m == nil {
		return
	}
	m.Denied.WithLabelValues(scope).Inc()
}

func (m *Metrics) IncrementErrors(scope string) {
	if m == nil {
		return
	}
	m.Errors.WithLabelValues(scope).Inc()
}
