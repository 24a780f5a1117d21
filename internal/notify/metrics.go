package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Notifications *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		Notifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "travelgate_notifications_total",
			Help: "Outbound notifications by channel and outcome",
		}, []string{"channel", "outcome"}),
	}
}

func (m *Metrics) inc(channel, outcome string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(channel, outcome).Inc()
}
