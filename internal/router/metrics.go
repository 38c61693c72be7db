package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for navigation decisions.
type Metrics struct {
	Navigations *prometheus.CounterVec
}

// NewMetrics registers and returns navigation collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_navigations_total",
			Help: "Navigation decisions by action",
		}, []string{"action"}),
	}
}
