package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for tenant resolution.
type Metrics struct {
	FetchAttempts      *prometheus.CounterVec
	HardcodedFallbacks prometheus.Counter
}

// NewMetrics registers and returns resolution collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gatehouse_tenant_fetch_attempts_total",
			Help: "Tenant config fetch attempts by tenant key and outcome",
		}, []string{"tenant", "outcome"}),
		HardcodedFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_tenant_hardcoded_fallbacks_total",
			Help: "Resolutions that exhausted every remote attempt",
		}),
	}
}

func (m *Metrics) observeFetch(tenantID string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.FetchAttempts.WithLabelValues(tenantID, outcome).Inc()
}
