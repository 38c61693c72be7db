package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for auth operations.
type Metrics struct {
	Logins           prometheus.Counter
	LoginFailures    prometheus.Counter
	SessionsRestored prometheus.Counter
}

// NewMetrics registers and returns auth collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Logins: factory.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_logins_total",
			Help: "Successful logins",
		}),
		LoginFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_login_failures_total",
			Help: "Login attempts rejected by the backend",
		}),
		SessionsRestored: factory.NewCounter(prometheus.CounterOpts{
			Name: "gatehouse_sessions_restored_total",
			Help: "Persisted sessions revalidated at startup",
		}),
	}
}
