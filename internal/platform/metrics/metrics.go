package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for outgoing API traffic.
type Metrics struct {
	Requests            *prometheus.CounterVec
	SessionInvalidation prometheus.Counter
}

// New creates the collectors and registers them on the given registry. Pass a
// fresh registry in tests to keep them isolated.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_api_requests_total",
			Help: "Outgoing API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		SessionInvalidation: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_session_invalidations_total",
			Help: "Sessions torn down after the API rejected the credential.",
		}),
	}
	reg.MustRegister(m.Requests, m.SessionInvalidation)
	return m
}

// ObserveRequest records one finished request. Outcome is "ok", "error" or
// "unauthorized".
func (m *Metrics) ObserveRequest(method, outcome string) {
	m.Requests.WithLabelValues(method, outcome).Inc()
}

// ObserveSessionInvalidation records one credential rejection teardown.
func (m *Metrics) ObserveSessionInvalidation() {
	m.SessionInvalidation.Inc()
}
