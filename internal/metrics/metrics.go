package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the console's prometheus collectors.
type Metrics struct {
	Navigations *prometheus.CounterVec
	APIRequests *prometheus.CounterVec
	APIErrors   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered, which is what tests want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "allin_admin",
			Name:      "navigations_total",
			Help:      "Navigation guard decisions by route and outcome.",
		}, []string{"route", "outcome"}),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "allin_admin",
			Name:      "api_requests_total",
			Help:      "Requests issued to the REST backend by method and status code.",
		}, []string{"method", "code"}),
		APIErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "allin_admin",
			Name:      "resource_errors_total",
			Help:      "Failed resource client operations by resource and operation.",
		}, []string{"resource", "op"}),
	}
	if reg != nil {
		reg.MustRegister(m.Navigations, m.APIRequests, m.APIErrors)
	}
	return m
}

// ObserveNavigation counts one guard decision. Safe on a nil receiver.
func (m *Metrics) ObserveNavigation(route, outcome string) {
	if m == nil {
		return
	}
	m.Navigations.WithLabelValues(route, outcome).Inc()
}

// ObserveAPIRequest counts one backend round trip. code 0 means the request
// never got a response.
func (m *Metrics) ObserveAPIRequest(method string, code int) {
	if m == nil {
		return
	}
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	m.APIRequests.WithLabelValues(method, label).Inc()
}

// ObserveResourceError counts one failed resource operation.
func (m *Metrics) ObserveResourceError(resource, op string) {
	if m == nil {
		return
	}
	m.APIErrors.WithLabelValues(resource, op).Inc()
}
