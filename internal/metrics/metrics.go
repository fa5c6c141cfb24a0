package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the identity service.
type Metrics struct {
	Registrations      prometheus.Counter
	Logins             *prometheus.CounterVec
	TokenVerifications *prometheus.CounterVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smartparking_registrations_total",
			Help: "Total number of accounts created through password registration",
		}),
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "smartparking_logins_total",
			Help: "Total number of successful logins by method",
		}, []string{"method"}),
		TokenVerifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "smartparking_token_verifications_total",
			Help: "Total number of session token verifications by outcome",
		}, []string{"outcome"}),
	}
}

// RecordLogin increments the login counter for the given method.
func (m *Metrics) RecordLogin(method string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(method).Inc()
}

// RecordVerification increments the token verification counter.
func (m *Metrics) RecordVerification(outcome string) {
	if m == nil {
		return
	}
	m.TokenVerifications.WithLabelValues(outcome).Inc()
}

// RecordRegistration increments the registrations counter.
func (m *Metrics) RecordRegistration() {
	if m == nil {
		return
	}
	m.Registrations.Inc()
}
