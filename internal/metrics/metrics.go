// Package metrics holds the prometheus collectors exported by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "secretsanta"

type Metrics struct {
	EventsCreated     prometheus.Counter
	EventsCompleted   prometheus.Counter
	CodeVerifications *prometheus.CounterVec
	Notifications     *prometheus.CounterVec
}

// New creates the collectors and registers them with reg when it is not nil.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_created_total",
			Help:      "Number of gift-exchange events created.",
		}),
		EventsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_completed_total",
			Help:      "Number of events whose draw has been completed.",
		}),
		CodeVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "code_verifications_total",
			Help:      "Access code verification attempts by result.",
		}, []string{"result"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification attempts by kind and result.",
		}, []string{"kind", "result"}),
	}
	if reg != nil {
		reg.MustRegister(
			m.EventsCreated,
			m.EventsCompleted,
			m.CodeVerifications,
			m.Notifications,
		)
	}
	return m
}

func (m *Metrics) EventCreated() {
	if m == nil {
		return
	}
	m.EventsCreated.Inc()
}

func (m *Metrics) EventCompleted() {
	if m == nil {
		return
	}
	m.EventsCompleted.Inc()
}

func (m *Metrics) CodeVerified(found bool) {
	if m == nil {
		return
	}
	result := "found"
	if !found {
		result = "not_found"
	}
	m.CodeVerifications.WithLabelValues(result).Inc()
}

func (m *Metrics) NotificationSent(kind string, delivered bool) {
	if m == nil {
		return
	}
	result := "sent"
	if !delivered {
		result = "failed"
	}
	m.Notifications.WithLabelValues(kind, result).Inc()
}
