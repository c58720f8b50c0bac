// Package metrics exposes Prometheus metrics for the application vertical.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ApplicationsCreated prometheus.Counter
	ApplicationsUpdated prometheus.Counter
	ApplicationsDeleted prometheus.Counter
	StatusTransitions   *prometheus.CounterVec
}

// New registers all application metrics on the default registry. Call once
// per process; services treat a nil *Metrics as a no-op.
func New() *Metrics {
	return &Metrics{
		ApplicationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jobtrack_applications_created_total",
			Help: "Total number of job applications created",
		}),
		ApplicationsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jobtrack_applications_updated_total",
			Help: "Total number of job application updates",
		}),
		ApplicationsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jobtrack_applications_deleted_total",
			Help: "Total number of job applications deleted",
		}),
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "jobtrack_status_transitions_total",
			Help: "Status transitions by source and destination status",
		}, []string{"from", "to"}),
	}
}

func (m *Metrics) IncCreated() {
	if m != nil {
		m.ApplicationsCreated.Inc()
	}
}

func (m *Metrics) IncUpdated() {
	if m != nil {
		m.ApplicationsUpdated.Inc()
	}
}

func (m *Metrics) IncDeleted() {
	if m != nil {
		m.ApplicationsDeleted.Inc()
	}
}

func (m *Metrics) ObserveTransition(from, to string) {
	if m != nil {
		m.StatusTransitions.WithLabelValues(from, to).Inc()
	}
}
