package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AdmissionMetrics tracks admission-check outcomes.
//
// Metrics:
//   - sandbox_claws_governor_admission_checks_total: checks by outcome and reason
type AdmissionMetrics struct {
	checksTotal *prometheus.CounterVec
}

// NewAdmissionMetrics creates and registers admission metrics with the
// provided registry.
func NewAdmissionMetrics(registry *prometheus.Registry) *AdmissionMetrics {
	am := &AdmissionMetrics{
		checksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "admission_checks_total",
				Help:      "Admission checks by outcome and denial reason",
			},
			[]string{"outcome", "reason"},
		),
	}

	registry.MustRegister(am.checksTotal)
	return am
}

// Record records one admission check. Allowed checks carry an empty
// reason label.
func (am *AdmissionMetrics) Record(outcome, reason string) {
	am.checksTotal.WithLabelValues(outcome, reason).Inc()
}
