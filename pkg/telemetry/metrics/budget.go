package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BudgetMetrics tracks budget utilization.
//
// Metrics:
//   - sandbox_claws_governor_budget_utilization_percent: utilization by tier
//   - sandbox_claws_governor_budget_remaining_usd: remaining budget by tier
//   - sandbox_claws_governor_budget_alerts_total: budget warnings emitted
type BudgetMetrics struct {
	utilization *prometheus.GaugeVec
	remaining   *prometheus.GaugeVec
	alertsTotal prometheus.Counter
}

// NewBudgetMetrics creates and registers budget metrics with the provided
// registry.
func NewBudgetMetrics(registry *prometheus.Registry) *BudgetMetrics {
	bm := &BudgetMetrics{
		utilization: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "budget_utilization_percent",
				Help:      "Budget utilization percentage by tier",
			},
			[]string{"tier"},
		),

		remaining: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "budget_remaining_usd",
				Help:      "Remaining budget in USD by tier",
			},
			[]string{"tier"},
		),

		alertsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "budget_alerts_total",
				Help:      "Budget warnings emitted",
			},
		),
	}

	registry.MustRegister(bm.utilization, bm.remaining, bm.alertsTotal)
	return bm
}

// Update sets the gauges for one tier.
func (bm *BudgetMetrics) Update(tier string, percent, remaining float64) {
	bm.utilization.WithLabelValues(tier).Set(percent)
	bm.remaining.WithLabelValues(tier).Set(remaining)
}

// RecordAlert increments the alert counter.
func (bm *BudgetMetrics) RecordAlert() {
	bm.alertsTotal.Inc()
}
