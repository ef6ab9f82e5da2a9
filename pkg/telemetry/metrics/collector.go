package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "sandbox_claws"
	subsystem = "governor"
)

// Collector is the orchestrator for all Prometheus metrics in the governor.
// It manages metric registration and provides a unified interface for
// recording metrics across all components. When disabled, every recording
// method is a no-op.
type Collector struct {
	enabled  bool
	registry *prometheus.Registry

	admission *AdmissionMetrics
	calls     *CallMetrics
	budget    *BudgetMetrics
}

// NewCollector creates a metrics collector backed by its own registry.
// If registry is nil a fresh one is created, which keeps tests isolated
// from the global default registry.
func NewCollector(enabled bool, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		enabled:  enabled,
		registry: registry,
	}

	c.admission = NewAdmissionMetrics(registry)
	c.calls = NewCallMetrics(registry)
	c.budget = NewBudgetMetrics(registry)

	return c
}

// RecordAdmission records the outcome of an admission check.
// Outcome is "allowed" or "denied"; reason is empty for allowed checks.
func (c *Collector) RecordAdmission(outcome, reason string) {
	if !c.enabled {
		return
	}
	c.admission.Record(outcome, reason)
}

// RecordCall records a tracked call: its model, cost, token usage, and
// duration in milliseconds.
func (c *Collector) RecordCall(model string, cost float64, tokens int, durationMS float64) {
	if !c.enabled {
		return
	}
	c.calls.Record(model, cost, tokens, durationMS)
}

// RecordAlert increments the budget alert counter.
func (c *Collector) RecordAlert() {
	if !c.enabled {
		return
	}
	c.budget.RecordAlert()
}

// UpdateBudget sets the utilization and remaining gauges for one tier
// ("session", "hourly", or "daily").
func (c *Collector) UpdateBudget(tier string, percent, remaining float64) {
	if !c.enabled {
		return
	}
	c.budget.Update(tier, percent, remaining)
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
