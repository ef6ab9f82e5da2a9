package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CallMetrics tracks committed calls.
//
// Metrics:
//   - sandbox_claws_governor_calls_tracked_total: tracked calls by model
//   - sandbox_claws_governor_cost_total: total cost in USD by model
//   - sandbox_claws_governor_cost_per_call: cost distribution per call (histogram)
//   - sandbox_claws_governor_tokens_total: total tokens by model
//   - sandbox_claws_governor_call_duration_seconds: call duration distribution
type CallMetrics struct {
	callsTotal  *prometheus.CounterVec
	costTotal   *prometheus.CounterVec
	costPerCall *prometheus.HistogramVec
	tokensTotal *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewCallMetrics creates and registers call metrics with the provided
// registry.
func NewCallMetrics(registry *prometheus.Registry) *CallMetrics {
	cm := &CallMetrics{
		callsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "calls_tracked_total",
				Help:      "Tracked calls by model",
			},
			[]string{"model"},
		),

		costTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cost_total",
				Help:      "Total tracked cost in USD by model",
			},
			[]string{"model"},
		),

		costPerCall: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cost_per_call",
				Help:      "Cost distribution per call in USD",
				// Cost buckets: $0.001 to $10 (optimized for LLM pricing)
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
			},
			[]string{"model"},
		),

		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "tokens_total",
				Help:      "Total tokens by model",
			},
			[]string{"model"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "call_duration_seconds",
				Help:      "Call duration distribution in seconds",
				// Optimized for LLM request latencies (100ms - 30s)
				Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"model"},
		),
	}

	registry.MustRegister(cm.callsTotal, cm.costTotal, cm.costPerCall, cm.tokensTotal, cm.duration)
	return cm
}

// Record records one tracked call.
func (cm *CallMetrics) Record(model string, cost float64, tokens int, durationMS float64) {
	cm.callsTotal.WithLabelValues(model).Inc()
	cm.costTotal.WithLabelValues(model).Add(cost)
	cm.costPerCall.WithLabelValues(model).Observe(cost)
	cm.tokensTotal.WithLabelValues(model).Add(float64(tokens))
	cm.duration.WithLabelValues(model).Observe(durationMS / 1000)
}
