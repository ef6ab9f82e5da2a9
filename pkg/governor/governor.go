package governor

import (
	"errors"
	"log/slog"

	"sandbox-claws/governor/pkg/clock"
	"sandbox-claws/governor/pkg/config"
	"sandbox-claws/governor/pkg/costs"
	"sandbox-claws/governor/pkg/limits/ledger"
	"sandbox-claws/governor/pkg/limits/ratelimit"
	"sandbox-claws/governor/pkg/pricing"
	"sandbox-claws/governor/pkg/telemetry/metrics"
	"sandbox-claws/governor/pkg/tokens"
)

// ErrEmptyPrompt is returned by Estimate and Check when the prompt is
// empty. Denials are verdict values, not errors; only invalid input is
// an error.
var ErrEmptyPrompt = errors.New("no prompt provided")

// CheckResult is the combined verdict of an admission check.
type CheckResult struct {
	// Allowed reports whether the call may proceed.
	Allowed bool `json:"allowed"`

	// Reason is the denial reason (empty when allowed).
	Reason string `json:"reason,omitempty"`

	// Estimate is the cost estimate the verdict was based on.
	Estimate *costs.Estimate `json:"estimate"`

	// RateLimit is the rate window verdict.
	RateLimit *ratelimit.Result `json:"rate_limit"`

	// Budget is the budget verdict. Nil when the rate limiter denied
	// first, since the tiers were never consulted.
	Budget *ledger.BudgetVerdict `json:"budget,omitempty"`
}

// Options contains the injectable collaborators. Zero values fall back
// to system clocks, slog.Default, and a disabled metrics collector.
type Options struct {
	// WallClock drives period boundaries and record timestamps.
	WallClock clock.Clock

	// MonoClock drives sliding-window arithmetic.
	MonoClock clock.Clock

	// Logger is the structured logger for ledger and façade events.
	Logger *slog.Logger

	// Metrics receives admission and call recordings.
	Metrics *metrics.Collector
}

// Governor is the façade over the estimator, rate limiter, and ledger.
// It is safe for concurrent use.
type Governor struct {
	cfg       *config.Config
	table     *pricing.Table
	estimator *costs.Estimator
	ledger    *ledger.Ledger
	metrics   *metrics.Collector
	logger    *slog.Logger
}

// New assembles a Governor from configuration and a loaded pricing table.
func New(cfg *config.Config, table *pricing.Table, opts Options) *Governor {
	wall := opts.WallClock
	if wall == nil {
		wall = clock.System()
	}
	mono := opts.MonoClock
	if mono == nil {
		mono = clock.System()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	collector := opts.Metrics
	if collector == nil {
		collector = metrics.NewCollector(false, nil)
	}

	counter := &tokens.WordCounter{TokensPerWord: cfg.Pricing.TokensPerWord}
	window := ratelimit.NewWindow(cfg.Rate.MaxCallsPerMinute, mono)

	led := ledger.New(ledger.Config{
		SessionBudget:         cfg.Budgets.SessionUSD,
		HourlyBudget:          cfg.Budgets.HourlyUSD,
		DailyBudget:           cfg.Budgets.DailyUSD,
		AlertThresholdPercent: cfg.Budgets.AlertThresholdPercent,
	}, wall, window, logger)

	return &Governor{
		cfg:       cfg,
		table:     table,
		estimator: costs.NewEstimator(table, counter),
		ledger:    led,
		metrics:   collector,
		logger:    logger.With("component", "governor"),
	}
}

// Estimate prices a prospective call without touching any limit state.
// An empty model is priced at the default entry.
func (g *Governor) Estimate(prompt, model string, expectedOutputTokens *int) (*costs.Estimate, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	if model == "" {
		model = pricing.DefaultModel
	}
	return g.estimator.Estimate(prompt, model, expectedOutputTokens), nil
}

// Check estimates the prompt's cost and asks the ledger whether the call
// would be admitted right now. It records nothing; a subsequent Track is
// what consumes budget and rate capacity.
func (g *Governor) Check(prompt, model string) (*CheckResult, error) {
	estimate, err := g.Estimate(prompt, model, nil)
	if err != nil {
		return nil, err
	}

	admission := g.ledger.CheckAdmission(estimate.TotalCost)

	outcome := "allowed"
	if !admission.Allowed {
		outcome = "denied"
		g.logger.Info("admission denied",
			"reason", admission.Reason,
			"model", estimate.Model,
			"estimated_cost", estimate.TotalCost,
		)
	}
	g.metrics.RecordAdmission(outcome, admission.Reason)

	return &CheckResult{
		Allowed:   admission.Allowed,
		Reason:    admission.Reason,
		Estimate:  estimate,
		RateLimit: admission.RateLimit,
		Budget:    admission.Budget,
	}, nil
}

// Track commits an actual call to the ledger and returns the updated
// statistics. It never refuses.
func (g *Governor) Track(call ledger.Call) *ledger.Stats {
	stats, alerted := g.ledger.Commit(call)

	g.metrics.RecordCall(call.Model, call.Cost, call.InputTokens+call.OutputTokens, call.DurationMS)
	if alerted {
		g.metrics.RecordAlert()
	}

	return stats
}

// Stats returns the current ledger statistics.
func (g *Governor) Stats() *ledger.Stats {
	return g.ledger.Stats()
}

// History returns up to limit of the most recent tracked calls.
func (g *Governor) History(limit int) []ledger.CallRecord {
	return g.ledger.History(limit)
}

// HistorySize returns the number of records currently held.
func (g *Governor) HistorySize() int {
	return g.ledger.HistorySize()
}

// Alerts returns the budget warnings emitted this session.
func (g *Governor) Alerts() []ledger.Alert {
	return g.ledger.Alerts()
}

// Reset starts a fresh session. Hourly and daily tiers keep accruing.
func (g *Governor) Reset() {
	g.ledger.Reset()
}

// Pricing returns a copy of the active pricing table.
func (g *Governor) Pricing() map[string]pricing.Entry {
	return g.table.Snapshot()
}

// MaxTokensPerRequest returns the configured per-request token cap.
func (g *Governor) MaxTokensPerRequest() int {
	return g.cfg.Rate.MaxTokensPerRequest
}

// TierSnapshots reports current budget utilization for the metrics
// snapshotter.
func (g *Governor) TierSnapshots() []metrics.TierSnapshot {
	stats := g.ledger.Stats()
	return []metrics.TierSnapshot{
		{Tier: "session", Percent: stats.Session.Percent, Remaining: stats.Session.Remaining},
		{Tier: "hourly", Percent: stats.Hourly.Percent, Remaining: stats.Hourly.Remaining},
		{Tier: "daily", Percent: stats.Daily.Percent, Remaining: stats.Daily.Remaining},
	}
}

// LogStartup announces the configured limits at startup.
func (g *Governor) LogStartup() {
	g.logger.Info("cost governor initialized",
		"session_budget", g.cfg.Budgets.SessionUSD,
		"hourly_budget", g.cfg.Budgets.HourlyUSD,
		"daily_budget", g.cfg.Budgets.DailyUSD,
		"rate_limit_per_minute", g.cfg.Rate.MaxCallsPerMinute,
		"max_tokens_per_request", g.cfg.Rate.MaxTokensPerRequest,
	)
}
