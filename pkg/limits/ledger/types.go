package ledger

import (
	"time"

	"sandbox-claws/governor/pkg/limits/ratelimit"
)

// Denial reasons, one per budget tier. The first violated tier wins.
const (
	ReasonSessionBudgetExceeded = "session_budget_exceeded"
	ReasonHourlyBudgetExceeded  = "hourly_budget_exceeded"
	ReasonDailyBudgetExceeded   = "daily_budget_exceeded"
)

// AlertTypeBudgetWarning is the type recorded on alert-band crossings.
const AlertTypeBudgetWarning = "budget_warning"

// Config contains the ledger's caps and alert threshold.
// Caps of zero mean "always deny"; the alert threshold is a percentage.
type Config struct {
	SessionBudget         float64
	HourlyBudget          float64
	DailyBudget           float64
	AlertThresholdPercent float64
}

// Call contains the real usage numbers reported after an API call.
type Call struct {
	Model        string  `json:"model"`
	Cost         float64 `json:"cost"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	DurationMS   float64 `json:"duration_ms"`
}

// CallRecord is one entry in the bounded call history.
type CallRecord struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Model        string    `json:"model"`
	Cost         float64   `json:"cost"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	DurationMS   float64   `json:"duration_ms"`
}

// Alert is one threshold-crossing record. Alerts are produced only by
// Commit and cleared only by a session reset.
type Alert struct {
	Timestamp     time.Time `json:"timestamp"`
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	SessionCost   float64   `json:"session_cost"`
	SessionBudget float64   `json:"session_budget"`
}

// BudgetVerdict is the outcome of a budget check against all three tiers.
//
// On denial, CurrentCost/MaxBudget/WouldExceedBy describe the violated
// tier. On admission, CurrentCost is the session cost and SessionPercent
// reflects what committing the estimate would bring the session to.
type BudgetVerdict struct {
	Allowed        bool    `json:"allowed"`
	Reason         string  `json:"reason,omitempty"`
	CurrentCost    float64 `json:"current_cost"`
	EstimatedCost  float64 `json:"estimated_cost"`
	MaxBudget      float64 `json:"max_budget"`
	WouldExceedBy  float64 `json:"would_exceed_by,omitempty"`
	SessionPercent float64 `json:"session_percent,omitempty"`
	Alert          bool    `json:"alert,omitempty"`
	AlertMessage   string  `json:"alert_message,omitempty"`
}

// AdmissionResult is the combined rate-limit and budget verdict.
// When the rate limiter denies, the budget is not consulted.
type AdmissionResult struct {
	Allowed   bool              `json:"allowed"`
	Reason    string            `json:"reason,omitempty"`
	RateLimit *ratelimit.Result `json:"rate_limit"`
	Budget    *BudgetVerdict    `json:"budget,omitempty"`
}

// SessionStats describes the session tier plus call-level aggregates.
type SessionStats struct {
	Cost            float64 `json:"cost"`
	Budget          float64 `json:"budget"`
	Percent         float64 `json:"percent"`
	Remaining       float64 `json:"remaining"`
	Calls           int     `json:"calls"`
	DurationSeconds float64 `json:"duration_seconds"`
	AvgCostPerCall  float64 `json:"avg_cost_per_call"`
}

// TierStats describes the hourly or daily tier.
type TierStats struct {
	Cost      float64 `json:"cost"`
	Budget    float64 `json:"budget"`
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
}

// TokenStats holds cumulative session token counts.
type TokenStats struct {
	Input  int `json:"input"`
	Output int `json:"output"`
	Total  int `json:"total"`
}

// RateStats holds the live rate-window view and per-hour averages.
type RateStats struct {
	CallsThisMinute int     `json:"calls_this_minute"`
	MaxPerMinute    int     `json:"max_per_minute"`
	CallsPerHour    float64 `json:"calls_per_hour"`
	CostPerHour     float64 `json:"cost_per_hour"`
}

// ProjectionStats projects the session forward at the current spend rate.
// Informational only; projections never gate admission.
type ProjectionStats struct {
	RemainingHoursAtCurrentRate float64 `json:"remaining_hours_at_current_rate"`
	EstimatedTotalIfContinues   float64 `json:"estimated_total_if_continues"`
}

// Stats is the derived, read-only view of ledger state.
type Stats struct {
	Session     SessionStats    `json:"session"`
	Hourly      TierStats       `json:"hourly"`
	Daily       TierStats       `json:"daily"`
	Tokens      TokenStats      `json:"tokens"`
	Rate        RateStats       `json:"rate"`
	Projections ProjectionStats `json:"projections"`
}
