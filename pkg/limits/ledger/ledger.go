package ledger

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"sandbox-claws/governor/pkg/clock"
	"sandbox-claws/governor/pkg/limits/ratelimit"
)

const (
	// historyLimit bounds the in-memory call history. Oldest entries are
	// evicted silently once the cap is exceeded.
	historyLimit = 1000

	// alertBandWidth is the width of the alert band in percentage points.
	// Commits that land inside [threshold, threshold+alertBandWidth)
	// append an alert; a commit inside the band fires again.
	alertBandWidth = 5.0

	// minRateHours floors the session-duration denominator so per-hour
	// rates are defined in the first moments of a session.
	minRateHours = 0.01

	// minCostPerHour floors the projection denominator.
	minCostPerHour = 0.01
)

// Ledger is the stateful core of the governor: three independently
// resetting cost tiers, cumulative call/token counters, the rate window,
// the bounded call history, and the alert log.
//
// One mutex serializes every operation, so admission checks see a
// consistent snapshot and commits are atomic from any reader's
// perspective.
type Ledger struct {
	mu     sync.Mutex
	cfg    Config
	wall   clock.Clock
	window *ratelimit.Window
	logger *slog.Logger

	sessionCost   float64
	sessionCalls  int
	inputTokens   int
	outputTokens  int
	sessionStart  time.Time
	hourlyCost    float64
	hourlyResetAt time.Time
	dailyCost     float64
	dailyResetAt  time.Time

	history []CallRecord
	alerts  []Alert
}

// New creates a Ledger with all tiers at zero and the hourly/daily reset
// boundaries one period out. A nil wall clock falls back to the system
// clock; a nil logger falls back to slog.Default.
func New(cfg Config, wall clock.Clock, window *ratelimit.Window, logger *slog.Logger) *Ledger {
	if wall == nil {
		wall = clock.System()
	}
	if logger == nil {
		logger = slog.Default()
	}

	now := wall.Now()
	return &Ledger{
		cfg:           cfg,
		wall:          wall,
		window:        window,
		logger:        logger.With("component", "ledger"),
		sessionStart:  now,
		hourlyResetAt: now.Add(time.Hour),
		dailyResetAt:  now.Add(24 * time.Hour),
	}
}

// CheckAdmission reports whether a call with the given estimated cost
// would be allowed right now. It consults the rate window first and the
// budget tiers second; the rollover side effect aside, it mutates nothing
// and records nothing.
func (l *Ledger) CheckAdmission(estimatedCost float64) *AdmissionResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rolloverLocked(l.wall.Now())

	rate := l.window.Admit()
	if !rate.Allowed {
		return &AdmissionResult{
			Allowed:   false,
			Reason:    rate.Reason,
			RateLimit: rate,
		}
	}

	budget := l.checkBudgetLocked(estimatedCost)
	return &AdmissionResult{
		Allowed:   budget.Allowed,
		Reason:    budget.Reason,
		RateLimit: rate,
		Budget:    budget,
	}
}

// Commit records the real cost and usage of a call that already happened.
// It never refuses: all three tiers absorb the cost unconditionally, the
// call is appended to history, the rate window advances, and the alert
// band is evaluated, all under one lock acquisition. The second return
// reports whether this commit landed in the alert band.
func (l *Ledger) Commit(call Call) (*Stats, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.wall.Now()
	l.rolloverLocked(now)

	l.sessionCost += call.Cost
	l.hourlyCost += call.Cost
	l.dailyCost += call.Cost

	l.sessionCalls++
	l.inputTokens += call.InputTokens
	l.outputTokens += call.OutputTokens

	l.window.Record()

	l.history = append(l.history, CallRecord{
		ID:           uuid.NewString(),
		Timestamp:    now,
		Model:        call.Model,
		Cost:         call.Cost,
		InputTokens:  call.InputTokens,
		OutputTokens: call.OutputTokens,
		DurationMS:   call.DurationMS,
	})
	if len(l.history) > historyLimit {
		l.history = append(l.history[:0], l.history[len(l.history)-historyLimit:]...)
	}

	alerted := l.evaluateAlertLocked(now)

	l.logger.Info("call tracked",
		"model", call.Model,
		"cost", call.Cost,
		"session_cost", l.sessionCost,
	)

	return l.statsLocked(now), alerted
}

// Stats returns the derived view of the ledger. Rollover runs first so
// readers never see stale-period hourly/daily numbers.
func (l *Ledger) Stats() *Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.wall.Now()
	l.rolloverLocked(now)
	return l.statsLocked(now)
}

// History returns up to limit of the most recent committed calls in
// chronological order. A non-positive limit returns the whole history.
func (l *Ledger) History(limit int) []CallRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.history)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]CallRecord, limit)
	copy(out, l.history[n-limit:])
	return out
}

// HistorySize returns the number of records currently held.
func (l *Ledger) HistorySize() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.history)
}

// Alerts returns a copy of the alert log.
func (l *Ledger) Alerts() []Alert {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Alert, len(l.alerts))
	copy(out, l.alerts)
	return out
}

// Reset starts a fresh session: session cost, calls, and tokens go to
// zero, the rate window, history, and alerts are cleared, and the session
// start moves to now. The hourly and daily tiers and their reset
// boundaries are untouched; they track real time, not session lifetime.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.Info("session reset", "final_cost", fmt.Sprintf("%.2f", l.sessionCost))

	l.sessionCost = 0
	l.sessionCalls = 0
	l.inputTokens = 0
	l.outputTokens = 0
	l.sessionStart = l.wall.Now()

	l.window.Reset()
	l.history = nil
	l.alerts = nil
}

// rolloverLocked performs the lazy hourly/daily resets. Each tier resets
// at most once per call: even after a long idle stretch the next boundary
// is scheduled one period from now, with no catch-up iteration.
func (l *Ledger) rolloverLocked(now time.Time) {
	if !now.Before(l.hourlyResetAt) {
		l.hourlyCost = 0
		l.hourlyResetAt = now.Add(time.Hour)
	}
	if !now.Before(l.dailyResetAt) {
		l.dailyCost = 0
		l.dailyResetAt = now.Add(24 * time.Hour)
	}
}

// checkBudgetLocked evaluates the tiers in order: session, hourly, daily.
// The first violated tier produces the verdict; only one reason is ever
// reported per check.
func (l *Ledger) checkBudgetLocked(estimatedCost float64) *BudgetVerdict {
	if l.sessionCost+estimatedCost > l.cfg.SessionBudget {
		return &BudgetVerdict{
			Reason:        ReasonSessionBudgetExceeded,
			CurrentCost:   l.sessionCost,
			EstimatedCost: estimatedCost,
			MaxBudget:     l.cfg.SessionBudget,
			WouldExceedBy: l.sessionCost + estimatedCost - l.cfg.SessionBudget,
		}
	}

	if l.hourlyCost+estimatedCost > l.cfg.HourlyBudget {
		return &BudgetVerdict{
			Reason:        ReasonHourlyBudgetExceeded,
			CurrentCost:   l.hourlyCost,
			EstimatedCost: estimatedCost,
			MaxBudget:     l.cfg.HourlyBudget,
			WouldExceedBy: l.hourlyCost + estimatedCost - l.cfg.HourlyBudget,
		}
	}

	if l.dailyCost+estimatedCost > l.cfg.DailyBudget {
		return &BudgetVerdict{
			Reason:        ReasonDailyBudgetExceeded,
			CurrentCost:   l.dailyCost,
			EstimatedCost: estimatedCost,
			MaxBudget:     l.cfg.DailyBudget,
			WouldExceedBy: l.dailyCost + estimatedCost - l.cfg.DailyBudget,
		}
	}

	percent := percentOf(l.sessionCost+estimatedCost, l.cfg.SessionBudget)
	verdict := &BudgetVerdict{
		Allowed:        true,
		CurrentCost:    l.sessionCost,
		EstimatedCost:  estimatedCost,
		MaxBudget:      l.cfg.SessionBudget,
		SessionPercent: percent,
	}
	if percent >= l.cfg.AlertThresholdPercent {
		verdict.Alert = true
		verdict.AlertMessage = fmt.Sprintf("Approaching budget limit: %.1f%%", percent)
	}
	return verdict
}

// evaluateAlertLocked appends a budget warning when the post-commit
// session percentage sits inside the alert band. The band is a range, not
// a latch: repeated commits inside the same band fire repeatedly.
func (l *Ledger) evaluateAlertLocked(now time.Time) bool {
	percent := percentOf(l.sessionCost, l.cfg.SessionBudget)
	if percent < l.cfg.AlertThresholdPercent || percent >= l.cfg.AlertThresholdPercent+alertBandWidth {
		return false
	}

	alert := Alert{
		Timestamp:     now,
		Type:          AlertTypeBudgetWarning,
		Message:       fmt.Sprintf("Budget at %.1f%%", percent),
		SessionCost:   l.sessionCost,
		SessionBudget: l.cfg.SessionBudget,
	}
	l.alerts = append(l.alerts, alert)

	l.logger.Warn(alert.Message,
		"session_cost", l.sessionCost,
		"session_budget", l.cfg.SessionBudget,
	)
	return true
}

// statsLocked builds the derived Stats view. Caller must hold the lock
// and must have rolled over first.
func (l *Ledger) statsLocked(now time.Time) *Stats {
	duration := now.Sub(l.sessionStart).Seconds()

	hours := duration / 3600
	if hours < minRateHours {
		hours = minRateHours
	}
	callsPerHour := float64(l.sessionCalls) / hours
	costPerHour := l.sessionCost / hours

	callDenom := l.sessionCalls
	if callDenom < 1 {
		callDenom = 1
	}

	rateDenom := costPerHour
	if rateDenom < minCostPerHour {
		rateDenom = minCostPerHour
	}
	remainingHours := (l.cfg.SessionBudget - l.sessionCost) / rateDenom

	estimatedTotal := l.sessionCost
	if remainingHours > 0 {
		estimatedTotal = l.sessionCost + costPerHour*remainingHours
	}

	return &Stats{
		Session: SessionStats{
			Cost:            l.sessionCost,
			Budget:          l.cfg.SessionBudget,
			Percent:         percentOf(l.sessionCost, l.cfg.SessionBudget),
			Remaining:       l.cfg.SessionBudget - l.sessionCost,
			Calls:           l.sessionCalls,
			DurationSeconds: duration,
			AvgCostPerCall:  l.sessionCost / float64(callDenom),
		},
		Hourly: TierStats{
			Cost:      l.hourlyCost,
			Budget:    l.cfg.HourlyBudget,
			Percent:   percentOf(l.hourlyCost, l.cfg.HourlyBudget),
			Remaining: l.cfg.HourlyBudget - l.hourlyCost,
		},
		Daily: TierStats{
			Cost:      l.dailyCost,
			Budget:    l.cfg.DailyBudget,
			Percent:   percentOf(l.dailyCost, l.cfg.DailyBudget),
			Remaining: l.cfg.DailyBudget - l.dailyCost,
		},
		Tokens: TokenStats{
			Input:  l.inputTokens,
			Output: l.outputTokens,
			Total:  l.inputTokens + l.outputTokens,
		},
		Rate: RateStats{
			CallsThisMinute: l.window.Len(),
			MaxPerMinute:    l.window.Limit(),
			CallsPerHour:    callsPerHour,
			CostPerHour:     costPerHour,
		},
		Projections: ProjectionStats{
			RemainingHoursAtCurrentRate: remainingHours,
			EstimatedTotalIfContinues:   estimatedTotal,
		},
	}
}

// percentOf guards the zero-cap case: with no budget configured the tier
// is always at 100%.
func percentOf(cost, budget float64) float64 {
	if budget <= 0 {
		return 100
	}
	return cost / budget * 100
}
