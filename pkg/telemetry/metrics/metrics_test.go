package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAdmission(t *testing.T) {
	c := NewCollector(true, nil)

	c.RecordAdmission("allowed", "")
	c.RecordAdmission("allowed", "")
	c.RecordAdmission("denied", "rate_limit_exceeded")

	allowed := testutil.ToFloat64(c.admission.checksTotal.WithLabelValues("allowed", ""))
	if allowed != 2 {
		t.Errorf("Expected 2 allowed checks, got %f", allowed)
	}
	denied := testutil.ToFloat64(c.admission.checksTotal.WithLabelValues("denied", "rate_limit_exceeded"))
	if denied != 1 {
		t.Errorf("Expected 1 denied check, got %f", denied)
	}
}

func TestRecordCall(t *testing.T) {
	c := NewCollector(true, nil)

	c.RecordCall("gpt-4", 0.05, 150, 1200)
	c.RecordCall("gpt-4", 0.03, 100, 800)

	calls := testutil.ToFloat64(c.calls.callsTotal.WithLabelValues("gpt-4"))
	if calls != 2 {
		t.Errorf("Expected 2 tracked calls, got %f", calls)
	}
	cost := testutil.ToFloat64(c.calls.costTotal.WithLabelValues("gpt-4"))
	if cost < 0.079 || cost > 0.081 {
		t.Errorf("Expected cost total 0.08, got %f", cost)
	}
	tokens := testutil.ToFloat64(c.calls.tokensTotal.WithLabelValues("gpt-4"))
	if tokens != 250 {
		t.Errorf("Expected 250 tokens, got %f", tokens)
	}
}

func TestUpdateBudgetAndAlerts(t *testing.T) {
	c := NewCollector(true, nil)

	c.UpdateBudget("session", 45.0, 5.5)
	c.RecordAlert()

	util := testutil.ToFloat64(c.budget.utilization.WithLabelValues("session"))
	if util != 45.0 {
		t.Errorf("Expected utilization 45.0, got %f", util)
	}
	remaining := testutil.ToFloat64(c.budget.remaining.WithLabelValues("session"))
	if remaining != 5.5 {
		t.Errorf("Expected remaining 5.5, got %f", remaining)
	}
	alerts := testutil.ToFloat64(c.budget.alertsTotal)
	if alerts != 1 {
		t.Errorf("Expected 1 alert, got %f", alerts)
	}
}

func TestDisabledCollectorIsNoOp(t *testing.T) {
	c := NewCollector(false, nil)

	c.RecordAdmission("allowed", "")
	c.RecordCall("gpt-4", 0.05, 150, 1200)
	c.RecordAlert()
	c.UpdateBudget("session", 45.0, 5.5)

	if got := testutil.ToFloat64(c.admission.checksTotal.WithLabelValues("allowed", "")); got != 0 {
		t.Errorf("Expected disabled collector to record nothing, got %f", got)
	}
	if got := testutil.ToFloat64(c.budget.alertsTotal); got != 0 {
		t.Errorf("Expected disabled collector to record no alerts, got %f", got)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	c := NewCollector(true, nil)
	c.RecordCall("gpt-4", 0.05, 150, 1200)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "sandbox_claws_governor_calls_tracked_total") {
		t.Errorf("Expected exposition to contain call counter, got:\n%s", body)
	}
}

func TestSnapshotterRefresh(t *testing.T) {
	c := NewCollector(true, nil)

	fn := func() []TierSnapshot {
		return []TierSnapshot{
			{Tier: "session", Percent: 30, Remaining: 7},
			{Tier: "hourly", Percent: 2, Remaining: 49},
			{Tier: "daily", Percent: 0.5, Remaining: 199},
		}
	}

	s := NewSnapshotter("* * * * *", fn, c, nil)
	s.Refresh()

	if got := testutil.ToFloat64(c.budget.utilization.WithLabelValues("hourly")); got != 2 {
		t.Errorf("Expected hourly utilization 2, got %f", got)
	}
	if got := testutil.ToFloat64(c.budget.remaining.WithLabelValues("daily")); got != 199 {
		t.Errorf("Expected daily remaining 199, got %f", got)
	}
}

func TestSnapshotterStartStop(t *testing.T) {
	c := NewCollector(true, nil)
	s := NewSnapshotter("* * * * *", func() []TierSnapshot {
		return []TierSnapshot{{Tier: "session", Percent: 10, Remaining: 9}}
	}, c, nil)

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	// Start refreshes immediately.
	if got := testutil.ToFloat64(c.budget.utilization.WithLabelValues("session")); got != 10 {
		t.Errorf("Expected immediate refresh on start, got %f", got)
	}
	s.Stop()
}

func TestSnapshotterInvalidSchedule(t *testing.T) {
	c := NewCollector(true, nil)
	s := NewSnapshotter("not a schedule", func() []TierSnapshot { return nil }, c, nil)

	if err := s.Start(); err == nil {
		t.Error("Expected error for invalid cron schedule")
	}
}
