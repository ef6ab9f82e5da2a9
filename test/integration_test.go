//go:build integration

package test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sandbox-claws/governor/pkg/config"
	"sandbox-claws/governor/pkg/governor"
	"sandbox-claws/governor/pkg/pricing"
	"sandbox-claws/governor/pkg/server"
	"sandbox-claws/governor/pkg/telemetry/metrics"
)

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()

	table, err := pricing.NewTable(map[string]pricing.Entry{
		"default": {InputPerMillion: 3.0, OutputPerMillion: 15.0},
		"gpt-4o":  {InputPerMillion: 2.5, OutputPerMillion: 10.0},
	})
	if err != nil {
		t.Fatalf("Failed to build pricing table: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	collector := metrics.NewCollector(cfg.Telemetry.Metrics.Enabled, nil)
	gov := governor.New(cfg, table, governor.Options{
		Logger:  logger,
		Metrics: collector,
	})

	srv := server.NewServer(cfg, gov, collector, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Budgets.SessionUSD = 1.0
	cfg.Budgets.HourlyUSD = 50.0
	cfg.Budgets.DailyUSD = 200.0
	cfg.Telemetry.Metrics.Enabled = false
	return cfg
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
}

// TestGovernorIntegration exercises the full check-before, report-after
// lifecycle over HTTP: estimate, check, track, stats, history, and reset.
func TestGovernorIntegration(t *testing.T) {
	ts := newTestServer(t, testConfig())

	t.Run("health check", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/health")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}
		var health struct {
			Status  string `json:"status"`
			Service string `json:"service"`
		}
		decodeBody(t, resp, &health)
		if health.Status != "healthy" {
			t.Errorf("Expected status healthy, got %s", health.Status)
		}
	})

	t.Run("estimate a prompt", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/estimate", map[string]any{
			"prompt": "one two three four five six seven eight nine ten",
			"model":  "gpt-4o",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		var est struct {
			Model       string  `json:"model"`
			InputTokens int     `json:"input_tokens"`
			TotalCost   float64 `json:"total_cost"`
		}
		decodeBody(t, resp, &est)
		if est.Model != "gpt-4o" {
			t.Errorf("Expected model gpt-4o, got %s", est.Model)
		}
		if est.InputTokens != 13 {
			t.Errorf("Expected 13 input tokens, got %d", est.InputTokens)
		}
		if est.TotalCost <= 0 {
			t.Errorf("Expected positive total cost, got %f", est.TotalCost)
		}
	})

	t.Run("check then track", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/check", map[string]any{
			"prompt": "summarize this document",
			"model":  "gpt-4o",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		var check struct {
			Allowed bool `json:"allowed"`
		}
		decodeBody(t, resp, &check)
		if !check.Allowed {
			t.Fatal("Expected check to be allowed")
		}

		resp = postJSON(t, ts.URL+"/track", map[string]any{
			"model":         "gpt-4o",
			"cost":          0.25,
			"input_tokens":  100,
			"output_tokens": 50,
			"duration_ms":   1200.0,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		var stats struct {
			Session struct {
				Cost  float64 `json:"cost"`
				Calls int     `json:"calls"`
			} `json:"session"`
		}
		decodeBody(t, resp, &stats)
		if stats.Session.Cost != 0.25 {
			t.Errorf("Expected session cost 0.25, got %f", stats.Session.Cost)
		}
		if stats.Session.Calls != 1 {
			t.Errorf("Expected 1 call, got %d", stats.Session.Calls)
		}
	})

	t.Run("history records the call", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/history")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		var history struct {
			Calls []struct {
				Model string  `json:"model"`
				Cost  float64 `json:"cost"`
			} `json:"calls"`
			Count int `json:"count"`
		}
		decodeBody(t, resp, &history)
		if history.Count != 1 {
			t.Fatalf("Expected 1 history entry, got %d", history.Count)
		}
		if history.Calls[0].Model != "gpt-4o" {
			t.Errorf("Expected model gpt-4o, got %s", history.Calls[0].Model)
		}
	})

	t.Run("alert fires crossing the threshold", func(t *testing.T) {
		// Session cost goes 0.25 -> 0.80, landing in the alert band.
		resp := postJSON(t, ts.URL+"/track", map[string]any{
			"model":         "gpt-4o",
			"cost":          0.55,
			"input_tokens":  250,
			"output_tokens": 120,
			"duration_ms":   900.0,
		})
		resp.Body.Close()

		resp, err := http.Get(ts.URL + "/alerts")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		var alerts struct {
			Alerts []struct {
				Type string `json:"type"`
			} `json:"alerts"`
			Count int `json:"count"`
		}
		decodeBody(t, resp, &alerts)
		if alerts.Count == 0 {
			t.Fatal("Expected at least one alert after crossing the threshold")
		}
		if alerts.Alerts[0].Type != "budget_warning" {
			t.Errorf("Expected alert type budget_warning, got %s", alerts.Alerts[0].Type)
		}
	})

	t.Run("budget denial after overspend", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/track", map[string]any{
			"model":         "gpt-4o",
			"cost":          0.30,
			"input_tokens":  150,
			"output_tokens": 80,
			"duration_ms":   700.0,
		})
		resp.Body.Close()

		resp = postJSON(t, ts.URL+"/check", map[string]any{
			"prompt": "summarize this document",
			"model":  "gpt-4o",
		})
		var check struct {
			Allowed bool   `json:"allowed"`
			Reason  string `json:"reason"`
			Budget  struct {
				CurrentCost float64 `json:"current_cost"`
				MaxBudget   float64 `json:"max_budget"`
			} `json:"budget"`
		}
		decodeBody(t, resp, &check)
		if check.Allowed {
			t.Fatal("Expected check to be denied over session budget")
		}
		if check.Reason != "session_budget_exceeded" {
			t.Errorf("Expected reason session_budget_exceeded, got %s", check.Reason)
		}
		if check.Budget.MaxBudget != 1.0 {
			t.Errorf("Expected max budget 1.0, got %f", check.Budget.MaxBudget)
		}
	})

	t.Run("reset clears the session", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/reset", nil)
		var reset struct {
			Success bool `json:"success"`
		}
		decodeBody(t, resp, &reset)
		if !reset.Success {
			t.Error("Expected reset to succeed")
		}

		resp = postJSON(t, ts.URL+"/check", map[string]any{
			"prompt": "summarize this document",
			"model":  "gpt-4o",
		})
		var check struct {
			Allowed bool `json:"allowed"`
		}
		decodeBody(t, resp, &check)
		if !check.Allowed {
			t.Error("Expected check to be allowed after reset")
		}
	})
}

// TestRateLimitIntegration verifies the per-minute call window over HTTP.
func TestRateLimitIntegration(t *testing.T) {
	cfg := testConfig()
	cfg.Budgets.SessionUSD = 1000.0
	cfg.Rate.MaxCallsPerMinute = 3
	ts := newTestServer(t, cfg)

	track := map[string]any{
		"model":         "gpt-4o",
		"cost":          0.01,
		"input_tokens":  10,
		"output_tokens": 5,
		"duration_ms":   100.0,
	}
	for i := 0; i < 3; i++ {
		resp := postJSON(t, ts.URL+"/track", track)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Track %d: expected status 200, got %d", i+1, resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp := postJSON(t, ts.URL+"/check", map[string]any{
		"prompt": "one more call",
		"model":  "gpt-4o",
	})
	var check struct {
		Allowed   bool   `json:"allowed"`
		Reason    string `json:"reason"`
		RateLimit struct {
			CallsThisMinute   int     `json:"calls_this_minute"`
			MaxPerMinute      int     `json:"max_per_minute"`
			RetryAfterSeconds float64 `json:"retry_after_seconds"`
		} `json:"rate_limit"`
	}
	decodeBody(t, resp, &check)
	if check.Allowed {
		t.Fatal("Expected rate limit denial")
	}
	if check.Reason != "rate_limit_exceeded" {
		t.Errorf("Expected reason rate_limit_exceeded, got %s", check.Reason)
	}
	if check.RateLimit.CallsThisMinute != 3 {
		t.Errorf("Expected 3 calls this minute, got %d", check.RateLimit.CallsThisMinute)
	}
	if check.RateLimit.RetryAfterSeconds <= 0 || check.RateLimit.RetryAfterSeconds > 60 {
		t.Errorf("Expected retry-after in (0, 60], got %f", check.RateLimit.RetryAfterSeconds)
	}
}

// TestRequestTimeoutIntegration verifies the server enforces its
// configured request timeout on slow handlers without breaking fast ones.
func TestRequestTimeoutIntegration(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RequestTimeout = 5 * time.Second
	ts := newTestServer(t, cfg)

	start := time.Now()
	resp, err := http.Get(ts.URL + "/stats")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Stats request took too long: %v", elapsed)
	}
}
