package handlers

import (
	"sandbox-claws/governor/pkg/limits/ledger"
)

// EstimateRequest is the body for POST /estimate and POST /check.
// ExpectedOutputTokens is honored by /estimate only.
type EstimateRequest struct {
	Prompt               string `json:"prompt"`
	Model                string `json:"model"`
	ExpectedOutputTokens *int   `json:"expected_output_tokens,omitempty"`
}

// TrackRequest is the body for POST /track.
type TrackRequest struct {
	Model        string  `json:"model"`
	Cost         float64 `json:"cost"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	DurationMS   float64 `json:"duration_ms"`
}

// HistoryResponse is the body for GET /history.
type HistoryResponse struct {
	Calls []ledger.CallRecord `json:"calls"`
	Count int                 `json:"count"`
}

// AlertsResponse is the body for GET /alerts.
type AlertsResponse struct {
	Alerts []ledger.Alert `json:"alerts"`
	Count  int            `json:"count"`
}

// ResetResponse is the body for POST /reset.
type ResetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse is the body for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ErrorResponse is the body for every 4xx/5xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TokenLimitResponse is the 413 body for prompts whose estimated token
// count exceeds the per-request cap.
type TokenLimitResponse struct {
	Error               string `json:"error"`
	EstimatedTokens     int    `json:"estimated_tokens"`
	MaxTokensPerRequest int    `json:"max_tokens_per_request"`
}
