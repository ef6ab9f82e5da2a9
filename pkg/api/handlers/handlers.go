package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"sandbox-claws/governor/pkg/governor"
	"sandbox-claws/governor/pkg/limits/ledger"
)

// serviceName identifies this service in health responses.
const serviceName = "governor"

// defaultHistoryLimit is applied when GET /history carries no limit
// parameter.
const defaultHistoryLimit = 100

// Handler serves the governor API. All state lives in the Governor
// façade; handlers only translate between HTTP and façade calls.
type Handler struct {
	gov    *governor.Governor
	logger *slog.Logger
}

// New creates the API handler.
func New(gov *governor.Governor, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		gov:    gov,
		logger: logger.With("component", "api"),
	}
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Service: serviceName})
}

// Estimate handles POST /estimate: price a prompt without touching any
// limit state.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req EstimateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	estimate, err := h.gov.Estimate(req.Prompt, req.Model, req.ExpectedOutputTokens)
	if err != nil {
		writeGovernorError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, estimate)
}

// Check handles POST /check: the admission verdict for a prospective
// call. Denials are 200 responses with allowed=false; over-long prompts
// are 413.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req EstimateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.gov.Check(req.Prompt, req.Model)
	if err != nil {
		writeGovernorError(w, err)
		return
	}

	if maxTokens := h.gov.MaxTokensPerRequest(); result.Estimate.TotalTokens > maxTokens {
		writeJSON(w, http.StatusRequestEntityTooLarge, TokenLimitResponse{
			Error:               "Prompt exceeds max tokens per request",
			EstimatedTokens:     result.Estimate.TotalTokens,
			MaxTokensPerRequest: maxTokens,
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Track handles POST /track: commit an actual call. Negative values are
// rejected rather than silently mis-accounted.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req TrackRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Cost < 0 || req.InputTokens < 0 || req.OutputTokens < 0 || req.DurationMS < 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Negative values not allowed"})
		return
	}

	model := req.Model
	if model == "" {
		model = "unknown"
	}

	stats := h.gov.Track(ledger.Call{
		Model:        model,
		Cost:         req.Cost,
		InputTokens:  req.InputTokens,
		OutputTokens: req.OutputTokens,
		DurationMS:   req.DurationMS,
	})

	writeJSON(w, http.StatusOK, stats)
}

// Stats handles GET /stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.gov.Stats())
}

// History handles GET /history?limit=N.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	calls := h.gov.History(limit)
	if calls == nil {
		calls = []ledger.CallRecord{}
	}

	writeJSON(w, http.StatusOK, HistoryResponse{
		Calls: calls,
		Count: h.gov.HistorySize(),
	})
}

// Alerts handles GET /alerts.
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	alerts := h.gov.Alerts()
	if alerts == nil {
		alerts = []ledger.Alert{}
	}

	writeJSON(w, http.StatusOK, AlertsResponse{
		Alerts: alerts,
		Count:  len(alerts),
	})
}

// Reset handles POST /reset.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	h.gov.Reset()
	writeJSON(w, http.StatusOK, ResetResponse{Success: true, Message: "Session reset"})
}

// Pricing handles GET /pricing.
func (h *Handler) Pricing(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.gov.Pricing())
}

// requireMethod enforces the HTTP method, writing a 405 otherwise.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
		return false
	}
	return true
}

// decodeBody decodes a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return false
	}
	return true
}

// writeGovernorError maps façade errors to HTTP responses.
func writeGovernorError(w http.ResponseWriter, err error) {
	if errors.Is(err, governor.ErrEmptyPrompt) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "No prompt provided"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
