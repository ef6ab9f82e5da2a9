package handlers

import "net/http"

// Routes registers every API endpoint on the given mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/estimate", h.Estimate)
	mux.HandleFunc("/check", h.Check)
	mux.HandleFunc("/track", h.Track)
	mux.HandleFunc("/stats", h.Stats)
	mux.HandleFunc("/history", h.History)
	mux.HandleFunc("/alerts", h.Alerts)
	mux.HandleFunc("/reset", h.Reset)
	mux.HandleFunc("/pricing", h.Pricing)
}
