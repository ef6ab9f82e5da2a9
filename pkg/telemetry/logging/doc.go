// Package logging configures structured logging for the governor service.
//
// It builds a log/slog logger from the telemetry configuration (level and
// format) and carries request-scoped fields such as the request ID through
// context.Context so every handler log line can be correlated.
package logging
