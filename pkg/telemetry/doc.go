// Package telemetry provides observability for the governor.
//
// # Components
//
//   - logging: structured logging built on log/slog
//   - metrics: Prometheus metrics collection and budget gauge snapshots
//
// Logging and metrics are wired at startup and injected into the
// components that use them; nothing in this package reads global state.
package telemetry
