// Governor is a budget and rate gate for billable LLM API calls.
//
// It sits in front of outbound LLM requests as a check-before, report-after
// service, providing:
//   - Sliding-window rate limiting on calls per minute
//   - Session, hourly, and daily cost budgets with lazy rollover
//   - Token and cost estimation from prompt text and per-model pricing
//   - Budget alerts when spend crosses a configurable threshold
//   - Spend statistics, call history, and burn-rate projections
//
// Usage:
//
//	# Start server with default configuration
//	governor run
//
//	# Start with custom configuration file
//	governor run --config /path/to/config.yaml
//
//	# Show version information
//	governor version
//
//	# Validate a configuration file
//	governor validate --config /path/to/config.yaml
//
// For complete documentation, see: https://github.com/sandbox-claws/governor
package main

func main() {
	Execute()
}
