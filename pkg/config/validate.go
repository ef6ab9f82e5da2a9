package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "budgets.session_usd").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateBudgets(&cfg.Budgets)...)
	errs = append(errs, validateRate(&cfg.Rate)...)
	errs = append(errs, validatePricing(&cfg.Pricing)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateServer validates HTTP server configuration.
func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: "listen address is required",
		})
	}

	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.read_timeout",
			Message: "read timeout must be positive",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.write_timeout",
			Message: "write timeout must be positive",
		})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.idle_timeout",
			Message: "idle timeout must be positive",
		})
	}
	if cfg.RequestTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.request_timeout",
			Message: "request timeout must be positive",
		})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.shutdown_timeout",
			Message: "shutdown timeout must be positive",
		})
	}

	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "server.max_header_bytes",
			Message: "max header bytes must be non-negative",
		})
	}
	if cfg.MaxHeaderBytes > 10*1024*1024 {
		errs = append(errs, FieldError{
			Field:   "server.max_header_bytes",
			Message: "max header bytes exceeds reasonable limit (10MB)",
		})
	}

	return errs
}

// validateBudgets validates budget configuration. Zero caps are permitted
// and mean every positive-cost call is denied; negative caps are errors.
func validateBudgets(cfg *BudgetsConfig) []FieldError {
	var errs []FieldError

	if cfg.SessionUSD < 0 {
		errs = append(errs, FieldError{
			Field:   "budgets.session_usd",
			Message: "session budget must be non-negative",
		})
	}
	if cfg.HourlyUSD < 0 {
		errs = append(errs, FieldError{
			Field:   "budgets.hourly_usd",
			Message: "hourly budget must be non-negative",
		})
	}
	if cfg.DailyUSD < 0 {
		errs = append(errs, FieldError{
			Field:   "budgets.daily_usd",
			Message: "daily budget must be non-negative",
		})
	}

	if cfg.AlertThresholdPercent < 0 || cfg.AlertThresholdPercent > 100 {
		errs = append(errs, FieldError{
			Field:   "budgets.alert_threshold_percent",
			Message: "alert threshold must be between 0 and 100",
		})
	}

	return errs
}

// validateRate validates rate and request-size limits. A zero call limit
// is permitted and denies every call.
func validateRate(cfg *RateConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxCallsPerMinute < 0 {
		errs = append(errs, FieldError{
			Field:   "rate.max_calls_per_minute",
			Message: "max calls per minute must be non-negative",
		})
	}
	if cfg.MaxTokensPerRequest <= 0 {
		errs = append(errs, FieldError{
			Field:   "rate.max_tokens_per_request",
			Message: "max tokens per request must be positive",
		})
	}

	return errs
}

// validatePricing validates pricing table configuration.
func validatePricing(cfg *PricingConfig) []FieldError {
	var errs []FieldError

	if cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "pricing.path",
			Message: "pricing table path is required",
		})
	}
	if cfg.TokensPerWord <= 0 {
		errs = append(errs, FieldError{
			Field:   "pricing.tokens_per_word",
			Message: "tokens per word must be positive",
		})
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid log level %q (must be debug, info, warn, or error)", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid log format %q (must be json or text)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path must start with /",
		})
	}

	return errs
}
