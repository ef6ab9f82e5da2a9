package config

import "time"

// Config is the root configuration structure for the governor service.
// It contains the HTTP server settings, the budget caps, the rate limit,
// pricing-table settings, and telemetry settings.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and CORS settings.
	Server ServerConfig `yaml:"server"`

	// Budgets contains the three-tier cost caps and the alert threshold.
	Budgets BudgetsConfig `yaml:"budgets"`

	// Rate contains the per-minute call limit and the per-request token cap.
	Rate RateConfig `yaml:"rate"`

	// Pricing contains the pricing table location and estimator tuning.
	Pricing PricingConfig `yaml:"pricing"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:5003", "0.0.0.0:5003").
	// Default: "127.0.0.1:5003"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// RequestTimeout bounds handler execution per request. Default: 30s
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing request headers. Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS configuration for the API.
type CORSConfig struct {
	// Enabled controls whether CORS headers are emitted.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins is a list of allowed origins for CORS requests.
	// Use ["*"] to allow all origins. Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is a list of allowed HTTP methods.
	// Default: ["GET", "POST", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is a list of allowed HTTP headers.
	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// MaxAge is the maximum age in seconds for preflight caching.
	// Default: 3600
	MaxAge int `yaml:"max_age"`
}

// BudgetsConfig contains the cost caps in USD. A cap of zero is valid and
// means every positive-cost call is denied at that tier.
type BudgetsConfig struct {
	// SessionUSD is the cap for the current session, which lasts until an
	// explicit reset. Default: 10.00
	SessionUSD float64 `yaml:"session_usd"`

	// HourlyUSD is the rolling hourly cap. Default: 50.00
	HourlyUSD float64 `yaml:"hourly_usd"`

	// DailyUSD is the rolling daily cap. Default: 200.00
	DailyUSD float64 `yaml:"daily_usd"`

	// AlertThresholdPercent is the session utilization percentage at which
	// budget warnings begin. Default: 80.0
	AlertThresholdPercent float64 `yaml:"alert_threshold_percent"`
}

// RateConfig contains call-rate and request-size limits.
type RateConfig struct {
	// MaxCallsPerMinute is the sliding-window call limit. Zero denies
	// every call. Default: 30
	MaxCallsPerMinute int `yaml:"max_calls_per_minute"`

	// MaxTokensPerRequest caps the estimated token count of a single
	// request at the API layer. Default: 8000
	MaxTokensPerRequest int `yaml:"max_tokens_per_request"`
}

// PricingConfig contains pricing table and estimator settings.
type PricingConfig struct {
	// Path is the location of the YAML pricing table. The file must
	// contain a "default" model entry. Default: "./pricing.yaml"
	Path string `yaml:"path"`

	// Watch enables hot reload of the pricing table on file change.
	// Default: false
	Watch bool `yaml:"watch"`

	// TokensPerWord tunes the approximate token counter.
	// Default: 1.3
	TokensPerWord float64 `yaml:"tokens_per_word"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", or "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// SnapshotSchedule is a cron expression controlling how often budget
	// gauges are refreshed from ledger stats. Default: "* * * * *"
	SnapshotSchedule string `yaml:"snapshot_schedule"`
}
