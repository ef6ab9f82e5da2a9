package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:5003"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	// CORS defaults
	DefaultCORSEnabled = true
	DefaultCORSMaxAge  = 3600 // 1 hour

	// Budget defaults
	DefaultSessionBudgetUSD      = 10.00
	DefaultHourlyBudgetUSD       = 50.00
	DefaultDailyBudgetUSD        = 200.00
	DefaultAlertThresholdPercent = 80.0

	// Rate defaults
	DefaultMaxCallsPerMinute   = 30
	DefaultMaxTokensPerRequest = 8000

	// Pricing defaults
	DefaultPricingPath   = "./pricing.yaml"
	DefaultTokensPerWord = 1.3

	// Telemetry defaults
	DefaultLoggingLevel            = "info"
	DefaultLoggingFormat           = "json"
	DefaultMetricsEnabled          = true
	DefaultMetricsPath             = "/metrics"
	DefaultMetricsSnapshotSchedule = "* * * * *"
)

// DefaultConfig returns a configuration populated entirely with defaults.
// It is used when no configuration file is present.
func DefaultConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			CORS: CORSConfig{Enabled: DefaultCORSEnabled},
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in default values for any zero-valued fields.
// Boolean fields keep whatever the file or caller set; their defaults are
// applied only by DefaultConfig.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	// CORS defaults
	if len(cfg.Server.CORS.AllowedOrigins) == 0 {
		cfg.Server.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.Server.CORS.AllowedMethods) == 0 {
		cfg.Server.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.Server.CORS.AllowedHeaders) == 0 {
		cfg.Server.CORS.AllowedHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if cfg.Server.CORS.MaxAge == 0 {
		cfg.Server.CORS.MaxAge = DefaultCORSMaxAge
	}

	// Budget defaults. Zero is a meaningful cap (always deny), so
	// defaults apply only when the whole budgets section is absent; a
	// file that sets a cap to 0 keeps it by writing any other field in
	// the section.
	if cfg.Budgets == (BudgetsConfig{}) {
		cfg.Budgets = BudgetsConfig{
			SessionUSD:            DefaultSessionBudgetUSD,
			HourlyUSD:             DefaultHourlyBudgetUSD,
			DailyUSD:              DefaultDailyBudgetUSD,
			AlertThresholdPercent: DefaultAlertThresholdPercent,
		}
	} else if cfg.Budgets.AlertThresholdPercent == 0 {
		cfg.Budgets.AlertThresholdPercent = DefaultAlertThresholdPercent
	}

	// Rate defaults
	if cfg.Rate == (RateConfig{}) {
		cfg.Rate = RateConfig{
			MaxCallsPerMinute:   DefaultMaxCallsPerMinute,
			MaxTokensPerRequest: DefaultMaxTokensPerRequest,
		}
	}

	// Pricing defaults
	if cfg.Pricing.Path == "" {
		cfg.Pricing.Path = DefaultPricingPath
	}
	if cfg.Pricing.TokensPerWord == 0 {
		cfg.Pricing.TokensPerWord = DefaultTokensPerWord
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.SnapshotSchedule == "" {
		cfg.Telemetry.Metrics.SnapshotSchedule = DefaultMetricsSnapshotSchedule
	}
}
