package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"sandbox-claws/governor/pkg/config"
	"sandbox-claws/governor/pkg/governor"
	"sandbox-claws/governor/pkg/pricing"
	"sandbox-claws/governor/pkg/server"
	"sandbox-claws/governor/pkg/telemetry/logging"
	"sandbox-claws/governor/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the governor server",
	Long: `Start the governor server with the specified configuration.

The server listens on the configured address and exposes the check, track,
estimate, stats, history, alerts, and reset endpoints.

Examples:
  # Start with default config
  governor run

  # Start with custom config
  governor run --config /etc/governor/config.yaml

  # Override listen address
  governor run --listen 0.0.0.0:5003

  # Validate config without starting server
  governor run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logging based on config
	logger, err := logging.New(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	// Print startup banner
	printBanner(cfg)

	// Load the pricing table
	slog.Info("loading pricing table", "path", cfg.Pricing.Path)
	table, err := pricing.Load(cfg.Pricing.Path)
	if err != nil {
		return fmt.Errorf("failed to load pricing table: %w", err)
	}
	fmt.Printf("✓ Pricing table loaded (%d models)\n", table.Len())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Hot-reload pricing on file change (if enabled)
	if cfg.Pricing.Watch {
		watcher, err := pricing.NewWatcher(table, cfg.Pricing.Path, logger)
		if err != nil {
			slog.Warn("failed to create pricing watcher", "error", err)
		} else {
			go func() {
				if err := watcher.Watch(ctx); err != nil {
					slog.Warn("pricing watcher stopped", "error", err)
				}
			}()
			defer watcher.Stop()
			fmt.Println("✓ Pricing hot-reload enabled")
		}
	}

	// Create the metrics collector and the governor
	collector := metrics.NewCollector(cfg.Telemetry.Metrics.Enabled, nil)
	gov := governor.New(cfg, table, governor.Options{
		Logger:  logger,
		Metrics: collector,
	})
	gov.LogStartup()

	// Periodic budget gauge refresh (if metrics are enabled)
	if cfg.Telemetry.Metrics.Enabled {
		snapshotter := metrics.NewSnapshotter(
			cfg.Telemetry.Metrics.SnapshotSchedule,
			gov.TierSnapshots,
			collector,
			logger,
		)
		if err := snapshotter.Start(); err != nil {
			slog.Warn("failed to start budget snapshotter", "error", err)
		} else {
			defer snapshotter.Stop()
		}
	}

	// Create HTTP server
	srv := server.NewServer(cfg, gov, collector, logger)

	fmt.Println()
	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Blocks until signal, context cancellation, or listener error
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	fmt.Println("✓ Server stopped")
	return nil
}

func printBanner(cfg *config.Config) {
	fmt.Printf("Governor v%s\n", Version)
	if cfgFile != "" {
		fmt.Printf("Loading configuration from: %s\n", cfgFile)
	}
	fmt.Println("✓ Configuration loaded")

	slog.Debug("budgets configured",
		"session_usd", cfg.Budgets.SessionUSD,
		"hourly_usd", cfg.Budgets.HourlyUSD,
		"daily_usd", cfg.Budgets.DailyUSD,
	)
	slog.Debug("rate limits configured",
		"max_calls_per_minute", cfg.Rate.MaxCallsPerMinute,
		"max_tokens_per_request", cfg.Rate.MaxTokensPerRequest,
	)
}
