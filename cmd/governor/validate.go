package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"sandbox-claws/governor/pkg/config"
	"sandbox-claws/governor/pkg/pricing"
)

var validateFlags struct {
	pricingOnly bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and pricing files",
	Long: `Validate the configuration file and the pricing table it references.

The validate command loads the configuration (including environment variable
overrides), checks every field against the validation rules, and then parses
the pricing table to confirm all model entries are well formed.

Examples:
  # Validate the default configuration
  governor validate

  # Validate a specific config file
  governor validate --config /etc/governor/config.yaml

  # Validate only the pricing table
  governor validate --pricing-only`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateFlags.pricingOnly, "pricing-only", false, "skip config validation, only check the pricing table")
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	if !validateFlags.pricingOnly {
		fmt.Println("✓ Configuration valid")
		fmt.Printf("  Listen address:    %s\n", cfg.Server.ListenAddress)
		fmt.Printf("  Session budget:    $%.2f\n", cfg.Budgets.SessionUSD)
		fmt.Printf("  Hourly budget:     $%.2f\n", cfg.Budgets.HourlyUSD)
		fmt.Printf("  Daily budget:      $%.2f\n", cfg.Budgets.DailyUSD)
		fmt.Printf("  Rate limit:        %d calls/minute\n", cfg.Rate.MaxCallsPerMinute)
		fmt.Printf("  Max tokens:        %d per request\n", cfg.Rate.MaxTokensPerRequest)
		fmt.Printf("  Alert threshold:   %.0f%%\n", cfg.Budgets.AlertThresholdPercent)
	}

	table, err := pricing.Load(cfg.Pricing.Path)
	if err != nil {
		return fmt.Errorf("pricing table invalid: %w", err)
	}
	fmt.Printf("✓ Pricing table valid (%d models)\n", table.Len())

	return nil
}
