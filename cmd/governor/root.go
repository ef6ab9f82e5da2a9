package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "governor",
	Short: "Governor - budget and rate gate for LLM API calls",
	Long: `Governor is a cost-control service that gates billable LLM API calls.

Callers ask before spending and report after spending:
  - Check: rate limit and budget admission for an estimated call cost
  - Track: record the actual cost against session, hourly, and daily budgets
  - Estimate: token and cost projection for a prompt without committing
  - Stats, history, and alerts for observing spend over time

For more information, visit: https://github.com/sandbox-claws/governor`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
