package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wosamar/rakuten-tools/internal/config"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "campaignctl",
	Short: "Generate and apply marketplace campaign payloads offline",
	Long: `campaignctl runs the campaign payload engine without the HTTP service:
feed it a campaign definitions file and a product dump, inspect the generated
payload map, then apply it against the RMS items API.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		config.SetupLogging(logLevel)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(applyCmd)
}
