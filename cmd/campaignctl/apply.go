package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wosamar/rakuten-tools/internal/config"
	"github.com/wosamar/rakuten-tools/internal/engine"
	"github.com/wosamar/rakuten-tools/internal/rms"
)

var payloadsPath string

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Patch the marketplace with a generated payload map",
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := os.ReadFile(payloadsPath)
		if err != nil {
			return fmt.Errorf("read payloads: %w", err)
		}
		var payloads map[string]engine.Payload
		if err := json.Unmarshal(data, &payloads); err != nil {
			return fmt.Errorf("decode payloads: %w", err)
		}
		if len(payloads) == 0 {
			return fmt.Errorf("no payloads to apply")
		}

		cfg := config.Load()
		client := rms.NewClient(cfg.RMS.BaseURL, cfg.RMS.ServiceSecret, cfg.RMS.LicenseKey, cfg.RMS.RetryMax)

		res := client.ApplyPayloads(cmd.Context(), payloads)
		if len(res.Failed) > 0 {
			return fmt.Errorf("%d of %d item updates failed", len(res.Failed), res.Total)
		}
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVarP(&payloadsPath, "payloads", "f", "", "payload map file (JSON)")
	_ = applyCmd.MarkFlagRequired("payloads")
}
