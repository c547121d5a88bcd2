package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/wosamar/rakuten-tools/internal/engine"
)

var (
	definitionsPath string
	productsPath    string
	outPath         string
	maxTitleWidth   int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the per-item payload map from a definitions file",
	RunE: func(_ *cobra.Command, _ []string) error {
		defsData, err := os.ReadFile(definitionsPath)
		if err != nil {
			return fmt.Errorf("read definitions: %w", err)
		}
		defs, err := engine.ParseDefinitions(defsData)
		if err != nil {
			return err
		}

		prodData, err := os.ReadFile(productsPath)
		if err != nil {
			return fmt.Errorf("read products: %w", err)
		}
		var products []engine.ProductSnapshot
		if err := json.Unmarshal(prodData, &products); err != nil {
			return fmt.Errorf("decode products: %w", err)
		}

		flow := engine.Flow{MaxTitleWidth: maxTitleWidth}
		payloads, stats, err := flow.Execute(products, defs)
		if err != nil {
			return err
		}
		log.Info().
			Int("total", stats.Total).
			Int("generated", stats.Generated).
			Int("skipped", stats.Skipped).
			Msg("generation run finished")

		out, err := json.MarshalIndent(payloads, "", "  ")
		if err != nil {
			return err
		}
		if outPath == "" || outPath == "-" {
			fmt.Println(string(out))
			return nil
		}
		return os.WriteFile(outPath, out, 0o644)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&definitionsPath, "definitions", "d", "", "campaign definitions file (JSON or YAML)")
	generateCmd.Flags().StringVarP(&productsPath, "products", "p", "", "product snapshot dump (JSON array)")
	generateCmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file, - for stdout")
	generateCmd.Flags().IntVar(&maxTitleWidth, "max-title-width", 0, "title width limit in half-width units (default 255)")
	_ = generateCmd.MarkFlagRequired("definitions")
	_ = generateCmd.MarkFlagRequired("products")
}
