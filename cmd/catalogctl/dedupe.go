package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"catalog-recon/internal/catalog/service"
	"catalog-recon/internal/fileio"
	"catalog-recon/internal/report"
)

func newDedupeCmd(a *app) *cobra.Command {
	var (
		input     string
		out       string
		format    string
		brands    []string
		headerRow int
		near      float64
		variant   float64
	)

	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Report duplicate records per brand",
		Example: `  # Text report for two brands
  catalogctl dedupe --input products_data.json --brand Genosys --brand Theraderm

  # Machine readable analysis
  catalogctl dedupe --input export.xlsx --format yaml --out analysis.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := fileio.LoadRecords(input, headerRow, fileio.DefaultMapping())
			if err != nil {
				return fmt.Errorf("load %s: %w", input, err)
			}
			a.logger.Info().Str("input", input).Int("records", len(recs)).Msg("catalog loaded")

			opts := a.cfg.EngineOptions()
			if near > 0 {
				opts.NearDuplicateThreshold = near
			}
			if variant > 0 {
				opts.VariantThreshold = variant
			}
			res, err := service.NewAnalyzer(opts).Analyze(recs, brands)
			if err != nil {
				return err
			}
			res.RunID = uuid.NewString()

			w, closeFn, err := openOut(cmd, out)
			if err != nil {
				return err
			}
			defer closeFn()

			switch format {
			case "text":
				err = report.WriteText(w, res)
			case "yaml":
				err = report.WriteYAML(w, res, time.Now())
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				err = enc.Encode(res)
			default:
				return fmt.Errorf("unknown format %q (text, yaml, json)", format)
			}
			if err != nil {
				return err
			}
			a.logger.Info().
				Int("partitions", len(res.Partitions)).
				Int("before", res.TotalBefore).
				Int("after", res.TotalAfter).
				Int("skipped_no_brand", res.SkippedNoBrand).
				Msg("dedupe done")
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "catalog file (.json, .csv, .xls, .xlsx)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, yaml, json")
	cmd.Flags().StringSliceVarP(&brands, "brand", "b", nil, "only analyze these brands (repeatable)")
	cmd.Flags().IntVar(&headerRow, "header-row", 1, "header row for spreadsheets (1-based)")
	cmd.Flags().Float64Var(&near, "near-threshold", 0, "near-duplicate similarity threshold (default from env, 0.85)")
	cmd.Flags().Float64Var(&variant, "variant-threshold", 0, "threshold for pairs with different sizes (default from env, 0.95)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func openOut(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
