package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"catalog-recon/internal/catalog/service"
	"catalog-recon/internal/fileio"
	"catalog-recon/internal/report"
)

func newMatchCmd(a *app) *cobra.Command {
	var (
		input     string
		imagesDir string
		suffix    string
		reportOut string
		writeOut  string
		imageBase string
		headerRow int
		fuzzy     float64
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Assign primary image files to products",
		Example: `  catalogctl match --input products_data.json --images public/images/products \
    --report matching_report.md --write products_data_updated.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := fileio.LoadRecords(input, headerRow, fileio.DefaultMapping())
			if err != nil {
				return fmt.Errorf("load %s: %w", input, err)
			}

			opts := a.cfg.EngineOptions()
			if suffix != "" {
				opts.ImageSuffix = suffix
			}
			if fuzzy > 0 {
				opts.FuzzyThreshold = fuzzy
			}
			images, err := fileio.ListImages(imagesDir, opts.ImageSuffix)
			if err != nil {
				return fmt.Errorf("list images: %w", err)
			}
			a.logger.Info().Int("products", len(recs)).Int("images", len(images)).Msg("inputs loaded")

			res, err := service.NewMatcher(opts).Match(recs, images)
			if err != nil {
				return err
			}
			a.logger.Info().
				Int("direct", res.Direct).
				Int("base_name", res.BaseName).
				Int("fuzzy", res.Fuzzy).
				Int("unmatched_products", len(res.UnmatchedProducts)).
				Int("unmatched_images", len(res.UnmatchedImages)).
				Str("match_rate", fmt.Sprintf("%.1f%%", res.MatchRate())).
				Msg("match done")

			if reportOut != "" {
				f, err := os.Create(reportOut)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := report.WriteMarkdown(f, res, time.Now()); err != nil {
					return err
				}
			} else if err := report.WriteMarkdown(cmd.OutOrStdout(), res, time.Now()); err != nil {
				return err
			}

			if writeOut != "" {
				updated, n := fileio.WithImagePaths(recs, res, imageBase)
				f, err := os.Create(writeOut)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := fileio.WriteRecordsJSON(f, updated); err != nil {
					return err
				}
				a.logger.Info().Int("updated", n).Str("path", writeOut).Msg("catalog written")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "catalog file (.json, .csv, .xls, .xlsx)")
	cmd.Flags().StringVar(&imagesDir, "images", "", "directory with product images")
	cmd.Flags().StringVar(&suffix, "suffix", "", "primary image suffix (default from env, -main.jpg)")
	cmd.Flags().StringVar(&reportOut, "report", "", "markdown report path (default stdout)")
	cmd.Flags().StringVar(&writeOut, "write", "", "write the catalog with matched image paths to this file")
	cmd.Flags().StringVar(&imageBase, "image-base", "/public/images/products", "path prefix for written image paths")
	cmd.Flags().IntVar(&headerRow, "header-row", 1, "header row for spreadsheets (1-based)")
	cmd.Flags().Float64Var(&fuzzy, "fuzzy-threshold", 0, "fuzzy acceptance threshold (default from env, 0.6)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("images")

	return cmd
}
