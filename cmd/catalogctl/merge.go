package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalog-recon/internal/catalog/service"
	"catalog-recon/internal/fileio"
)

func newMergeCmd(a *app) *cobra.Command {
	var (
		input     string
		incoming  string
		brand     string
		out       string
		imagesDir string
		suffix    string
		imageBase string
		headerRow int
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Fold a fresh brand scrape into the catalog",
		Example: `  catalogctl merge --input products_data.json --incoming genosys_scraped.json \
    --brand Genosys --images public/images/products --out products_data_merged.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := fileio.LoadRecords(input, headerRow, fileio.DefaultMapping())
			if err != nil {
				return fmt.Errorf("load %s: %w", input, err)
			}
			fresh, err := fileio.LoadRecords(incoming, headerRow, fileio.DefaultMapping())
			if err != nil {
				return fmt.Errorf("load %s: %w", incoming, err)
			}

			res, err := service.MergeBrand(recs, fresh, brand)
			if err != nil {
				return err
			}
			for _, u := range res.Updates {
				a.logger.Debug().
					Str("id", u.ID).
					Str("incoming", u.IncomingName).
					Float64("score", u.Score).
					Int("completeness_before", u.Before).
					Int("completeness_after", u.After).
					Msg("record refreshed")
			}

			merged := res.Records
			if imagesDir != "" {
				opts := a.cfg.EngineOptions()
				if suffix != "" {
					opts.ImageSuffix = suffix
				}
				images, err := fileio.ListImages(imagesDir, opts.ImageSuffix)
				if err != nil {
					return fmt.Errorf("list images: %w", err)
				}
				mres, err := service.NewMatcher(opts).Match(merged, images)
				if err != nil {
					return err
				}
				var n int
				merged, n = fileio.WithImagePaths(merged, mres, imageBase)
				a.logger.Info().Int("images", len(images)).Int("linked", n).Msg("images linked")
			}

			w, closeFn, err := openOut(cmd, out)
			if err != nil {
				return err
			}
			defer closeFn()
			if err := fileio.WriteRecordsJSON(w, merged); err != nil {
				return err
			}
			a.logger.Info().
				Str("brand", res.Brand).
				Int("updated", len(res.Updates)).
				Int("kept", res.Kept).
				Int("added", res.Added).
				Int("other_brands", res.Others).
				Int("total", len(merged)).
				Msg("merge done")
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "catalog file (.json, .csv, .xls, .xlsx)")
	cmd.Flags().StringVar(&incoming, "incoming", "", "freshly scraped records of one brand")
	cmd.Flags().StringVarP(&brand, "brand", "b", "", "brand the incoming records belong to")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&imagesDir, "images", "", "relink primary images from this directory after merging")
	cmd.Flags().StringVar(&suffix, "suffix", "", "primary image suffix (default from env, -main.jpg)")
	cmd.Flags().StringVar(&imageBase, "image-base", "/public/images/products", "path prefix for written image paths")
	cmd.Flags().IntVar(&headerRow, "header-row", 1, "header row for spreadsheets (1-based)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("incoming")
	_ = cmd.MarkFlagRequired("brand")

	return cmd
}
