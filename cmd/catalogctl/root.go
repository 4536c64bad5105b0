package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"catalog-recon/internal/config"
)

type app struct {
	cfg    config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Find duplicate catalog records and match product images",
		Long: `catalogctl reconciles a product catalog: it reports duplicate and conflicting
records per brand, and assigns primary image files to products.

Thresholds come from the environment (NEAR_DUP_THRESHOLD, VARIANT_THRESHOLD,
FUZZY_THRESHOLD, FUZZY_ID_WEIGHT, FUZZY_NAME_WEIGHT, IMAGE_SUFFIX) or a .env file.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg = config.Load()
			if cmd.Name() != "serve" {
				a.cfg.LogFile = ""
			}
			a.logger = config.SetupLogger(a.cfg)
		},
	}

	cmd.AddCommand(newDedupeCmd(a), newMatchCmd(a), newMergeCmd(a), newServeCmd(a))
	return cmd
}
