package main

import (
	"github.com/spf13/cobra"

	serverhttp "catalog-recon/server/http"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (/dedupe, /match, /health)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				a.cfg.Port = port
			}
			return serverhttp.Run(cmd.Context(), a.cfg, a.logger)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default from env, 8082)")
	return cmd
}
