package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"catalog-recon/internal/config"
	serverhttp "catalog-recon/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serverhttp.Run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("listen")
	}
}
