package serverhttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"catalog-recon/internal/config"
)

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewRouter(cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("bye")
	return nil
}
