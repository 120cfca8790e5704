package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"taskapp/pkg/config"
	"taskapp/pkg/logging"
	"taskapp/pkg/telemetry"
)

func StartServer(ctx context.Context, cfg *config.Config, metrics *telemetry.AppMetrics, logger *logging.AppLogger) error {
	container, err := NewContainer(cfg, metrics, logger)

	if err != nil {
		return err
	}

	router := SetupRouter(container, metrics, logger, cfg)

	slog.Info("Server starting",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"database_adapter", cfg.DatabaseAdapter,
		"rate_limit_enabled", cfg.RateLimitEnabled)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
