package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	api "taskapp/internal/adapter/http"
	"taskapp/pkg/config"
	"taskapp/pkg/logging"
	"taskapp/pkg/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()

	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	logger, err := logging.NewAppLogger("taskapp", cfg.IsProduction())

	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}

	defer logger.Sync()

	tel, err := telemetry.InitTelemetry(telemetry.TelemetryConfig{
		ServiceName:    "taskapp",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry: ", err)
	}

	defer tel.Shutdown(context.Background())

	metrics := telemetry.NewAppMetrics(tel.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	if err := api.StartServer(ctx, cfg, metrics, logger); err != nil {
		log.Fatal("Server failed: ", err)
	}

	logger.Logger.Info("Shutting down gracefully...")
}
