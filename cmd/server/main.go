package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"foiagate/internal/gate"
	gateMetrics "foiagate/internal/gate/metrics"
	"foiagate/internal/platform/config"
	"foiagate/internal/platform/httpserver"
	"foiagate/internal/platform/logger"
	"foiagate/internal/platform/metrics"
	httptransport "foiagate/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Classification logic lives in internal/gate.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Init(logger.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	log := logger.New("server")

	m := metrics.New()
	svc := gate.NewService(
		gate.WithLogger(logger.New("gate")),
		gate.WithMetrics(gateMetrics.New(m.Registry)),
		gate.WithDefaultMode(cfg.ExecutionMode),
	)

	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(svc, m))

	log.Info("starting foiagate",
		"addr", cfg.Addr,
		"execution_mode", cfg.ExecutionMode,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
