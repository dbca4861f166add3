package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/readee/gateway/internal/config"
	httpapi "github.com/readee/gateway/internal/http"
	"github.com/readee/gateway/internal/mock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := log.Level(level).With().Str("service", "readee-gateway").Logger()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	layer, err := mock.Bootstrap(cfg, http.DefaultTransport, logger, reg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start mock API layer")
	}
	if !layer.Enabled {
		logger.Info().Str("backend", cfg.BackendBase).Msg("forwarding to real backend")
	}

	client := &http.Client{
		Transport: layer.Registry,
		Timeout:   cfg.RequestTimeout,
	}

	router, err := httpapi.Router(cfg, layer, client, reg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.BackendBase).Msg("invalid backend base URL")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Bool("mock", layer.Enabled).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
