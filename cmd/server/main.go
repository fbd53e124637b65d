// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/rallypoint/docs" // swagger spec served at /swagger/
	"github.com/tomtom215/rallypoint/internal/api"
	"github.com/tomtom215/rallypoint/internal/config"
	"github.com/tomtom215/rallypoint/internal/logging"
	"github.com/tomtom215/rallypoint/internal/metrics"
	"github.com/tomtom215/rallypoint/internal/registry"
	"github.com/tomtom215/rallypoint/internal/supervisor"
	"github.com/tomtom215/rallypoint/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	metrics.SetAppInfo(version)

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("artifacts_dir", cfg.Artifacts.Dir).
		Str("dataset_source", cfg.Dataset.Source).
		Str("registry_store", cfg.Registry.Store).
		Msg("Starting Rallypoint")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serving, err := initServing(ctx, cfg, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize segmentation pipeline")
	}

	players, err := registry.Open(&cfg.Registry)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open player registry")
	}
	defer func() {
		if err := players.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing player registry")
		}
	}()
	if n, err := players.Count(ctx); err == nil {
		metrics.SetRegistrySize(n)
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if watcher := serving.bundleWatcher(&cfg.Artifacts, logging.WithComponent("artifacts")); watcher != nil {
		tree.AddArtifactService(watcher)
	}

	handler := api.NewHandler(serving.Pipeline, players, version)
	chiMw := api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security))
	router := api.NewRouter(handler, chiMw)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", addr).Bool("ready", serving.Pipeline.Ready()).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport() //nolint:errcheck // the report is best-effort during shutdown
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Rallypoint stopped gracefully")
}
