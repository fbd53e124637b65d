// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

// Package main is the offline training command.
//
// It reads the player dataset, fits the vocabulary, scaler and KMeans model,
// and writes bundle_v{N}.gob.gz plus assignments_v{N}.json into
// ARTIFACTS_DIR. A running server with ARTIFACTS_WATCH=true picks the new
// version up without a restart. Configuration comes from the same koanf
// layers as the server (TRAINING_CLUSTERS, TRAINING_SEED, DATASET_PATH, ...).
//
//	go run ./cmd/train
//	go run ./cmd/train -dry-run
//	go run ./cmd/train -quiet -metrics-file /var/lib/node_exporter/rallypoint_train.prom
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tomtom215/rallypoint/internal/config"
	"github.com/tomtom215/rallypoint/internal/logging"
)

var (
	dryRun      = flag.Bool("dry-run", false, "Train and print assignments without saving a bundle")
	quiet       = flag.Bool("quiet", false, "Do not print the assignment table")
	metricsFile = flag.String("metrics-file", "", "Write training metrics in Prometheus text format to this file")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.WithComponent("train")
	logger.Info().
		Int("clusters", cfg.Training.Clusters).
		Int64("seed", cfg.Training.Seed).
		Str("init", cfg.Training.Init).
		Bool("dry_run", *dryRun).
		Msg("Starting training run")

	report, err := runTraining(ctx, cfg, trainOptions{DryRun: *dryRun, Quiet: *quiet}, os.Stdout, logger)
	if err != nil {
		stop()
		logging.Fatal().Err(err).Msg("Training failed")
	}

	if *metricsFile != "" {
		if err := prometheus.WriteToTextfile(*metricsFile, prometheus.DefaultGatherer); err != nil {
			logger.Warn().Err(err).Str("path", *metricsFile).Msg("Failed to write metrics file")
		}
	}

	logger.Info().
		Int("version", report.Metadata.Version).
		Float64("inertia", report.Metadata.Inertia).
		Int("pruned", report.Pruned).
		Msg("Training run complete")
}
