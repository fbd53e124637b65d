// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/rallypoint/internal/config"
	"github.com/tomtom215/rallypoint/internal/dataset"
	"github.com/tomtom215/rallypoint/internal/metrics"
	"github.com/tomtom215/rallypoint/internal/recommend"
	"github.com/tomtom215/rallypoint/internal/recommend/features"
	"github.com/tomtom215/rallypoint/internal/recommend/storage"
	"github.com/tomtom215/rallypoint/internal/supervisor/services"
)

// ServingComponents holds everything the clustering endpoints and the
// bundle watcher share.
type ServingComponents struct {
	Store    *storage.Store
	Pipeline *recommend.Pipeline
	Roster   []features.Profile
}

// initServing loads the roster and the configured bundle. A missing bundle
// leaves the pipeline not ready; any other load failure, including a
// dimension mismatch, is returned.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initServing(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*ServingComponents, error) {
	source, err := dataset.NewSource(&cfg.Dataset)
	if err != nil {
		return nil, err
	}
	roster, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster from %s: %w", source.Name(), err)
	}
	logger.Info().Str("source", source.Name()).Int("profiles", len(roster)).Msg("roster loaded")

	store, err := storage.NewStore(cfg.Artifacts.Dir)
	if err != nil {
		return nil, fmt.Errorf("open artifact store: %w", err)
	}

	pipeline, err := recommend.NewPipeline(cfg.RecommendConfig(), logger, recommend.WithObserver(metrics.PipelineObserver{}))
	if err != nil {
		return nil, err
	}

	snap, err := recommend.LoadSnapshot(ctx, store, cfg.Artifacts.Version, roster, logger)
	switch {
	case errors.Is(err, storage.ErrNoBundle):
		logger.Warn().
			Str("dir", store.Dir()).
			Int("pinned_version", cfg.Artifacts.Version).
			Msg("no segmentation bundle found, clustering endpoints return 503 until one is trained")
	case err != nil:
		return nil, fmt.Errorf("load segmentation bundle: %w", err)
	default:
		if _, err := pipeline.Swap(snap); err != nil {
			return nil, err
		}
	}

	return &ServingComponents{Store: store, Pipeline: pipeline, Roster: roster}, nil
}

// bundleWatcher returns the hot-reload service, or nil when watching is off.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func (c *ServingComponents) bundleWatcher(cfg *config.ArtifactsConfig, logger zerolog.Logger) *services.BundleWatcher {
	if !cfg.Watch {
		logger.Info().Msg("bundle hot reload disabled (ARTIFACTS_WATCH=false)")
		return nil
	}
	return services.NewBundleWatcher(c.Store, c.Pipeline, c.Roster, services.BundleWatcherConfig{
		PinnedVersion: cfg.Version,
		Events:        true,
		PollInterval:  cfg.PollInterval,
	}, logger)
}
