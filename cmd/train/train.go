// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/tomtom215/rallypoint/internal/config"
	"github.com/tomtom215/rallypoint/internal/dataset"
	"github.com/tomtom215/rallypoint/internal/metrics"
	"github.com/tomtom215/rallypoint/internal/recommend"
	"github.com/tomtom215/rallypoint/internal/recommend/features"
	"github.com/tomtom215/rallypoint/internal/recommend/storage"
)

// trainOptions holds the command-line switches.
type trainOptions struct {
	// DryRun trains and prints without writing a bundle.
	DryRun bool

	// Quiet suppresses the assignment table.
	Quiet bool
}

// trainReport summarizes one run.
type trainReport struct {
	Metadata    storage.BundleMetadata
	Assignments []storage.Assignment
	Pruned      int
}

// runTraining fits a bundle on the configured dataset, saves it as the next
// version and prunes old versions. The id -> cluster table goes to out.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func runTraining(ctx context.Context, cfg *config.Config, opts trainOptions, out io.Writer, logger zerolog.Logger) (*trainReport, error) {
	source, err := dataset.NewSource(&cfg.Dataset)
	if err != nil {
		return nil, err
	}
	profiles, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", source.Name(), err)
	}
	logger.Info().Str("source", source.Name()).Int("profiles", len(profiles)).Msg("dataset loaded")

	trainer, err := recommend.NewTrainer(cfg.RecommendConfig(), logger, metrics.PipelineObserver{})
	if err != nil {
		return nil, err
	}
	result, err := trainer.Train(ctx, profiles)
	if err != nil {
		return nil, err
	}

	report := &trainReport{Metadata: result.Metadata, Assignments: result.Assignments}

	if !opts.DryRun {
		store, err := storage.NewStore(cfg.Artifacts.Dir)
		if err != nil {
			return nil, fmt.Errorf("open artifact store: %w", err)
		}
		meta := result.Metadata
		meta.Version = store.NextVersion()
		saved, err := store.Save(ctx, result.Bundle, result.Assignments, meta)
		if err != nil {
			return nil, fmt.Errorf("save bundle: %w", err)
		}
		report.Metadata = *saved
		logger.Info().Int("version", saved.Version).Str("dir", store.Dir()).Msg("bundle saved")

		if cfg.Artifacts.KeepVersions > 0 {
			pruned, err := store.Prune(ctx, cfg.Artifacts.KeepVersions)
			if err != nil {
				logger.Warn().Err(err).Msg("pruning old bundles failed")
			}
			report.Pruned = pruned
		}
	}

	if !opts.Quiet {
		if err := printAssignments(out, profiles, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// printAssignments writes the id -> cluster table in dataset order followed
// by per-cluster sizes.
func printAssignments(out io.Writer, profiles []features.Profile, report *trainReport) error {
	levels := make(map[string]string, len(profiles))
	for i := range profiles {
		levels[profiles[i].ID] = profiles[i].Level
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLEVEL\tCLUSTER")
	sizes := make(map[int]int)
	for _, a := range report.Assignments {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", a.ID, levels[a.ID], a.Cluster)
		sizes[a.Cluster]++
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	clusters := make([]int, 0, len(sizes))
	for c := range sizes {
		clusters = append(clusters, c)
	}
	sort.Ints(clusters)

	m := report.Metadata
	fmt.Fprintf(out, "\nversion %d: %d profiles, k=%d, width=%d, inertia=%.4f, iterations=%d\n",
		m.Version, m.ProfileCount, m.Clusters, m.Width, m.Inertia, m.Iterations)
	for _, c := range clusters {
		fmt.Fprintf(out, "  cluster %d: %d profiles\n", c, sizes[c])
	}
	if report.Pruned > 0 {
		fmt.Fprintf(out, "pruned %d old bundle(s)\n", report.Pruned)
	}
	return nil
}
