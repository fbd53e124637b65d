// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/rallypoint/internal/recommend/algorithms"
	"github.com/tomtom215/rallypoint/internal/recommend/features"
	"github.com/tomtom215/rallypoint/internal/recommend/storage"
)

// Trainer fits a segmentation bundle from a profile dataset.
// Only one training run may be active at a time.
type Trainer struct {
	config   *Config
	logger   zerolog.Logger
	observer Observer
	trainMu  sync.Mutex
}

// NewTrainer creates a trainer. A nil observer disables metrics.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainer(cfg *Config, logger zerolog.Logger, observer Observer) (*Trainer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return &Trainer{
		config:   cfg,
		logger:   logger.With().Str("component", "trainer").Logger(),
		observer: observer,
	}, nil
}

// Train fits vocabulary, scaler and centroids over profiles and assigns every
// profile to a cluster. The returned metadata has no version; the caller
// chooses one when saving.
func (t *Trainer) Train(ctx context.Context, profiles []features.Profile) (*TrainingResult, error) {
	if !t.trainMu.TryLock() {
		return nil, ErrTrainingInProgress
	}
	defer t.trainMu.Unlock()

	minProfiles := t.config.Training.MinProfiles
	if minProfiles < t.config.Training.Clusters {
		minProfiles = t.config.Training.Clusters
	}
	if len(profiles) < minProfiles {
		return nil, fmt.Errorf("%w: %d profiles < %d", ErrInsufficientData, len(profiles), minProfiles)
	}

	if err := ValidateRoster(profiles); err != nil {
		return nil, err
	}

	trainCtx, cancel := context.WithTimeout(ctx, t.config.Training.Timeout)
	defer cancel()

	start := time.Now()
	t.logger.Info().Int("profiles", len(profiles)).Msg("starting segmentation training")

	vocab := features.FitVocabulary(profiles)
	matrix := features.AssembleAll(profiles, &vocab)

	scaler, err := algorithms.FitScaler(matrix)
	if err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}
	scaled, err := scaler.TransformAll(matrix)
	if err != nil {
		return nil, fmt.Errorf("scale features: %w", err)
	}

	kmCfg := t.config.KMeans()
	km, err := algorithms.FitKMeans(trainCtx, scaled, kmCfg)
	if err != nil {
		return nil, fmt.Errorf("fit k-means: %w", err)
	}

	assignments := make([]storage.Assignment, len(profiles))
	for i := range profiles {
		assignments[i] = storage.Assignment{ID: profiles[i].ID, Cluster: km.Labels[i]}
	}

	bundle := &storage.Bundle{
		Vocabulary: vocab,
		Scaler:     scaler,
		Model:      km.Model,
	}
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("trained bundle: %w", err)
	}

	duration := time.Since(start)
	result := &TrainingResult{
		Bundle:      bundle,
		Assignments: assignments,
		KMeans:      km,
		Metadata: storage.BundleMetadata{
			TrainedAt:          time.Now(),
			ProfileCount:       len(profiles),
			Clusters:           km.Model.K(),
			Width:              vocab.Width(),
			ServicesCount:      len(vocab.Services),
			GoalsCount:         len(vocab.Goals),
			LanguagesCount:     len(vocab.Languages),
			Seed:               kmCfg.Seed,
			Init:               string(kmCfg.Init),
			Inertia:            km.Inertia,
			Iterations:         km.Iterations,
			Converged:          km.Converged,
			ClusterSizes:       km.ClusterSizes,
			TrainingDurationMS: duration.Milliseconds(),
		},
	}

	t.observer.ObserveTraining(result, duration)

	event := t.logger.Info()
	if !km.Converged {
		event = t.logger.Warn()
	}
	event.
		Int("profiles", len(profiles)).
		Int("width", vocab.Width()).
		Int("clusters", km.Model.K()).
		Ints("cluster_sizes", km.ClusterSizes).
		Int("iterations", km.Iterations).
		Bool("converged", km.Converged).
		Float64("inertia", km.Inertia).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("segmentation training complete")

	return result, nil
}

// ValidateRoster rejects blank or repeated profile ids. Assignments and the
// recommendation index are keyed by id.
func ValidateRoster(profiles []features.Profile) error {
	seen := make(map[string]int, len(profiles))
	for i := range profiles {
		id := profiles[i].ID
		if id == "" {
			return &ValidationError{Index: i, Field: "id", Message: "is required"}
		}
		if first, ok := seen[id]; ok {
			return &ValidationError{Index: i, Field: "id", Message: fmt.Sprintf("%q duplicates record %d", id, first)}
		}
		seen[id] = i
	}
	return nil
}
