// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package recommend

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/rallypoint/internal/logging"
	"github.com/tomtom215/rallypoint/internal/recommend/features"
	"github.com/tomtom215/rallypoint/internal/recommend/storage"
)

// Snapshot is an immutable serving state.
type Snapshot struct {
	Bundle   *storage.Bundle
	Metadata storage.BundleMetadata
	Index    *RecommendationIndex
	LoadedAt time.Time
}

// NewSnapshot validates bundle and roster and builds the recommendation index.
//
//nolint:gocritic // meta passed by value is copied into the snapshot
func NewSnapshot(bundle *storage.Bundle, meta storage.BundleMetadata, roster []features.Profile, assignments []storage.Assignment) (*Snapshot, error) {
	if bundle == nil {
		return nil, fmt.Errorf("%w: nil bundle", storage.ErrInvalidBundle)
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateRoster(roster); err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	return &Snapshot{
		Bundle:   bundle,
		Metadata: meta,
		Index:    NewRecommendationIndex(roster, assignments),
		LoadedAt: time.Now(),
	}, nil
}

// Pipeline serves predictions from the current snapshot.
// It is safe for concurrent use.
type Pipeline struct {
	config   *Config
	logger   zerolog.Logger
	observer Observer

	snapshot atomic.Pointer[Snapshot]

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver sets the metrics observer.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		if o != nil {
			p.observer = o
		}
	}
}

// NewPipeline creates a pipeline with no snapshot loaded.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPipeline(cfg *Config, logger zerolog.Logger, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	p := &Pipeline{
		config:   cfg,
		logger:   logger.With().Str("component", "pipeline").Logger(),
		observer: noopObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Swap publishes snap as the serving state and returns the previous one.
func (p *Pipeline) Swap(snap *Snapshot) (*Snapshot, error) {
	if snap == nil || snap.Bundle == nil || snap.Index == nil {
		return nil, fmt.Errorf("%w: incomplete snapshot", storage.ErrInvalidBundle)
	}
	if err := snap.Bundle.Validate(); err != nil {
		return nil, err
	}

	prev := p.snapshot.Swap(snap)
	p.observer.ObserveSnapshot(&snap.Metadata, snap.Index.Len())

	event := p.logger.Info().
		Int("version", snap.Metadata.Version).
		Int("clusters", snap.Bundle.Model.K()).
		Int("width", snap.Bundle.Width()).
		Int("roster", snap.Index.Len())
	if prev != nil {
		event = event.Int("previous_version", prev.Metadata.Version)
	}
	event.Msg("segmentation bundle published")

	return prev, nil
}

// Snapshot returns the current serving state, or nil.
func (p *Pipeline) Snapshot() *Snapshot {
	return p.snapshot.Load()
}

// Ready reports whether a snapshot is loaded.
func (p *Pipeline) Ready() bool {
	return p.snapshot.Load() != nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() *Config {
	return p.config
}

// Status returns the serving state.
func (p *Pipeline) Status() Status {
	st := Status{
		RequestCount: p.requestCount.Load(),
		ErrorCount:   p.errorCount.Load(),
	}
	snap := p.snapshot.Load()
	if snap == nil {
		return st
	}
	meta := snap.Metadata
	st.Ready = true
	st.LoadedAt = snap.LoadedAt
	st.Bundle = &meta
	st.RosterSize = snap.Index.Len()
	st.Unassigned = snap.Index.Unassigned()
	return st
}

// Predict classifies profile and returns up to limit same-cluster players.
// A limit of 0 uses the configured default; larger limits are capped.
func (p *Pipeline) Predict(ctx context.Context, profile *features.Profile, limit int) (*Prediction, error) {
	p.requestCount.Add(1)

	snap := p.snapshot.Load()
	if snap == nil {
		p.errorCount.Add(1)
		return nil, ErrNotReady
	}
	if err := ValidateProfile(profile, -1); err != nil {
		p.errorCount.Add(1)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		p.errorCount.Add(1)
		return nil, err
	}

	cluster, err := p.classify(ctx, snap, profile)
	if err != nil {
		p.errorCount.Add(1)
		return nil, err
	}

	return &Prediction{
		Cluster:            cluster,
		RecommendedPlayers: snap.Index.Recommend(cluster, p.resolveLimit(limit)),
	}, nil
}

// PredictBatch classifies every profile against one snapshot, in input order.
// Every record must carry an id.
func (p *Pipeline) PredictBatch(ctx context.Context, profiles []features.Profile) ([]ClusterResult, error) {
	p.requestCount.Add(1)

	snap := p.snapshot.Load()
	if snap == nil {
		p.errorCount.Add(1)
		return nil, ErrNotReady
	}
	if len(profiles) > p.config.Limits.MaxBatchSize {
		p.errorCount.Add(1)
		return nil, &ValidationError{
			Index:   -1,
			Field:   "records",
			Message: fmt.Sprintf("batch of %d exceeds maximum of %d", len(profiles), p.config.Limits.MaxBatchSize),
		}
	}
	for i := range profiles {
		if profiles[i].ID == "" {
			p.errorCount.Add(1)
			return nil, &ValidationError{Index: i, Field: "id", Message: "is required"}
		}
		if err := ValidateProfile(&profiles[i], i); err != nil {
			p.errorCount.Add(1)
			return nil, err
		}
	}

	results := make([]ClusterResult, len(profiles))
	for i := range profiles {
		if err := ctx.Err(); err != nil {
			p.errorCount.Add(1)
			return nil, err
		}
		cluster, err := p.classify(ctx, snap, &profiles[i])
		if err != nil {
			p.errorCount.Add(1)
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		results[i] = ClusterResult{ID: profiles[i].ID, Cluster: cluster}
	}
	return results, nil
}

// classify runs encode -> scale -> assign against snap.
func (p *Pipeline) classify(ctx context.Context, snap *Snapshot, profile *features.Profile) (int, error) {
	start := time.Now()
	bundle := snap.Bundle

	p.observeUnknown(ctx, &bundle.Vocabulary, profile)

	vec := features.Assemble(profile, &bundle.Vocabulary)
	scaled, err := bundle.Scaler.Transform(vec)
	if err != nil {
		return 0, fmt.Errorf("scale features: %w", err)
	}
	if len(scaled) != bundle.Model.Dim() {
		return 0, fmt.Errorf("assign cluster: %w: vector width %d, centroid width %d",
			storage.ErrDimensionMismatch, len(scaled), bundle.Model.Dim())
	}
	cluster := bundle.Model.Assign(scaled)

	p.observer.ObservePrediction(cluster, time.Since(start))
	return cluster, nil
}

// observeUnknown reports category values the frozen vocabulary drops.
func (p *Pipeline) observeUnknown(ctx context.Context, vocab *features.Vocabulary, profile *features.Profile) {
	unknown := vocab.Unknown(profile)
	if len(unknown) == 0 {
		return
	}
	for field, values := range unknown {
		p.observer.ObserveUnknownValues(field, len(values))
	}
	if ev := p.logger.Debug(); ev.Enabled() {
		dict := zerolog.Dict()
		for field, values := range unknown {
			dict = dict.Strs(field, values)
		}
		if id := logging.RequestIDFromContext(ctx); id != "" {
			ev = ev.Str("request_id", id)
		}
		ev.Dict("unknown_values", dict).Msg("dropped category values outside vocabulary")
	}
}

func (p *Pipeline) resolveLimit(limit int) int {
	if limit <= 0 {
		return p.config.Limits.DefaultRecommendations
	}
	if limit > p.config.Limits.MaxRecommendations {
		return p.config.Limits.MaxRecommendations
	}
	return limit
}

// ValidateProfile rejects profiles that cannot be encoded.
// index is the batch position, or -1.
func ValidateProfile(profile *features.Profile, index int) error {
	if profile == nil {
		return &ValidationError{Index: index, Field: "profile", Message: "is required"}
	}
	if profile.Level == "" {
		return &ValidationError{Index: index, Field: "level", Message: "is required"}
	}

	numeric := []struct {
		field string
		value float64
	}{
		{"rank", profile.Rank},
		{"maxBudgetPerSession", profile.MaxBudgetPerSession},
		{"travelDistance", profile.TravelDistance},
	}
	for _, n := range numeric {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return &ValidationError{Index: index, Field: n.field, Message: "must be a finite number"}
		}
		if n.value < 0 {
			return &ValidationError{Index: index, Field: n.field, Message: "must be non-negative"}
		}
	}
	return nil
}
