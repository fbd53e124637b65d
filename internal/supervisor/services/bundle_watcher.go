// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/tomtom215/rallypoint/internal/metrics"
	"github.com/tomtom215/rallypoint/internal/recommend"
	"github.com/tomtom215/rallypoint/internal/recommend/features"
	"github.com/tomtom215/rallypoint/internal/recommend/storage"
)

// BundleWatcherConfig holds configuration for the bundle watcher.
type BundleWatcherConfig struct {
	// PinnedVersion serves exactly this bundle version. 0 follows the newest.
	PinnedVersion int

	// Events enables filesystem notifications on the artifact directory.
	// Polling continues either way.
	Events bool

	// PollInterval is how often the directory is rescanned.
	// Default: 30s
	PollInterval time.Duration

	// Debounce delays the reload after a filesystem event so a burst of
	// writes produces one reload.
	// Default: 250ms
	Debounce time.Duration
}

// BundleWatcher publishes new segmentation bundles to a running pipeline.
// A bundle that fails to load is skipped and the current snapshot keeps serving.
type BundleWatcher struct {
	store    *storage.Store
	pipeline *recommend.Pipeline
	roster   []features.Profile
	config   BundleWatcherConfig
	logger   zerolog.Logger
	name     string
}

// NewBundleWatcher creates a watcher that rebuilds snapshots over roster.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBundleWatcher(store *storage.Store, pipeline *recommend.Pipeline, roster []features.Profile, cfg BundleWatcherConfig, logger zerolog.Logger) *BundleWatcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 30 * time.Second
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 250 * time.Millisecond
	}
	return &BundleWatcher{
		store:    store,
		pipeline: pipeline,
		roster:   roster,
		config:   cfg,
		logger:   logger.With().Str("service", "bundle-watcher").Logger(),
		name:     "bundle-watcher",
	}
}

// Serve implements suture.Service. It checks once on start, then on every
// relevant filesystem event and every poll tick.
func (w *BundleWatcher) Serve(ctx context.Context) error {
	w.logger.Info().
		Str("dir", w.store.Dir()).
		Int("pinned_version", w.config.PinnedVersion).
		Bool("events", w.config.Events).
		Dur("poll_interval", w.config.PollInterval).
		Msg("bundle watcher starting")

	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	if w.config.Events {
		watcher, err := w.newWatcher()
		if err != nil {
			w.logger.Warn().Err(err).Msg("filesystem events unavailable, polling only")
		} else {
			defer func() { _ = watcher.Close() }() //nolint:errcheck // close error on shutdown is not actionable
			events = watcher.Events
			watchErrs = watcher.Errors
		}
	}

	w.checkAndLog(ctx)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("bundle watcher shutting down")
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if isBundleEvent(ev) {
				w.logger.Debug().Str("file", filepath.Base(ev.Name)).Str("op", ev.Op.String()).Msg("bundle file changed")
				pending = time.After(w.config.Debounce)
			}

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			w.logger.Warn().Err(err).Msg("filesystem watcher error")

		case <-pending:
			pending = nil
			w.checkAndLog(ctx)

		case <-ticker.C:
			w.checkAndLog(ctx)
		}
	}
}

func (w *BundleWatcher) newWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(w.store.Dir()); err != nil {
		_ = watcher.Close() //nolint:errcheck // already returning the Add error
		return nil, fmt.Errorf("watch %s: %w", w.store.Dir(), err)
	}
	return watcher, nil
}

// isBundleEvent reports whether ev created or replaced a bundle file.
// Temp files and assignments files are ignored.
func isBundleEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
		return false
	}
	_, ok := storage.ParseBundleFilename(filepath.Base(ev.Name))
	return ok
}

func (w *BundleWatcher) checkAndLog(ctx context.Context) {
	if _, err := w.Check(ctx); err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Warn().Err(err).Msg("bundle reload failed, keeping current snapshot")
	}
}

// Check rescans the store and publishes the target bundle if it differs from
// the one being served. It reports whether a new snapshot was published.
func (w *BundleWatcher) Check(ctx context.Context) (bool, error) {
	if err := w.store.Refresh(); err != nil {
		metrics.RecordBundleReload(metrics.ReloadFailed)
		return false, fmt.Errorf("rescan artifacts: %w", err)
	}

	target, ok := w.target()
	if !ok {
		metrics.RecordBundleReload(metrics.ReloadUnchanged)
		return false, nil
	}

	snap, err := recommend.LoadSnapshot(ctx, w.store, target, w.roster, w.logger)
	if err != nil {
		metrics.RecordBundleReload(metrics.ReloadFailed)
		return false, fmt.Errorf("load bundle v%d: %w", target, err)
	}
	if _, err := w.pipeline.Swap(snap); err != nil {
		metrics.RecordBundleReload(metrics.ReloadFailed)
		return false, fmt.Errorf("publish bundle v%d: %w", target, err)
	}

	metrics.RecordBundleReload(metrics.ReloadSuccess)
	return true, nil
}

// target returns the version to load, or false when nothing should change.
// A pinned version is loaded only while it is not being served. Otherwise
// only a version newer than the served one is loaded, so pruning the served
// file never rolls the server back.
func (w *BundleWatcher) target() (int, bool) {
	served := 0
	if snap := w.pipeline.Snapshot(); snap != nil {
		served = snap.Metadata.Version
	}

	if w.config.PinnedVersion > 0 {
		return w.config.PinnedVersion, served != w.config.PinnedVersion
	}

	latest, ok := w.store.LatestVersion()
	if !ok || latest <= served {
		return 0, false
	}
	return latest, true
}

// String implements fmt.Stringer for suture logging.
func (w *BundleWatcher) String() string {
	return w.name
}
