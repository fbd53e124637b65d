// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/rallypoint/internal/recommend/features"
	"github.com/tomtom215/rallypoint/internal/recommend/storage"
)

// LoadSnapshot reads bundle version (0 for the latest) from store and builds
// a serving snapshot over roster. A missing assignments file is not an error:
// every roster profile is left unassigned and recommendations come back empty.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func LoadSnapshot(ctx context.Context, store *storage.Store, version int, roster []features.Profile, logger zerolog.Logger) (*Snapshot, error) {
	bundle, meta, err := store.Load(ctx, version)
	if err != nil {
		return nil, err
	}

	assignments, err := store.LoadAssignments(ctx, meta.Version)
	switch {
	case errors.Is(err, storage.ErrAssignmentsNotFound):
		logger.Warn().
			Int("version", meta.Version).
			Int("roster", len(roster)).
			Msg("assignments missing, every roster profile is unassigned")
		assignments = nil
	case err != nil:
		return nil, fmt.Errorf("load assignments v%d: %w", meta.Version, err)
	}

	return NewSnapshot(bundle, *meta, roster, assignments)
}
