// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package api

import (
	"time"

	"github.com/tomtom215/rallypoint/internal/recommend"
	"github.com/tomtom215/rallypoint/internal/registry"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_recommend.go: cluster-player and cluster-all
//   - handlers_players.go: player registry CRUD
//   - handlers_health.go: probes and model status
type Handler struct {
	pipeline  *recommend.Pipeline
	players   registry.Repository
	version   string
	startTime time.Time
}

// NewHandler creates the API handler. Both transport surfaces (root routes
// and /api/v1) share the same pipeline and registry.
func NewHandler(pipeline *recommend.Pipeline, players registry.Repository, version string) *Handler {
	return &Handler{
		pipeline:  pipeline,
		players:   players,
		version:   version,
		startTime: time.Now(),
	}
}
