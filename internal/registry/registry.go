// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

// Package registry stores players registered through the API.
//
// The registry is independent of the training dataset and the served bundle:
// registering a player does not change cluster assignments until the next
// training run includes them. Every backend returns copies, so callers can
// never mutate stored state through a returned profile.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tomtom215/rallypoint/internal/config"
	"github.com/tomtom215/rallypoint/internal/recommend/features"
)

// Registry errors.
var (
	ErrNotFound      = errors.New("player not found")
	ErrAlreadyExists = errors.New("player already exists")
)

// Repository is the player registry contract.
type Repository interface {
	// List returns an independent copy of all players in registration order,
	// taken from a consistent read snapshot.
	List(ctx context.Context) ([]features.Profile, error)

	// Get returns a copy of one player or ErrNotFound.
	Get(ctx context.Context, id string) (*features.Profile, error)

	// Add stores a player. An empty ID is replaced with a new UUID.
	// Returns ErrAlreadyExists when the ID is taken.
	Add(ctx context.Context, player features.Profile) (*features.Profile, error)

	// Remove deletes a player or returns ErrNotFound.
	Remove(ctx context.Context, id string) error

	// Count returns the number of registered players.
	Count(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}

// Open creates the repository selected by cfg.Store.
func Open(cfg *config.RegistryConfig) (Repository, error) {
	switch cfg.Store {
	case config.RegistryStoreMemory, "":
		return NewMemoryRepository(), nil
	case config.RegistryStoreBadger:
		return OpenBadgerRepository(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown registry store %q", cfg.Store)
	}
}

// prepare assigns an ID when missing and returns a detached copy for storage.
func prepare(player *features.Profile) features.Profile {
	stored := player.Clone()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	return stored
}
