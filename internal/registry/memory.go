// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package registry

import (
	"context"
	"sync"

	"github.com/tomtom215/rallypoint/internal/recommend/features"
)

// MemoryRepository keeps players in process memory. Contents are lost on restart.
type MemoryRepository struct {
	mu      sync.RWMutex
	players []features.Profile
	index   map[string]int
}

// NewMemoryRepository creates an empty in-memory registry.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{index: make(map[string]int)}
}

// List implements Repository.
func (r *MemoryRepository) List(ctx context.Context) ([]features.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]features.Profile, len(r.players))
	for i := range r.players {
		out[i] = r.players[i].Clone()
	}
	return out, nil
}

// Get implements Repository.
func (r *MemoryRepository) Get(ctx context.Context, id string) (*features.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	p := r.players[i].Clone()
	return &p, nil
}

// Add implements Repository.
func (r *MemoryRepository) Add(ctx context.Context, player features.Profile) (*features.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored := prepare(&player)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[stored.ID]; exists {
		return nil, ErrAlreadyExists
	}
	r.index[stored.ID] = len(r.players)
	r.players = append(r.players, stored)

	out := stored.Clone()
	return &out, nil
}

// Remove implements Repository.
func (r *MemoryRepository) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return ErrNotFound
	}

	r.players = append(r.players[:i], r.players[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.players); j++ {
		r.index[r.players[j].ID] = j
	}
	return nil
}

// Count implements Repository.
func (r *MemoryRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players), nil
}

// Close implements Repository.
func (r *MemoryRepository) Close() error {
	return nil
}
