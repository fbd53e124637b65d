// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package recommend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/rallypoint/internal/recommend/storage"
)

// savedStore trains on testProfiles and persists the result twice so the
// store holds versions 1 and 2.
func savedStore(t *testing.T) *storage.Store {
	t.Helper()

	_, result := trainedPipeline(t, nil)
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		meta := result.Metadata
		meta.Version = store.NextVersion()
		if _, err := store.Save(context.Background(), result.Bundle, result.Assignments, meta); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	return store
}

func TestLoadSnapshot(t *testing.T) {
	store := savedStore(t)
	roster := testProfiles()

	tests := []struct {
		name        string
		version     int
		wantVersion int
	}{
		{"latest", 0, 2},
		{"pinned", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := LoadSnapshot(context.Background(), store, tt.version, roster, zerolog.Nop())
			if err != nil {
				t.Fatalf("LoadSnapshot() error = %v", err)
			}
			if snap.Metadata.Version != tt.wantVersion {
				t.Errorf("version = %d, want %d", snap.Metadata.Version, tt.wantVersion)
			}
			if snap.Index.Len() != len(roster) || snap.Index.Unassigned() != 0 {
				t.Errorf("index len = %d, unassigned = %d", snap.Index.Len(), snap.Index.Unassigned())
			}
		})
	}
}

func TestLoadSnapshot_MissingAssignments(t *testing.T) {
	store := savedStore(t)
	if err := os.Remove(filepath.Join(store.Dir(), "assignments_v2.json")); err != nil {
		t.Fatalf("remove assignments: %v", err)
	}

	roster := testProfiles()
	snap, err := LoadSnapshot(context.Background(), store, 0, roster, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if snap.Index.Unassigned() != len(roster) {
		t.Errorf("unassigned = %d, want %d", snap.Index.Unassigned(), len(roster))
	}

	p, err := NewPipeline(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	if _, err := p.Swap(snap); err != nil {
		t.Fatalf("Swap() error = %v", err)
	}
	pred, err := p.Predict(context.Background(), &roster[0], 0)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(pred.RecommendedPlayers) != 0 {
		t.Errorf("got %d recommendations without assignments, want 0", len(pred.RecommendedPlayers))
	}
}

func TestLoadSnapshot_NoBundle(t *testing.T) {
	store, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	_, err = LoadSnapshot(context.Background(), store, 0, testProfiles(), zerolog.Nop())
	if !errors.Is(err, storage.ErrNoBundle) {
		t.Errorf("LoadSnapshot() error = %v, want ErrNoBundle", err)
	}
}
