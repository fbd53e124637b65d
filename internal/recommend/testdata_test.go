// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package recommend

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/rallypoint/internal/recommend/features"
)

// testProfiles returns a small roster with two obvious groups.
func testProfiles() []features.Profile {
	var profiles []features.Profile
	for i := 0; i < 6; i++ {
		profiles = append(profiles, features.Profile{
			ID:                  fmt.Sprintf("casual-%d", i),
			Level:               features.LevelBeginner,
			Rank:                float64(5 + i),
			MaxBudgetPerSession: 20,
			TravelDistance:      5,
			DesiredServices:     []string{"hitting partner"},
			Goals:               []string{"fun"},
			Languages:           []string{"english"},
		})
	}
	for i := 0; i < 6; i++ {
		profiles = append(profiles, features.Profile{
			ID:                  fmt.Sprintf("pro-%d", i),
			Level:               features.LevelProfessional,
			Rank:                float64(90 + i),
			MaxBudgetPerSession: 250,
			TravelDistance:      100,
			DesiredServices:     []string{"coaching", "match play"},
			Goals:               []string{"compete"},
			Languages:           []string{"spanish", "english"},
		})
	}
	return profiles
}

// trainedPipeline trains on testProfiles and returns a ready pipeline.
func trainedPipeline(t *testing.T, cfg *Config) (*Pipeline, *TrainingResult) {
	t.Helper()

	if cfg == nil {
		cfg = DefaultConfig()
	}
	trainer, err := NewTrainer(cfg, zerolog.Nop(), nil)
	if err != nil {
		t.Fatalf("NewTrainer() error = %v", err)
	}
	profiles := testProfiles()
	result, err := trainer.Train(context.Background(), profiles)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	p, err := NewPipeline(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	snap, err := NewSnapshot(result.Bundle, result.Metadata, profiles, result.Assignments)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	if _, err := p.Swap(snap); err != nil {
		t.Fatalf("Swap() error = %v", err)
	}
	return p, result
}
