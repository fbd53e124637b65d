// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/rallypoint/internal/config"
	"github.com/tomtom215/rallypoint/internal/recommend/features"
	"github.com/tomtom215/rallypoint/internal/recommend/storage"
)

func writeDataset(t *testing.T, dir string) string {
	t.Helper()

	var profiles []features.Profile
	for i := 0; i < 10; i++ {
		p := features.Profile{
			ID:                  fmt.Sprintf("player-%02d", i),
			Level:               features.LevelBeginner,
			Rank:                float64(5 + i),
			MaxBudgetPerSession: 25,
			TravelDistance:      5,
			DesiredServices:     []string{"hitting partner"},
			Goals:               []string{"fun"},
			Languages:           []string{"english"},
		}
		if i >= 5 {
			p.Level = features.LevelProfessional
			p.Rank = float64(90 + i)
			p.MaxBudgetPerSession = 300
			p.DesiredServices = []string{"coaching", "match play"}
			p.Goals = []string{"compete"}
			p.Languages = []string{"spanish"}
		}
		profiles = append(profiles, p)
	}

	data, err := json.Marshal(profiles)
	if err != nil {
		t.Fatalf("marshal dataset: %v", err)
	}
	path := filepath.Join(dir, "players.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	t.Setenv(config.ConfigPathEnvVar, "")
	t.Setenv("DATASET_PATH", writeDataset(t, dir))
	t.Setenv("ARTIFACTS_DIR", filepath.Join(dir, "artifacts"))
	t.Setenv("ARTIFACTS_KEEP_VERSIONS", "2")

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	return cfg
}

func TestRunTraining(t *testing.T) {
	cfg := loadTestConfig(t)

	var out bytes.Buffer
	report, err := runTraining(context.Background(), cfg, trainOptions{}, &out, zerolog.Nop())
	if err != nil {
		t.Fatalf("runTraining() error = %v", err)
	}
	if report.Metadata.Version != 1 || report.Metadata.Clusters != 4 || report.Metadata.ProfileCount != 10 {
		t.Errorf("metadata = %+v", report.Metadata)
	}
	if len(report.Assignments) != 10 || report.Assignments[0].ID != "player-00" {
		t.Errorf("assignments not in dataset order: %+v", report.Assignments)
	}

	table := out.String()
	for _, want := range []string{"ID", "CLUSTER", "player-00", "player-09", "version 1: 10 profiles, k=4"} {
		if !strings.Contains(table, want) {
			t.Errorf("output lacks %q:\n%s", want, table)
		}
	}

	store, err := storage.NewStore(cfg.Artifacts.Dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	assignments, err := store.LoadAssignments(context.Background(), 1)
	if err != nil {
		t.Fatalf("LoadAssignments() error = %v", err)
	}
	for i, a := range assignments {
		if a != report.Assignments[i] {
			t.Errorf("persisted assignment %d = %+v, printed %+v", i, a, report.Assignments[i])
		}
	}
}

func TestRunTraining_Prunes(t *testing.T) {
	cfg := loadTestConfig(t)

	var last *trainReport
	for i := 0; i < 3; i++ {
		report, err := runTraining(context.Background(), cfg, trainOptions{Quiet: true}, &bytes.Buffer{}, zerolog.Nop())
		if err != nil {
			t.Fatalf("run %d: runTraining() error = %v", i, err)
		}
		last = report
	}
	if last.Metadata.Version != 3 || last.Pruned != 1 {
		t.Errorf("last run: version = %d, pruned = %d; want 3 and 1", last.Metadata.Version, last.Pruned)
	}

	store, _ := storage.NewStore(cfg.Artifacts.Dir)
	list, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].Version != 3 || list[1].Version != 2 {
		t.Errorf("stored versions = %+v, want 3 and 2", list)
	}
}

func TestRunTraining_DryRunAndQuiet(t *testing.T) {
	cfg := loadTestConfig(t)

	var out bytes.Buffer
	report, err := runTraining(context.Background(), cfg, trainOptions{DryRun: true, Quiet: true}, &out, zerolog.Nop())
	if err != nil {
		t.Fatalf("runTraining() error = %v", err)
	}
	if report.Metadata.Version != 0 {
		t.Errorf("dry run version = %d, want 0", report.Metadata.Version)
	}
	if out.Len() != 0 {
		t.Errorf("quiet run printed %q", out.String())
	}

	store, _ := storage.NewStore(cfg.Artifacts.Dir)
	if _, ok := store.LatestVersion(); ok {
		t.Error("dry run wrote a bundle")
	}
}

func TestRunTraining_NotEnoughProfiles(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Training.Clusters = 20

	if _, err := runTraining(context.Background(), cfg, trainOptions{Quiet: true}, &bytes.Buffer{}, zerolog.Nop()); err == nil {
		t.Error("runTraining() succeeded with fewer profiles than clusters")
	}
}
