// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/rallypoint/internal/config"
	"github.com/tomtom215/rallypoint/internal/recommend/features"
)

// ErrEmptyDataset is returned when a source yields no profiles.
var ErrEmptyDataset = errors.New("dataset is empty")

// Source loads the player roster.
type Source interface {
	// Load returns all profiles in dataset row order.
	Load(ctx context.Context) ([]features.Profile, error)

	// Name identifies the source in logs.
	Name() string
}

// NewSource builds the source selected by cfg.Source.
func NewSource(cfg *config.DatasetConfig) (Source, error) {
	switch cfg.Source {
	case config.DatasetSourceJSON, "":
		return &JSONFileSource{Path: cfg.Path}, nil
	case config.DatasetSourceDuckDB:
		return &DuckDBSource{DBPath: cfg.DuckDBPath, Path: cfg.Path, Query: cfg.Query}, nil
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}
}

// JSONFileSource reads a JSON array of profiles from disk.
type JSONFileSource struct {
	Path string
}

// Name implements Source.
func (s *JSONFileSource) Name() string {
	return "json:" + s.Path
}

// Load implements Source.
func (s *JSONFileSource) Load(ctx context.Context) ([]features.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", s.Path, err)
	}

	var profiles []features.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", s.Path, err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%s: %w", s.Path, ErrEmptyDataset)
	}
	normalize(profiles)
	return profiles, nil
}

// normalize replaces nil category lists with empty ones.
func normalize(profiles []features.Profile) {
	for i := range profiles {
		p := &profiles[i]
		if p.DesiredServices == nil {
			p.DesiredServices = []string{}
		}
		if p.Goals == nil {
			p.Goals = []string{}
		}
		if p.Languages == nil {
			p.Languages = []string{}
		}
	}
}
