// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/rallypoint/internal/recommend/algorithms"
)

// Config contains all configuration for training and serving.
type Config struct {
	// Training contains clustering parameters.
	Training TrainingConfig `json:"training"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`
}

// TrainingConfig contains clustering parameters.
type TrainingConfig struct {
	// Clusters is the number of segments.
	// Default: 4.
	Clusters int `json:"clusters"`

	// Seed makes centroid initialization reproducible.
	// Default: 42.
	Seed int64 `json:"seed"`

	// MaxIterations caps Lloyd iterations.
	// Default: 300.
	MaxIterations int `json:"max_iterations"`

	// Init is "random" or "kmeans++".
	// Default: random.
	Init string `json:"init"`

	// MinProfiles is the minimum dataset size; values below Clusters are raised to Clusters.
	// Default: 4.
	MinProfiles int `json:"min_profiles"`

	// Timeout is the maximum time allowed for a training run.
	// Default: 5m.
	Timeout time.Duration `json:"timeout"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultRecommendations is the number of recommended players when the caller gives none.
	// Default: 5.
	DefaultRecommendations int `json:"default_recommendations"`

	// MaxRecommendations caps caller-provided limits.
	// Default: 50.
	MaxRecommendations int `json:"max_recommendations"`

	// MaxBatchSize is the maximum number of profiles in one batch request.
	// Default: 1000.
	MaxBatchSize int `json:"max_batch_size"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	km := algorithms.DefaultKMeansConfig()
	return &Config{
		Training: TrainingConfig{
			Clusters:      km.K,
			Seed:          km.Seed,
			MaxIterations: km.MaxIterations,
			Init:          string(km.Init),
			MinProfiles:   km.K,
			Timeout:       5 * time.Minute,
		},
		Limits: LimitsConfig{
			DefaultRecommendations: 5,
			MaxRecommendations:     50,
			MaxBatchSize:           1000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Training.Clusters < 1 {
		return fmt.Errorf("training.clusters must be positive, got %d", c.Training.Clusters)
	}
	if c.Training.MaxIterations < 1 {
		return fmt.Errorf("training.max_iterations must be positive, got %d", c.Training.MaxIterations)
	}
	switch algorithms.InitMethod(c.Training.Init) {
	case algorithms.InitRandom, algorithms.InitKMeansPlusPlus, "":
	default:
		return fmt.Errorf("training.init must be random or kmeans++, got %q", c.Training.Init)
	}
	if c.Training.MinProfiles < 0 {
		return fmt.Errorf("training.min_profiles must be non-negative, got %d", c.Training.MinProfiles)
	}
	if c.Training.Timeout <= 0 {
		return fmt.Errorf("training.timeout must be positive, got %v", c.Training.Timeout)
	}

	if c.Limits.DefaultRecommendations < 1 {
		return fmt.Errorf("limits.default_recommendations must be positive, got %d", c.Limits.DefaultRecommendations)
	}
	if c.Limits.MaxRecommendations < c.Limits.DefaultRecommendations {
		return fmt.Errorf("limits.max_recommendations must be >= limits.default_recommendations, got %d < %d",
			c.Limits.MaxRecommendations, c.Limits.DefaultRecommendations)
	}
	if c.Limits.MaxBatchSize < 1 {
		return fmt.Errorf("limits.max_batch_size must be positive, got %d", c.Limits.MaxBatchSize)
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// KMeans returns the clustering configuration for algorithms.FitKMeans.
func (c *Config) KMeans() algorithms.KMeansConfig {
	init := algorithms.InitMethod(c.Training.Init)
	if init == "" {
		init = algorithms.InitRandom
	}
	return algorithms.KMeansConfig{
		K:             c.Training.Clusters,
		Seed:          c.Training.Seed,
		MaxIterations: c.Training.MaxIterations,
		Init:          init,
	}
}
