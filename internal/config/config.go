// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/rallypoint/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Training  TrainingConfig  `koanf:"training"`
	Recommend RecommendConfig `koanf:"recommend"`
	Registry  RegistryConfig  `koanf:"registry"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller adds file:line to each log entry.
	// Default: false
	Caller bool `koanf:"caller"`
}

// ArtifactsConfig controls where model bundles live and how the server picks them up.
type ArtifactsConfig struct {
	// Dir holds bundle_v{N}.gob.gz and assignments_v{N}.json files.
	Dir string `koanf:"dir"`

	// Version pins the served bundle. 0 serves the newest version in Dir.
	Version int `koanf:"version"`

	// KeepVersions is how many bundles the trainer retains after a save. 0 keeps all.
	KeepVersions int `koanf:"keep_versions"`

	// Watch enables hot reload of new bundles.
	Watch bool `koanf:"watch"`

	// PollInterval rescans Dir as a fallback when filesystem events are missed.
	PollInterval time.Duration `koanf:"poll_interval"`
}

// DatasetConfig describes the player roster source.
type DatasetConfig struct {
	// Source is "json" or "duckdb".
	Source string `koanf:"source"`

	// Path is the JSON dataset file. The duckdb source reads it with read_json_auto
	// unless Query is set.
	Path string `koanf:"path"`

	// DuckDBPath is the DuckDB database file. Empty or ":memory:" opens an in-memory database.
	DuckDBPath string `koanf:"duckdb_path"`

	// Query overrides the default duckdb SELECT. It must return the columns
	// id, level, rank, maxBudgetPerSession, travelDistance, desiredServices, goals, languages.
	Query string `koanf:"query"`
}

// TrainingConfig holds clustering hyperparameters.
type TrainingConfig struct {
	Clusters      int           `koanf:"clusters"`
	Seed          int64         `koanf:"seed"`
	MaxIterations int           `koanf:"max_iterations"`
	Init          string        `koanf:"init"` // "random" or "kmeans++"
	MinProfiles   int           `koanf:"min_profiles"`
	Timeout       time.Duration `koanf:"timeout"`
}

// RecommendConfig holds serving limits
type RecommendConfig struct {
	DefaultLimit int `koanf:"default_limit"`
	MaxLimit     int `koanf:"max_limit"`
	MaxBatchSize int `koanf:"max_batch_size"`
}

// RegistryConfig selects the player registry backend.
type RegistryConfig struct {
	Store string `koanf:"store"` // "memory" or "badger"
	Path  string `koanf:"path"`
}

// RecommendConfig converts the training and serving sections into the
// pipeline configuration used by recommend.NewPipeline and recommend.NewTrainer.
func (c *Config) RecommendConfig() *recommend.Config {
	return &recommend.Config{
		Training: recommend.TrainingConfig{
			Clusters:      c.Training.Clusters,
			Seed:          c.Training.Seed,
			MaxIterations: c.Training.MaxIterations,
			Init:          c.Training.Init,
			MinProfiles:   c.Training.MinProfiles,
			Timeout:       c.Training.Timeout,
		},
		Limits: recommend.LimitsConfig{
			DefaultRecommendations: c.Recommend.DefaultLimit,
			MaxRecommendations:     c.Recommend.MaxLimit,
			MaxBatchSize:           c.Recommend.MaxBatchSize,
		},
	}
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
