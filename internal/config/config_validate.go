// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateArtifacts(); err != nil {
		return err
	}

	if err := c.validateDataset(); err != nil {
		return err
	}

	if err := c.validateRegistry(); err != nil {
		return err
	}

	if err := c.RecommendConfig().Validate(); err != nil {
		return fmt.Errorf("invalid training or recommend configuration: %w", err)
	}

	return nil
}

// validEnvironments defines the allowed deployment environments
var validEnvironments = map[string]bool{
	"":            true,
	"development": true,
	"staging":     true,
	"production":  true,
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateSecurity validates CORS and rate limiting configuration
func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateArtifacts validates the bundle directory settings
func (c *Config) validateArtifacts() error {
	if c.Artifacts.Dir == "" {
		return fmt.Errorf("ARTIFACTS_DIR is required")
	}
	if c.Artifacts.Version < 0 {
		return fmt.Errorf("ARTIFACTS_VERSION must be 0 (latest) or a positive version")
	}
	if c.Artifacts.KeepVersions < 0 {
		return fmt.Errorf("ARTIFACTS_KEEP_VERSIONS must be non-negative")
	}
	if c.Artifacts.Watch && c.Artifacts.PollInterval < time.Second {
		return fmt.Errorf("ARTIFACTS_POLL_INTERVAL must be at least 1s when ARTIFACTS_WATCH=true")
	}
	return nil
}

// Dataset sources
const (
	DatasetSourceJSON   = "json"
	DatasetSourceDuckDB = "duckdb"
)

// validateDataset validates the roster source
func (c *Config) validateDataset() error {
	switch c.Dataset.Source {
	case DatasetSourceJSON:
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_PATH is required when DATASET_SOURCE=json")
		}
	case DatasetSourceDuckDB:
		if c.Dataset.Path == "" && c.Dataset.Query == "" {
			return fmt.Errorf("DATASET_PATH or DATASET_QUERY is required when DATASET_SOURCE=duckdb")
		}
	default:
		return fmt.Errorf("DATASET_SOURCE must be one of: json, duckdb")
	}
	return nil
}

// Registry backends
const (
	RegistryStoreMemory = "memory"
	RegistryStoreBadger = "badger"
)

// validateRegistry validates the player registry backend
func (c *Config) validateRegistry() error {
	switch c.Registry.Store {
	case RegistryStoreMemory:
		return nil
	case RegistryStoreBadger:
		if c.Registry.Path == "" {
			return fmt.Errorf("REGISTRY_PATH is required when REGISTRY_STORE=badger")
		}
		return nil
	default:
		return fmt.Errorf("REGISTRY_STORE must be one of: memory, badger")
	}
}
