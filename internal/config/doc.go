// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

/*
Package config provides centralized configuration management for Rallypoint.

Configuration is loaded with Koanf v2 from three layers, lowest priority first:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, ./config.yaml, /etc/rallypoint/config.yaml)
 3. Environment variables, mapped explicitly in envTransformFunc

# Configuration Structure

  - ServerConfig: HTTP listener settings
  - SecurityConfig: CORS origins and rate limiting
  - LoggingConfig: zerolog level, format and caller info
  - ArtifactsConfig: model bundle directory, pinned version, hot reload
  - DatasetConfig: where the player roster is read from (JSON file or DuckDB)
  - TrainingConfig: KMeans hyperparameters and training limits
  - RecommendConfig: recommendation list sizes and batch limits
  - RegistryConfig: storage backend for the player registry

# Environment Variables

Server:
  - HTTP_HOST (default: 0.0.0.0)
  - HTTP_PORT (default: 8080)
  - HTTP_TIMEOUT (default: 30s)
  - ENVIRONMENT: development, staging or production

Artifacts:
  - ARTIFACTS_DIR (default: /data/artifacts)
  - ARTIFACTS_VERSION: pin a bundle version, 0 serves the latest
  - ARTIFACTS_KEEP_VERSIONS (default: 5)
  - ARTIFACTS_WATCH (default: true)
  - ARTIFACTS_POLL_INTERVAL (default: 30s)

Dataset:
  - DATASET_SOURCE: json or duckdb (default: json)
  - DATASET_PATH (default: /data/dataset.json)
  - DATASET_DUCKDB_PATH (default: in-memory)
  - DATASET_QUERY: custom SELECT for the duckdb source

Training:
  - TRAINING_CLUSTERS (default: 4)
  - TRAINING_SEED (default: 42)
  - TRAINING_MAX_ITERATIONS (default: 300)
  - TRAINING_INIT: random or kmeans++ (default: random)
  - TRAINING_MIN_PROFILES (default: 4)
  - TRAINING_TIMEOUT (default: 5m)

Recommendations:
  - RECOMMEND_DEFAULT_LIMIT (default: 5)
  - RECOMMEND_MAX_LIMIT (default: 50)
  - RECOMMEND_MAX_BATCH_SIZE (default: 1000)

Registry:
  - REGISTRY_STORE: memory or badger (default: memory)
  - REGISTRY_PATH (default: /data/registry)

Logging and security:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
  - CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW,
    DISABLE_RATE_LIMIT

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	pipelineCfg := cfg.RecommendConfig()
*/
package config
