// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

/*
Package main is the Rallypoint serving process.

It loads the player roster and the newest segmentation bundle written by
cmd/train, then answers clustering and player registry requests over HTTP.

	RootSupervisor ("rallypoint")
	├── ArtifactsSupervisor ("artifacts-layer")
	│   └── BundleWatcher (ARTIFACTS_WATCH=true)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Startup order:

 1. Configuration: koanf defaults, optional config.yaml, environment
 2. Logging: zerolog, JSON or console
 3. Roster: JSON file or DuckDB query (DATASET_SOURCE)
 4. Bundle: newest version in ARTIFACTS_DIR, or ARTIFACTS_VERSION when pinned
 5. Player registry: memory or BadgerDB (REGISTRY_STORE)
 6. Supervisor tree with the bundle watcher and the HTTP server

A missing bundle is not fatal. The server starts, /api/v1/health/ready
reports not_ready and the clustering endpoints return 503 MODEL_UNAVAILABLE
until the watcher picks up a trained bundle. A bundle whose scaler, model
and vocabulary widths disagree stops startup.

# Example

	export DATASET_PATH=./data/players.json
	export ARTIFACTS_DIR=./artifacts
	go run ./cmd/train
	go run ./cmd/server

	curl -s localhost:8080/cluster-player -d '{
	  "level": "college player", "rank": 60,
	  "maxBudgetPerSession": 80, "travelDistance": 20,
	  "desiredServices": ["match play"], "goals": ["compete"], "languages": ["english"]
	}'

SIGINT and SIGTERM cancel the tree; the HTTP server drains for
SHUTDOWN_TIMEOUT before exiting.
*/
package main
