// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

// @title Rallypoint API
// @version 1.0
// @description Player segmentation and matchmaking. Profiles are assigned to one of
// @description k behavioral clusters by a KMeans model trained offline, and each
// @description prediction returns roster players from the same cluster.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address, shared by
// @description the legacy root routes and their /api/v1 equivalents.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "status": "error",
// @description   "error": {
// @description     "code": "VALIDATION_ERROR",
// @description     "message": "level is required",
// @description     "details": {"field": "level"}
// @description   },
// @description   "metadata": {"timestamp": "2026-01-18T12:34:56Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/rallypoint/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Clustering
// @tag.description Cluster assignment and same-cluster recommendations
//
// @tag.name Players
// @tag.description Player registry
//
// @tag.name Core
// @tag.description Health checks and model status
package main
