// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

/*
Package api provides the HTTP layer of Rallypoint.

Routes:

	POST   /cluster-player                     classify one profile, recommend players
	POST   /cluster-all                        classify a batch of profiles
	GET    /players                            list registered players
	POST   /players                            register a player
	DELETE /players/{id}                       remove a player
	POST   /api/v1/clustering/cluster-player   same as /cluster-player
	POST   /api/v1/clustering/cluster-all      same as /cluster-all
	GET    /api/v1/players[/{id}]              list or fetch registered players
	POST   /api/v1/players                     register a player
	DELETE /api/v1/players/{id}                remove a player
	GET    /api/v1/model                       loaded bundle metadata
	GET    /api/v1/health/live                 liveness probe
	GET    /api/v1/health/ready                readiness probe (503 until a bundle is loaded)
	GET    /metrics                            Prometheus metrics
	GET    /swagger/*                          API documentation

Successful clustering and player responses carry the bare payload, for example
{"cluster": 2, "recommendedPlayers": [...]}. Errors always use the
models.APIResponse envelope with a machine-readable code:

	VALIDATION_ERROR     400  malformed profile or batch record
	INVALID_JSON         400  body is not JSON (413 when too large)
	NOT_FOUND            404  unknown player or route
	CONFLICT             409  player id already registered
	RATE_LIMIT_EXCEEDED  429  per-IP limit reached
	MODEL_UNAVAILABLE    503  no bundle loaded
	INTERNAL_ERROR       500  anything else; details are logged, not returned
*/
package api
