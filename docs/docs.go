// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

// Package docs registers the Rallypoint OpenAPI document with swag.
// Keep it in sync with the @-annotations in internal/api and cmd/server/docs.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/rallypoint/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/clustering/cluster-player": {
            "post": {
                "description": "Assigns the profile to a segment of the loaded model and returns up to limit players of that segment in dataset order.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Clustering"],
                "summary": "Classify a player profile",
                "parameters": [
                    {"description": "Player profile", "name": "profile", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ProfileRequest"}},
                    {"type": "integer", "description": "Maximum recommended players (default 5)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/recommend.Prediction"}},
                    "400": {"description": "Invalid profile", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Model not loaded", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/clustering/cluster-all": {
            "post": {
                "description": "Every record must carry an id. Results keep the input order.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Clustering"],
                "summary": "Classify a batch of profiles",
                "parameters": [
                    {"description": "Profiles with ids", "name": "records", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/models.BatchRecord"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/recommend.ClusterResult"}}},
                    "400": {"description": "Invalid batch", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Model not loaded", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/model": {
            "get": {
                "description": "Version, training metadata, vocabulary sizes and serving counters of the loaded bundle.",
                "produces": ["application/json"],
                "tags": ["Clustering"],
                "summary": "Loaded model status",
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/models.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/models.ModelResponse"}}}]}},
                    "503": {"description": "Model not loaded", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/players": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Players"],
                "summary": "List registered players",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/features.Profile"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Players"],
                "summary": "Register a player",
                "parameters": [
                    {"description": "Player", "name": "player", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.PlayerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.CreatedResponse"}},
                    "400": {"description": "Invalid player", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "409": {"description": "Id already registered", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/players/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Players"],
                "summary": "Get a registered player",
                "parameters": [{"type": "string", "description": "Player id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/features.Profile"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Players"],
                "summary": "Remove a registered player",
                "parameters": [{"type": "string", "description": "Player id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/models.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/models.HealthResponse"}}}]}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "description": "Ready once a segmentation model bundle is loaded.",
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/models.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/models.HealthResponse"}}}]}},
                    "503": {"description": "Service Unavailable", "schema": {"allOf": [{"$ref": "#/definitions/models.APIResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/models.HealthResponse"}}}]}}
                }
            }
        }
    },
    "definitions": {
        "features.Profile": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "level": {"type": "string"},
                "rank": {"type": "number"},
                "maxBudgetPerSession": {"type": "number"},
                "travelDistance": {"type": "number"},
                "desiredServices": {"type": "array", "items": {"type": "string"}},
                "goals": {"type": "array", "items": {"type": "string"}},
                "languages": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.ProfileRequest": {
            "type": "object",
            "required": ["level", "desiredServices", "goals", "languages"],
            "properties": {
                "level": {"type": "string"},
                "rank": {"type": "number", "minimum": 0},
                "maxBudgetPerSession": {"type": "number", "minimum": 0},
                "travelDistance": {"type": "number", "minimum": 0},
                "desiredServices": {"type": "array", "items": {"type": "string"}},
                "goals": {"type": "array", "items": {"type": "string"}},
                "languages": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.BatchRecord": {
            "type": "object",
            "required": ["id", "level", "desiredServices", "goals", "languages"],
            "properties": {
                "id": {"type": "string"},
                "level": {"type": "string"},
                "rank": {"type": "number", "minimum": 0},
                "maxBudgetPerSession": {"type": "number", "minimum": 0},
                "travelDistance": {"type": "number", "minimum": 0},
                "desiredServices": {"type": "array", "items": {"type": "string"}},
                "goals": {"type": "array", "items": {"type": "string"}},
                "languages": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.PlayerRequest": {
            "type": "object",
            "required": ["name", "level"],
            "properties": {
                "id": {"type": "string", "maxLength": 128},
                "name": {"type": "string", "maxLength": 100},
                "level": {"type": "string", "enum": ["beginner", "recreational", "high school player", "college player", "tournament player", "professional"]},
                "rank": {"type": "number", "minimum": 0, "maximum": 100},
                "maxBudgetPerSession": {"type": "number", "minimum": 0},
                "travelDistance": {"type": "number", "minimum": 0},
                "desiredServices": {"type": "array", "maxItems": 64, "items": {"type": "string"}},
                "goals": {"type": "array", "maxItems": 64, "items": {"type": "string"}},
                "languages": {"type": "array", "maxItems": 64, "items": {"type": "string"}}
            }
        },
        "recommend.PlayerSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "level": {"type": "string"},
                "rank": {"type": "number"},
                "maxBudgetPerSession": {"type": "number"}
            }
        },
        "recommend.Prediction": {
            "type": "object",
            "properties": {
                "cluster": {"type": "integer"},
                "recommendedPlayers": {"type": "array", "items": {"$ref": "#/definitions/recommend.PlayerSummary"}}
            }
        },
        "recommend.ClusterResult": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "cluster": {"type": "integer"}
            }
        },
        "models.CreatedResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "models.Metadata": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string"},
                "query_time_ms": {"type": "integer"},
                "request_id": {"type": "string"},
                "bundle_version": {"type": "integer"}
            }
        },
        "models.APIResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "data": {},
                "metadata": {"$ref": "#/definitions/models.Metadata"},
                "error": {"$ref": "#/definitions/models.APIError"}
            }
        },
        "models.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "ready": {"type": "boolean"},
                "version": {"type": "string"},
                "uptime_seconds": {"type": "number"},
                "bundle_version": {"type": "integer"},
                "loaded_at": {"type": "string"}
            }
        },
        "models.VocabSize": {
            "type": "object",
            "properties": {
                "services": {"type": "integer"},
                "goals": {"type": "integer"},
                "languages": {"type": "integer"}
            }
        },
        "models.ModelResponse": {
            "type": "object",
            "properties": {
                "version": {"type": "integer"},
                "trained_at": {"type": "string"},
                "loaded_at": {"type": "string"},
                "k": {"type": "integer"},
                "width": {"type": "integer"},
                "profile_count": {"type": "integer"},
                "cluster_sizes": {"type": "array", "items": {"type": "integer"}},
                "inertia": {"type": "number"},
                "iterations": {"type": "integer"},
                "converged": {"type": "boolean"},
                "vocabulary": {"$ref": "#/definitions/models.VocabSize"},
                "checksum": {"type": "string"},
                "roster_size": {"type": "integer"},
                "unassigned": {"type": "integer"},
                "request_count": {"type": "integer"},
                "error_count": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Rallypoint API",
	Description:      "Player segmentation and matchmaking. The clustering and player routes are also served without the /api/v1 prefix.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
