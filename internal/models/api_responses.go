// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

// Package models holds the HTTP request and response shapes of the Rallypoint API.
package models

import (
	"time"

	"github.com/tomtom215/rallypoint/internal/recommend"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope for errors and for the operational endpoints
// (health, model status). The clustering and player endpoints answer with
// their bare payloads on success.
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "level is required",
//	    "details": {"field": "level", "tag": "required", "value": ""}
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "request_id": "..."}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`

	// QueryTimeMS is the handler time in milliseconds.
	QueryTimeMS int64 `json:"query_time_ms,omitempty"`

	// RequestID echoes the X-Request-ID of the request.
	RequestID string `json:"request_id,omitempty"`

	// BundleVersion is the model version that served the request, when one did.
	BundleVersion int `json:"bundle_version,omitempty"`
}

// APIError is a machine-readable error.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeModelUnavailable = "MODEL_UNAVAILABLE"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// CreatedResponse answers a successful player registration.
type CreatedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// MessageResponse answers operations without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of the liveness and readiness probes.
type HealthResponse struct {
	Status        string     `json:"status"`
	Ready         bool       `json:"ready"`
	Version       string     `json:"version"`
	Uptime        float64    `json:"uptime_seconds"`
	BundleVersion int        `json:"bundle_version,omitempty"`
	LoadedAt      *time.Time `json:"loaded_at,omitempty"`
}

// ModelResponse describes the loaded segmentation model.
type ModelResponse struct {
	Version      int       `json:"version"`
	TrainedAt    time.Time `json:"trained_at"`
	LoadedAt     time.Time `json:"loaded_at"`
	Clusters     int       `json:"k"`
	Width        int       `json:"width"`
	ProfileCount int       `json:"profile_count"`
	ClusterSizes []int     `json:"cluster_sizes"`
	Inertia      float64   `json:"inertia"`
	Iterations   int       `json:"iterations"`
	Converged    bool      `json:"converged"`
	Vocabulary   VocabSize `json:"vocabulary"`
	Checksum     string    `json:"checksum"`

	RosterSize   int   `json:"roster_size"`
	Unassigned   int   `json:"unassigned"`
	RequestCount int64 `json:"request_count"`
	ErrorCount   int64 `json:"error_count"`
}

// VocabSize is the number of distinct terms per categorical field.
type VocabSize struct {
	Services  int `json:"services"`
	Goals     int `json:"goals"`
	Languages int `json:"languages"`
}

// NewModelResponse builds the model description from a serving status.
// It returns nil when no bundle is loaded.
func NewModelResponse(st recommend.Status) *ModelResponse {
	if st.Bundle == nil {
		return nil
	}
	meta := st.Bundle

	sizes := make([]int, len(meta.ClusterSizes))
	copy(sizes, meta.ClusterSizes)

	return &ModelResponse{
		Version:      meta.Version,
		TrainedAt:    meta.TrainedAt,
		LoadedAt:     st.LoadedAt,
		Clusters:     meta.Clusters,
		Width:        meta.Width,
		ProfileCount: meta.ProfileCount,
		ClusterSizes: sizes,
		Inertia:      meta.Inertia,
		Iterations:   meta.Iterations,
		Converged:    meta.Converged,
		Vocabulary: VocabSize{
			Services:  meta.ServicesCount,
			Goals:     meta.GoalsCount,
			Languages: meta.LanguagesCount,
		},
		Checksum:     meta.Checksum,
		RosterSize:   st.RosterSize,
		Unassigned:   st.Unassigned,
		RequestCount: st.RequestCount,
		ErrorCount:   st.ErrorCount,
	}
}
