// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/rallypoint/internal/logging"
	"github.com/tomtom215/rallypoint/internal/models"
	"github.com/tomtom215/rallypoint/internal/recommend"
	"github.com/tomtom215/rallypoint/internal/validation"
)

// maxBodyBytes caps request bodies. Batches of the default maximum size fit comfortably.
const maxBodyBytes = 8 << 20

// sanitizeLogValue escapes control characters so client input cannot forge log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// respondJSON writes data as the complete response body.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondEnvelope wraps data in a success APIResponse.
func respondEnvelope(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status: models.StatusSuccess,
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RequestID:   logging.RequestIDFromContext(r.Context()),
		},
	})
}

// respondError writes an error APIResponse. A non-nil err is logged with the request id.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", code).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: models.StatusError,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// decodeJSON reads a size-limited JSON body into dst. On failure the error
// response has been written and false is returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, models.ErrCodeInvalidJSON,
				fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), nil, nil)
			return false
		}
		respondError(w, r, http.StatusBadRequest, models.ErrCodeInvalidJSON, "Failed to read request body", nil, nil)
		return false
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeInvalidJSON, "Request body is empty", nil, nil)
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeInvalidJSON, "Request body is not valid JSON",
			map[string]interface{}{"reason": sanitizeLogValue(err.Error())}, nil)
		return false
	}
	return true
}

// respondValidation writes a VALIDATION_ERROR response for rejected fields.
func respondValidation(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
}

// respondPipelineError maps prediction errors to status codes.
func respondPipelineError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *recommend.ValidationError
	switch {
	case errors.As(err, &verr):
		details := map[string]interface{}{"field": verr.Field}
		if verr.Index >= 0 {
			details["index"] = verr.Index
		}
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, verr.Error(), details, nil)
	case errors.Is(err, recommend.ErrNotReady):
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeModelUnavailable,
			"Segmentation model is not loaded", nil, nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeInternal, "Request cancelled", nil, err)
	default:
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to classify profile", nil, err)
	}
}

// getIntParam returns the integer query parameter key, or defaultValue
// when it is absent or malformed.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
