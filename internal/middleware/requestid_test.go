// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/rallypoint/internal/logging"
)

func serveWithRequestID(t *testing.T, header string) (contextID, responseID string) {
	t.Helper()

	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contextID = logging.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/cluster-player", nil)
	if header != "" {
		req.Header.Set("X-Request-ID", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return contextID, rec.Header().Get("X-Request-ID")
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	contextID, responseID := serveWithRequestID(t, "")

	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("X-Request-ID %q is not a valid UUID: %v", responseID, err)
	}
	if contextID != responseID {
		t.Errorf("context ID %q does not match response header %q", contextID, responseID)
	}
}

func TestRequestID_PreservesUpstreamID(t *testing.T) {
	contextID, responseID := serveWithRequestID(t, "lb-7f3a")

	if responseID != "lb-7f3a" || contextID != "lb-7f3a" {
		t.Errorf("upstream ID not preserved: header=%q context=%q", responseID, contextID)
	}
}

func TestRequestID_RejectsMalformedUpstreamID(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"too long", strings.Repeat("a", maxRequestIDLength+1)},
		{"control characters", "abc\x01def"},
		{"non-ascii", "id-ü"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, responseID := serveWithRequestID(t, tt.header)
			if responseID == tt.header {
				t.Errorf("malformed ID %q was echoed back", tt.header)
			}
			if _, err := uuid.Parse(responseID); err != nil {
				t.Errorf("replacement ID %q is not a UUID", responseID)
			}
		})
	}
}
