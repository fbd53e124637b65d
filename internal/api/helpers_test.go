// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/rallypoint/internal/models"
	"github.com/tomtom215/rallypoint/internal/recommend"
	"github.com/tomtom215/rallypoint/internal/recommend/features"
	"github.com/tomtom215/rallypoint/internal/registry"
)

// testRoster returns two well separated groups of six players.
func testRoster() []features.Profile {
	var roster []features.Profile
	for i := 0; i < 6; i++ {
		roster = append(roster, features.Profile{
			ID:                  fmt.Sprintf("casual-%d", i),
			Level:               features.LevelBeginner,
			Rank:                float64(5 + i),
			MaxBudgetPerSession: 20,
			TravelDistance:      5,
			DesiredServices:     []string{"hitting partner"},
			Goals:               []string{"fun"},
			Languages:           []string{"english"},
		})
	}
	for i := 0; i < 6; i++ {
		roster = append(roster, features.Profile{
			ID:                  fmt.Sprintf("pro-%d", i),
			Level:               features.LevelProfessional,
			Rank:                float64(90 + i),
			MaxBudgetPerSession: 250,
			TravelDistance:      100,
			DesiredServices:     []string{"coaching", "match play"},
			Goals:               []string{"compete"},
			Languages:           []string{"spanish", "english"},
		})
	}
	return roster
}

type testServer struct {
	handler     http.Handler
	pipeline    *recommend.Pipeline
	players     *registry.MemoryRepository
	assignments map[string]int
}

// newTestServer builds the full router. With ready set, a model trained on
// testRoster is published before the server is returned.
func newTestServer(t *testing.T, ready bool, mw *ChiMiddlewareConfig) *testServer {
	t.Helper()

	cfg := recommend.DefaultConfig()
	pipeline, err := recommend.NewPipeline(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}

	ts := &testServer{
		pipeline:    pipeline,
		players:     registry.NewMemoryRepository(),
		assignments: make(map[string]int),
	}

	if ready {
		trainer, err := recommend.NewTrainer(cfg, zerolog.Nop(), nil)
		if err != nil {
			t.Fatalf("NewTrainer() error = %v", err)
		}
		roster := testRoster()
		result, err := trainer.Train(context.Background(), roster)
		if err != nil {
			t.Fatalf("Train() error = %v", err)
		}
		snap, err := recommend.NewSnapshot(result.Bundle, result.Metadata, roster, result.Assignments)
		if err != nil {
			t.Fatalf("NewSnapshot() error = %v", err)
		}
		if _, err := pipeline.Swap(snap); err != nil {
			t.Fatalf("Swap() error = %v", err)
		}
		for _, a := range result.Assignments {
			ts.assignments[a.ID] = a.Cluster
		}
	}

	if mw == nil {
		mw = DefaultChiMiddlewareConfig()
		mw.RateLimitDisabled = true
	}
	handler := NewHandler(pipeline, ts.players, "test")
	ts.handler = NewRouter(handler, NewChiMiddleware(mw)).SetupChi()
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("Unmarshal(%q) error = %v", rec.Body.String(), err)
	}
}

// decodeError decodes an error envelope and checks status and code.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantCode string) *models.APIError {
	t.Helper()

	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, wantStatus, rec.Body.String())
	}
	var resp models.APIResponse
	decodeBody(t, rec, &resp)
	if resp.Status != models.StatusError {
		t.Errorf("envelope status = %q, want error", resp.Status)
	}
	if resp.Error == nil {
		t.Fatalf("envelope error missing: %s", rec.Body.String())
	}
	if resp.Error.Code != wantCode {
		t.Errorf("error code = %q, want %q", resp.Error.Code, wantCode)
	}
	return resp.Error
}

func proProfile() map[string]interface{} {
	return map[string]interface{}{
		"level":               features.LevelProfessional,
		"rank":                92,
		"maxBudgetPerSession": 240,
		"travelDistance":      90,
		"desiredServices":     []string{"coaching"},
		"goals":               []string{"compete"},
		"languages":           []string{"spanish"},
	}
}
