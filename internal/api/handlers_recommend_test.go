// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/rallypoint/internal/recommend"
)

func TestClusterPlayer(t *testing.T) {
	ts := newTestServer(t, true, nil)

	for _, path := range []string{"/cluster-player", "/api/v1/clustering/cluster-player"} {
		t.Run(path, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, path, proProfile())
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), `"recommendedPlayers"`) {
				t.Errorf("body lacks recommendedPlayers: %s", rec.Body.String())
			}

			var pred recommend.Prediction
			decodeBody(t, rec, &pred)
			if pred.Cluster < 0 || pred.Cluster >= 4 {
				t.Fatalf("cluster = %d, want 0..3", pred.Cluster)
			}
			if len(pred.RecommendedPlayers) == 0 || len(pred.RecommendedPlayers) > 5 {
				t.Fatalf("got %d recommendations, want 1..5", len(pred.RecommendedPlayers))
			}
			for _, p := range pred.RecommendedPlayers {
				if ts.assignments[p.ID] != pred.Cluster {
					t.Errorf("recommended %s is in cluster %d, want %d", p.ID, ts.assignments[p.ID], pred.Cluster)
				}
				if !strings.HasPrefix(p.ID, "pro-") {
					t.Errorf("recommended %s for a professional profile", p.ID)
				}
			}
		})
	}
}

func TestClusterPlayer_Limit(t *testing.T) {
	ts := newTestServer(t, true, nil)

	rec := ts.do(t, http.MethodPost, "/cluster-player?limit=1", proProfile())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var pred recommend.Prediction
	decodeBody(t, rec, &pred)
	if len(pred.RecommendedPlayers) != 1 {
		t.Errorf("got %d recommendations, want 1", len(pred.RecommendedPlayers))
	}
}

func TestClusterPlayer_UnknownCategories(t *testing.T) {
	ts := newTestServer(t, true, nil)

	body := proProfile()
	body["languages"] = []string{"klingon"}
	body["goals"] = []string{}

	rec := ts.do(t, http.MethodPost, "/cluster-player", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown category values must not fail: status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestClusterPlayer_HugeFiniteRank(t *testing.T) {
	ts := newTestServer(t, true, nil)

	body := proProfile()
	body["rank"] = 1e200

	rec := ts.do(t, http.MethodPost, "/api/v1/clustering/cluster-player", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var pred recommend.Prediction
	decodeBody(t, rec, &pred)
	if pred.Cluster != 0 {
		t.Errorf("cluster = %d, want 0 when every distance overflows", pred.Cluster)
	}
}

func TestClusterPlayer_BadRequests(t *testing.T) {
	ts := newTestServer(t, true, nil)

	missingLevel := proProfile()
	delete(missingLevel, "level")
	missingList := proProfile()
	delete(missingList, "goals")
	negative := proProfile()
	negative["rank"] = -3

	tests := []struct {
		name      string
		body      interface{}
		wantCode  string
		wantField string
	}{
		{"missing level", missingLevel, "VALIDATION_ERROR", "level"},
		{"missing list", missingList, "VALIDATION_ERROR", "goals"},
		{"negative rank", negative, "VALIDATION_ERROR", "rank"},
		{"malformed json", `{"level":`, "INVALID_JSON", ""},
		{"empty body", "", "INVALID_JSON", ""},
		{"wrong type", `{"level": 3}`, "INVALID_JSON", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/cluster-player", tt.body)
			apiErr := decodeError(t, rec, http.StatusBadRequest, tt.wantCode)
			if tt.wantField != "" && apiErr.Details["field"] != tt.wantField {
				t.Errorf("details.field = %v, want %s", apiErr.Details["field"], tt.wantField)
			}
		})
	}
}

func TestClusterPlayer_NotReady(t *testing.T) {
	ts := newTestServer(t, false, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/clustering/cluster-player", proProfile())
	decodeError(t, rec, http.StatusServiceUnavailable, "MODEL_UNAVAILABLE")
}

func TestClusterAll(t *testing.T) {
	ts := newTestServer(t, true, nil)

	records := []map[string]interface{}{}
	for _, id := range []string{"z", "a", "m"} {
		r := proProfile()
		r["id"] = id
		records = append(records, r)
	}
	casual := map[string]interface{}{
		"id": "casual", "level": "beginner", "rank": 6, "maxBudgetPerSession": 20, "travelDistance": 5,
		"desiredServices": []string{"hitting partner"}, "goals": []string{"fun"}, "languages": []string{"english"},
	}
	records = append(records, casual)

	for _, path := range []string{"/cluster-all", "/api/v1/clustering/cluster-all"} {
		t.Run(path, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, path, records)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}

			var results []recommend.ClusterResult
			decodeBody(t, rec, &results)
			if len(results) != len(records) {
				t.Fatalf("got %d results, want %d", len(results), len(records))
			}
			for i, want := range []string{"z", "a", "m", "casual"} {
				if results[i].ID != want {
					t.Errorf("results[%d].ID = %q, want %q", i, results[i].ID, want)
				}
			}
			if results[0].Cluster != results[1].Cluster || results[1].Cluster != results[2].Cluster {
				t.Errorf("identical profiles landed in different clusters: %+v", results)
			}
			if results[3].Cluster == results[0].Cluster {
				t.Errorf("casual and professional profiles share cluster %d", results[0].Cluster)
			}
		})
	}
}

func TestClusterAll_Empty(t *testing.T) {
	ts := newTestServer(t, true, nil)

	rec := ts.do(t, http.MethodPost, "/cluster-all", "[]")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %s, want []", rec.Body.String())
	}
}

func TestClusterAll_Validation(t *testing.T) {
	ts := newTestServer(t, true, nil)

	good := proProfile()
	good["id"] = "ok"
	noID := proProfile()

	rec := ts.do(t, http.MethodPost, "/cluster-all", []map[string]interface{}{good, noID})
	apiErr := decodeError(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
	if apiErr.Details["field"] != "[1].id" {
		t.Errorf("details.field = %v, want [1].id", apiErr.Details["field"])
	}

	rec = ts.do(t, http.MethodPost, "/cluster-all", proProfile())
	decodeError(t, rec, http.StatusBadRequest, "INVALID_JSON")
}

func TestClusterAll_TooLarge(t *testing.T) {
	ts := newTestServer(t, true, nil)

	max := recommend.DefaultConfig().Limits.MaxBatchSize
	records := make([]map[string]interface{}, max+1)
	for i := range records {
		r := proProfile()
		r["id"] = strings.Repeat("x", 1+i%3)
		records[i] = r
	}

	rec := ts.do(t, http.MethodPost, "/cluster-all", records)
	apiErr := decodeError(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
	if apiErr.Details["field"] != "records" {
		t.Errorf("details.field = %v, want records", apiErr.Details["field"])
	}
}
