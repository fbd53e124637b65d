// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package models

import (
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/rallypoint/internal/recommend"
	"github.com/tomtom215/rallypoint/internal/recommend/storage"
	"github.com/tomtom215/rallypoint/internal/validation"
)

func TestProfileRequest_Decode(t *testing.T) {
	body := `{"level":"beginner","rank":12.5,"desiredServices":["coaching"],"goals":[],"languages":["en"]}`

	var req ProfileRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		t.Fatalf("ValidateStruct() = %v", verr)
	}

	p := req.Profile()
	if p.Level != "beginner" || p.Rank != 12.5 || p.MaxBudgetPerSession != 0 {
		t.Errorf("Profile() = %+v", p)
	}
	if p.Goals == nil || len(p.Goals) != 0 {
		t.Errorf("Goals = %#v, want empty non-nil", p.Goals)
	}

	req.DesiredServices[0] = "mutated"
	if p.DesiredServices[0] != "coaching" {
		t.Error("Profile() shares the request slice")
	}
}

func TestProfileRequest_Validation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"missing level", `{"desiredServices":[],"goals":[],"languages":[]}`, "level"},
		{"missing list", `{"level":"beginner","desiredServices":[],"goals":[]}`, "languages"},
		{"null list", `{"level":"beginner","desiredServices":null,"goals":[],"languages":[]}`, "desiredServices"},
		{"negative budget", `{"level":"beginner","maxBudgetPerSession":-1,"desiredServices":[],"goals":[],"languages":[]}`, "maxBudgetPerSession"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ProfileRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			verr := validation.ValidateStruct(&req)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if got := verr.Errors()[0].Field(); got != tt.wantField {
				t.Errorf("Field() = %q, want %q", got, tt.wantField)
			}
		})
	}
}

func TestBatchRecord_Profile(t *testing.T) {
	rec := BatchRecord{ID: "p-1", Level: "professional", Rank: 90, DesiredServices: []string{}, Goals: []string{"win"}, Languages: []string{}}
	if verr := validation.ValidateStruct(&rec); verr != nil {
		t.Fatalf("ValidateStruct() = %v", verr)
	}
	p := rec.Profile()
	if p.ID != "p-1" || p.Level != "professional" || p.Goals[0] != "win" {
		t.Errorf("Profile() = %+v", p)
	}

	rec.ID = " "
	if verr := validation.ValidateStruct(&rec); verr == nil || verr.Errors()[0].Field() != "id" {
		t.Errorf("blank id: ValidateStruct() = %v", verr)
	}
}

func TestPlayerRequest(t *testing.T) {
	req := PlayerRequest{Name: "Ana", Level: "recreational", Rank: 30}
	if verr := validation.ValidateStruct(&req); verr != nil {
		t.Fatalf("ValidateStruct() = %v", verr)
	}

	p := req.Profile()
	if p.DesiredServices == nil || p.Goals == nil || p.Languages == nil {
		t.Errorf("Profile() left nil lists: %+v", p)
	}

	tests := []struct {
		name      string
		mutate    func(r *PlayerRequest)
		wantField string
	}{
		{"rank above range", func(r *PlayerRequest) { r.Rank = 101 }, "rank"},
		{"unknown level", func(r *PlayerRequest) { r.Level = "legend" }, "level"},
		{"blank name", func(r *PlayerRequest) { r.Name = "" }, "name"},
		{"blank goal", func(r *PlayerRequest) { r.Goals = []string{"ok", " "} }, "goals[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := req
			tt.mutate(&r)
			verr := validation.ValidateStruct(&r)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if got := verr.Errors()[0].Field(); got != tt.wantField {
				t.Errorf("Field() = %q, want %q", got, tt.wantField)
			}
		})
	}
}

func TestNewModelResponse(t *testing.T) {
	if got := NewModelResponse(recommend.Status{}); got != nil {
		t.Errorf("NewModelResponse(not ready) = %+v, want nil", got)
	}

	trained := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	meta := &storage.BundleMetadata{
		Version:        3,
		TrainedAt:      trained,
		Clusters:       4,
		Width:          10,
		ProfileCount:   40,
		ServicesCount:  2,
		GoalsCount:     3,
		LanguagesCount: 1,
		ClusterSizes:   []int{10, 10, 10, 10},
		Inertia:        1.5,
		Iterations:     7,
		Converged:      true,
	}
	got := NewModelResponse(recommend.Status{Ready: true, Bundle: meta, RosterSize: 40, Unassigned: 2})
	if got == nil {
		t.Fatal("NewModelResponse() = nil")
	}
	if got.Version != 3 || got.Clusters != 4 || got.Width != 10 || got.RosterSize != 40 || got.Unassigned != 2 {
		t.Errorf("NewModelResponse() = %+v", got)
	}
	if got.Vocabulary != (VocabSize{Services: 2, Goals: 3, Languages: 1}) {
		t.Errorf("Vocabulary = %+v", got.Vocabulary)
	}

	got.ClusterSizes[0] = 99
	if meta.ClusterSizes[0] != 10 {
		t.Error("NewModelResponse() shares ClusterSizes with the bundle metadata")
	}

	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["k"] != float64(4) {
		t.Errorf("k = %v, want 4", decoded["k"])
	}
}
