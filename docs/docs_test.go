// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package docs

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("ReadDoc() error = %v", err)
	}

	var parsed struct {
		BasePath    string                     `json:"basePath"`
		Paths       map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage `json:"definitions"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	if parsed.BasePath != "/api/v1" {
		t.Errorf("basePath = %q, want /api/v1", parsed.BasePath)
	}

	for _, path := range []string{"/clustering/cluster-player", "/clustering/cluster-all", "/players", "/players/{id}", "/model", "/health/ready"} {
		if _, ok := parsed.Paths[path]; !ok {
			t.Errorf("path %s missing", path)
		}
	}
	for _, def := range []string{"models.ProfileRequest", "recommend.Prediction", "models.APIResponse"} {
		if _, ok := parsed.Definitions[def]; !ok {
			t.Errorf("definition %s missing", def)
		}
	}
}
