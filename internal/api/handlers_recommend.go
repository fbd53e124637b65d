// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package api

import (
	"net/http"

	"github.com/tomtom215/rallypoint/internal/models"
	"github.com/tomtom215/rallypoint/internal/recommend/features"
	"github.com/tomtom215/rallypoint/internal/validation"
)

// ClusterPlayer classifies one profile and returns players from the same segment.
//
// @Summary Classify a player profile
// @Description Assigns the profile to a segment of the loaded model and returns up to `limit`
// @Description players of that segment in dataset order. Unknown category values are ignored.
// @Tags Clustering
// @Accept json
// @Produce json
// @Param profile body models.ProfileRequest true "Player profile"
// @Param limit query int false "Maximum recommended players (default 5)"
// @Success 200 {object} recommend.Prediction
// @Failure 400 {object} models.APIResponse "Invalid profile"
// @Failure 503 {object} models.APIResponse "Model not loaded"
// @Router /clustering/cluster-player [post]
func (h *Handler) ClusterPlayer(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, r, verr)
		return
	}

	profile := req.Profile()
	prediction, err := h.pipeline.Predict(r.Context(), &profile, getIntParam(r, "limit", 0))
	if err != nil {
		respondPipelineError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, prediction)
}

// ClusterAll classifies a batch of profiles against one model snapshot.
//
// @Summary Classify a batch of profiles
// @Description Every record must carry an id. Results keep the input order.
// @Tags Clustering
// @Accept json
// @Produce json
// @Param records body []models.BatchRecord true "Profiles with ids"
// @Success 200 {array} recommend.ClusterResult
// @Failure 400 {object} models.APIResponse "Invalid batch"
// @Failure 503 {object} models.APIResponse "Model not loaded"
// @Router /clustering/cluster-all [post]
func (h *Handler) ClusterAll(w http.ResponseWriter, r *http.Request) {
	var records []models.BatchRecord
	if !decodeJSON(w, r, &records) {
		return
	}
	if verr := validation.ValidateEach(records); verr != nil {
		respondValidation(w, r, verr)
		return
	}

	profiles := make([]features.Profile, len(records))
	for i := range records {
		profiles[i] = records[i].Profile()
	}

	results, err := h.pipeline.PredictBatch(r.Context(), profiles)
	if err != nil {
		respondPipelineError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, results)
}
