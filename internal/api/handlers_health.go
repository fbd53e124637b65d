// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/rallypoint/internal/models"
)

// HealthLive handles liveness probes. It succeeds whenever the process serves HTTP.
//
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthResponse}
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondEnvelope(w, r, http.StatusOK, h.health("alive"), start)
}

// HealthReady handles readiness probes. It returns 503 until a model bundle is loaded.
//
// @Summary Readiness probe
// @Description Ready once a segmentation model bundle is loaded.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthResponse}
// @Failure 503 {object} models.APIResponse{data=models.HealthResponse}
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body := h.health("ready")
	status := http.StatusOK
	if !body.Ready {
		body.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}
	respondEnvelope(w, r, status, body, start)
}

func (h *Handler) health(status string) *models.HealthResponse {
	st := h.pipeline.Status()
	resp := &models.HealthResponse{
		Status:  status,
		Ready:   st.Ready,
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}
	if st.Bundle != nil {
		loaded := st.LoadedAt
		resp.BundleVersion = st.Bundle.Version
		resp.LoadedAt = &loaded
	}
	return resp
}

// ModelStatus describes the loaded segmentation model.
//
// @Summary Loaded model status
// @Description Version, training metadata, vocabulary sizes and serving counters of the loaded bundle.
// @Tags Clustering
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.ModelResponse}
// @Failure 503 {object} models.APIResponse "Model not loaded"
// @Router /model [get]
func (h *Handler) ModelStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	model := models.NewModelResponse(h.pipeline.Status())
	if model == nil {
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeModelUnavailable,
			"Segmentation model is not loaded", nil, nil)
		return
	}
	respondEnvelope(w, r, http.StatusOK, model, start)
}
