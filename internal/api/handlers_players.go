// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/rallypoint/internal/logging"
	"github.com/tomtom215/rallypoint/internal/metrics"
	"github.com/tomtom215/rallypoint/internal/models"
	"github.com/tomtom215/rallypoint/internal/registry"
	"github.com/tomtom215/rallypoint/internal/validation"
)

// ListPlayers returns every registered player in registration order.
//
// @Summary List registered players
// @Tags Players
// @Produce json
// @Success 200 {array} features.Profile
// @Failure 500 {object} models.APIResponse
// @Router /players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to list players", nil, err)
		return
	}
	respondJSON(w, http.StatusOK, players)
}

// GetPlayer returns one registered player.
//
// @Summary Get a registered player
// @Tags Players
// @Produce json
// @Param id path string true "Player id"
// @Success 200 {object} features.Profile
// @Failure 404 {object} models.APIResponse
// @Router /players/{id} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	player, err := h.players.Get(r.Context(), id)
	if errors.Is(err, registry.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "Player not found", nil, nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to load player", nil, err)
		return
	}
	respondJSON(w, http.StatusOK, player)
}

// CreatePlayer registers a player. A missing id is replaced with a UUID.
//
// @Summary Register a player
// @Tags Players
// @Accept json
// @Produce json
// @Param player body models.PlayerRequest true "Player"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} models.APIResponse "Invalid player"
// @Failure 409 {object} models.APIResponse "Id already registered"
// @Router /players [post]
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req models.PlayerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, r, verr)
		return
	}

	stored, err := h.players.Add(r.Context(), req.Profile())
	if errors.Is(err, registry.ErrAlreadyExists) {
		respondError(w, r, http.StatusConflict, models.ErrCodeConflict, "Player id already registered",
			map[string]interface{}{"id": req.ID}, nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to add player", nil, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("player_id", sanitizeLogValue(stored.ID)).Msg("Player registered")
	h.updateRegistrySize(r)
	respondJSON(w, http.StatusCreated, models.CreatedResponse{ID: stored.ID, Message: "Player added successfully"})
}

// DeletePlayer removes a registered player.
//
// @Summary Remove a registered player
// @Tags Players
// @Produce json
// @Param id path string true "Player id"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.APIResponse
// @Router /players/{id} [delete]
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.players.Remove(r.Context(), id)
	if errors.Is(err, registry.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "Player not found", nil, nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to delete player", nil, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("player_id", sanitizeLogValue(id)).Msg("Player removed")
	h.updateRegistrySize(r)
	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Player deleted successfully"})
}

func (h *Handler) updateRegistrySize(r *http.Request) {
	n, err := h.players.Count(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to count registered players")
		return
	}
	metrics.SetRegistrySize(n)
}
