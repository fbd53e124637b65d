// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/rallypoint/internal/middleware"
	"github.com/tomtom215/rallypoint/internal/models"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil middleware set uses the defaults.
func NewRouter(handler *Handler, chiMw *ChiMiddleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: chiMw}
}

// SetupChi builds the HTTP handler.
//
// The clustering and player routes are served twice: at the root paths
// used by existing clients and under /api/v1. Both share one rate limit
// budget per group.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics) // outside Recoverer so panics count as 500
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "Route not found", nil, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed", nil, nil)
	})

	clusteringLimit := router.chiMiddleware.RateLimit("clustering")
	playersLimit := router.chiMiddleware.RateLimit("players")

	clustering := func(r chi.Router) {
		r.Use(clusteringLimit)
		r.Post("/cluster-player", h.ClusterPlayer)
		r.Post("/cluster-all", h.ClusterAll)
	}
	players := func(r chi.Router) {
		r.Use(playersLimit)
		r.Get("/", h.ListPlayers)
		r.Post("/", h.CreatePlayer)
		r.Delete("/{id}", h.DeletePlayer)
	}

	// ========================
	// Root Routes
	// ========================
	r.Group(clustering)
	r.Route("/players", players)

	// ========================
	// Versioned API
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/health", func(r chi.Router) {
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Route("/clustering", clustering)

		r.With(clusteringLimit).Get("/model", h.ModelStatus)

		r.Route("/players", func(r chi.Router) {
			players(r)
			r.Get("/{id}", h.GetPlayer)
		})
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
