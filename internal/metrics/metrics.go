// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

// Package metrics defines the Prometheus metrics exported on /metrics.
//
// Metrics are registered on the default registry through promauto. HTTP
// metrics are recorded by middleware.PrometheusMetrics; pipeline metrics are
// recorded by PipelineObserver, which the server passes to recommend.NewPipeline
// and recommend.NewTrainer.
package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Serving Metrics
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rallypoint_predictions_total",
			Help: "Profiles classified, by assigned cluster",
		},
		[]string{"cluster"},
	)

	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rallypoint_prediction_duration_seconds",
			Help:    "Time to encode, scale and assign one profile",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	UnknownCategoryValues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rallypoint_unknown_category_values_total",
			Help: "Category values dropped because they are not in the bundle vocabulary",
		},
		[]string{"field"},
	)

	// Bundle Metrics
	BundleVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rallypoint_bundle_version",
			Help: "Version of the model bundle currently served",
		},
	)

	BundleClusters = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rallypoint_bundle_clusters",
			Help: "Number of clusters in the served bundle",
		},
	)

	BundleReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rallypoint_bundle_reloads_total",
			Help: "Bundle reload attempts by result (success, failed, unchanged)",
		},
		[]string{"result"},
	)

	RosterSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rallypoint_roster_size",
			Help: "Players in the recommendation index",
		},
	)

	RegistrySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rallypoint_registry_players",
			Help: "Players stored in the player registry",
		},
	)

	// Training Metrics
	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rallypoint_training_duration_seconds",
			Help:    "Duration of training runs",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)

	TrainingInertia = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rallypoint_training_inertia",
			Help: "Within-cluster sum of squares of the last training run",
		},
	)

	TrainingIterations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rallypoint_training_iterations",
			Help: "Assignment passes performed by the last training run",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// Bundle reload results
const (
	ReloadSuccess   = "success"
	ReloadFailed    = "failed"
	ReloadUnchanged = "unchanged"
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordBundleReload counts a reload attempt.
func RecordBundleReload(result string) {
	BundleReloads.WithLabelValues(result).Inc()
}

// SetRegistrySize updates the registry gauge.
func SetRegistrySize(n int) {
	RegistrySize.Set(float64(n))
}

// SetAppInfo publishes the build version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
