// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package metrics

import (
	"strconv"
	"time"

	"github.com/tomtom215/rallypoint/internal/recommend"
	"github.com/tomtom215/rallypoint/internal/recommend/storage"
)

// PipelineObserver records pipeline events as Prometheus metrics.
type PipelineObserver struct{}

var _ recommend.Observer = PipelineObserver{}

// ObservePrediction implements recommend.Observer.
func (PipelineObserver) ObservePrediction(cluster int, duration time.Duration) {
	PredictionsTotal.WithLabelValues(strconv.Itoa(cluster)).Inc()
	PredictionDuration.Observe(duration.Seconds())
}

// ObserveUnknownValues implements recommend.Observer.
func (PipelineObserver) ObserveUnknownValues(field string, count int) {
	UnknownCategoryValues.WithLabelValues(field).Add(float64(count))
}

// ObserveSnapshot implements recommend.Observer.
func (PipelineObserver) ObserveSnapshot(meta *storage.BundleMetadata, rosterSize int) {
	if meta != nil {
		BundleVersion.Set(float64(meta.Version))
		BundleClusters.Set(float64(meta.Clusters))
	}
	RosterSize.Set(float64(rosterSize))
}

// ObserveTraining implements recommend.Observer.
func (PipelineObserver) ObserveTraining(result *recommend.TrainingResult, duration time.Duration) {
	TrainingDuration.Observe(duration.Seconds())
	if result == nil {
		return
	}
	TrainingInertia.Set(result.Metadata.Inertia)
	TrainingIterations.Set(float64(result.Metadata.Iterations))
}
