// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/rallypoint/internal/recommend"
	"github.com/tomtom215/rallypoint/internal/recommend/storage"
)

func TestPipelineObserver_Prediction(t *testing.T) {
	obs := PipelineObserver{}
	before := testutil.ToFloat64(PredictionsTotal.WithLabelValues("2"))

	obs.ObservePrediction(2, 40*time.Microsecond)
	obs.ObservePrediction(2, 60*time.Microsecond)

	if got := testutil.ToFloat64(PredictionsTotal.WithLabelValues("2")); got != before+2 {
		t.Errorf("predictions{cluster=2} = %v, want %v", got, before+2)
	}
	if got := testutil.CollectAndCount(PredictionDuration); got != 1 {
		t.Errorf("prediction duration series = %d, want 1", got)
	}
}

func TestPipelineObserver_UnknownValues(t *testing.T) {
	obs := PipelineObserver{}
	before := testutil.ToFloat64(UnknownCategoryValues.WithLabelValues("languages"))

	obs.ObserveUnknownValues("languages", 3)

	if got := testutil.ToFloat64(UnknownCategoryValues.WithLabelValues("languages")); got != before+3 {
		t.Errorf("unknown{field=languages} = %v, want %v", got, before+3)
	}
}

func TestPipelineObserver_Snapshot(t *testing.T) {
	obs := PipelineObserver{}

	obs.ObserveSnapshot(&storage.BundleMetadata{Version: 9, Clusters: 4}, 120)

	if got := testutil.ToFloat64(BundleVersion); got != 9 {
		t.Errorf("bundle version = %v, want 9", got)
	}
	if got := testutil.ToFloat64(BundleClusters); got != 4 {
		t.Errorf("bundle clusters = %v, want 4", got)
	}
	if got := testutil.ToFloat64(RosterSize); got != 120 {
		t.Errorf("roster size = %v, want 120", got)
	}

	// nil metadata only updates the roster gauge
	obs.ObserveSnapshot(nil, 5)
	if got := testutil.ToFloat64(BundleVersion); got != 9 {
		t.Errorf("bundle version after nil metadata = %v, want 9", got)
	}
	if got := testutil.ToFloat64(RosterSize); got != 5 {
		t.Errorf("roster size = %v, want 5", got)
	}
}

func TestPipelineObserver_Training(t *testing.T) {
	obs := PipelineObserver{}

	obs.ObserveTraining(&recommend.TrainingResult{
		Metadata: storage.BundleMetadata{Inertia: 12.5, Iterations: 7},
	}, 2*time.Second)

	if got := testutil.ToFloat64(TrainingInertia); got != 12.5 {
		t.Errorf("training inertia = %v, want 12.5", got)
	}
	if got := testutil.ToFloat64(TrainingIterations); got != 7 {
		t.Errorf("training iterations = %v, want 7", got)
	}

	// nil result records duration without panicking
	obs.ObserveTraining(nil, time.Second)
}
