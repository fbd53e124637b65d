// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

// Package recommend implements player segmentation and same-segment
// recommendations.
//
// # Architecture
//
// Training and serving share one feature path:
//
//	Profile -> features.Assemble -> ScalerParams.Transform -> ClusterModel.Assign
//
// A Trainer runs the path offline over a dataset, fitting the vocabulary,
// the scaler and the centroids, and returns a storage.Bundle together with
// the id -> cluster assignments of every training profile.
//
// A Pipeline serves predictions from an immutable Snapshot: a validated
// bundle, its metadata and a RecommendationIndex built from the roster and
// the persisted assignments. Serving never fits or mutates anything; a new
// bundle replaces the whole snapshot with a single atomic swap.
//
// # Recommendations
//
// RecommendationIndex returns the first N roster profiles of a cluster in
// roster order. Results are not ranked by similarity.
//
// # Usage
//
//	trainer := recommend.NewTrainer(cfg, logger)
//	result, err := trainer.Train(ctx, profiles)
//	...
//	pipeline, err := recommend.NewPipeline(cfg, logger)
//	snap, err := recommend.NewSnapshot(bundle, meta, roster, assignments)
//	err = pipeline.Swap(snap)
//	pred, err := pipeline.Predict(ctx, &profile, 0)
//
// # Thread Safety
//
// Pipeline is safe for concurrent use. Predictions read the current
// snapshot without locks; Swap publishes a new one atomically. Trainer
// allows one training run at a time.
package recommend
