// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/rallypoint/internal/recommend/algorithms"
	"github.com/tomtom215/rallypoint/internal/recommend/features"
)

var (
	// ErrDimensionMismatch is matched by every *DimensionMismatchError.
	ErrDimensionMismatch = algorithms.ErrDimensionMismatch

	// ErrInvalidBundle indicates a structurally unusable bundle.
	ErrInvalidBundle = errors.New("invalid bundle")

	// ErrNoBundle indicates that no bundle version exists.
	ErrNoBundle = errors.New("no bundle found")

	// ErrAssignmentsNotFound indicates a version without an assignments file.
	ErrAssignmentsNotFound = errors.New("assignments not found")
)

// DimensionMismatchError reports a bundle component whose width disagrees
// with the width derived from the vocabulary.
type DimensionMismatchError struct {
	Component string
	Index     int
	Expected  int
	Actual    int
}

func (e *DimensionMismatchError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("dimension mismatch: %s[%d] has width %d, vocabulary width is %d",
			e.Component, e.Index, e.Actual, e.Expected)
	}
	return fmt.Sprintf("dimension mismatch: %s has width %d, vocabulary width is %d",
		e.Component, e.Actual, e.Expected)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// Bundle is the frozen output of one training run.
type Bundle struct {
	Vocabulary features.Vocabulary
	Scaler     algorithms.ScalerParams
	Model      algorithms.ClusterModel
}

// Width returns the vector width derived from the vocabulary.
func (b *Bundle) Width() int {
	return b.Vocabulary.Width()
}

// Validate checks that every component agrees on the vocabulary width.
func (b *Bundle) Validate() error {
	width := b.Width()

	if got := len(b.Scaler.Mean); got != width {
		return &DimensionMismatchError{Component: "scaler.mean", Index: -1, Expected: width, Actual: got}
	}
	if got := len(b.Scaler.Std); got != width {
		return &DimensionMismatchError{Component: "scaler.std", Index: -1, Expected: width, Actual: got}
	}
	if b.Model.K() == 0 {
		return fmt.Errorf("%w: no centroids", ErrInvalidBundle)
	}
	for i, c := range b.Model.Centroids {
		if len(c) != width {
			return &DimensionMismatchError{Component: "centroid", Index: i, Expected: width, Actual: len(c)}
		}
	}
	for j, s := range b.Scaler.Std {
		if s <= 0 {
			return fmt.Errorf("%w: scaler.std[%d] = %v", ErrInvalidBundle, j, s)
		}
	}

	return nil
}

// Assignment is the cluster of one training profile.
type Assignment struct {
	ID      string `json:"id"`
	Cluster int    `json:"cluster"`
}

// BundleMetadata describes a stored bundle version.
type BundleMetadata struct {
	// Version is the bundle version (monotonically increasing).
	Version int `json:"version"`

	// TrainedAt is when training finished.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the bundle was written.
	SavedAt time.Time `json:"saved_at"`

	// ProfileCount is the number of training profiles.
	ProfileCount int `json:"profile_count"`

	// Clusters is the number of centroids.
	Clusters int `json:"clusters"`

	// Width is the feature vector width.
	Width int `json:"width"`

	// Vocabulary sizes per category field.
	ServicesCount  int `json:"services_count"`
	GoalsCount     int `json:"goals_count"`
	LanguagesCount int `json:"languages_count"`

	// Seed and Init record the clustering configuration.
	Seed int64  `json:"seed"`
	Init string `json:"init"`

	// Inertia is the final within-cluster squared distance.
	Inertia float64 `json:"inertia"`

	// Iterations is the number of Lloyd passes.
	Iterations int `json:"iterations"`

	// Converged is false when training stopped at the iteration cap.
	Converged bool `json:"converged"`

	// ClusterSizes counts training profiles per cluster.
	ClusterSizes []int `json:"cluster_sizes"`

	// Checksum is the SHA-256 checksum of the bundle data.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed bundle size in bytes.
	SizeBytes int64 `json:"size_bytes"`

	// TrainingDurationMS is how long training took.
	TrainingDurationMS int64 `json:"training_duration_ms"`
}
