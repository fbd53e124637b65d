// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package recommend

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/rallypoint/internal/recommend/algorithms"
	"github.com/tomtom215/rallypoint/internal/recommend/storage"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrNotReady is returned while no bundle is loaded.
	ErrNotReady = errors.New("segmentation model not loaded")

	// ErrTrainingInProgress is returned when a training run is already active.
	ErrTrainingInProgress = errors.New("training already in progress")

	// ErrInsufficientData indicates a dataset too small to cluster.
	ErrInsufficientData = algorithms.ErrInsufficientData
)

// ValidationError describes a malformed prediction input.
type ValidationError struct {
	// Index is the record position in a batch, or -1 for single predictions.
	Index int

	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("record %d: %s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// PlayerSummary is a recommended player.
type PlayerSummary struct {
	ID                  string  `json:"id"`
	Level               string  `json:"level"`
	Rank                float64 `json:"rank"`
	MaxBudgetPerSession float64 `json:"maxBudgetPerSession"`
}

// Prediction is the result of classifying one profile.
type Prediction struct {
	Cluster            int             `json:"cluster"`
	RecommendedPlayers []PlayerSummary `json:"recommendedPlayers"`
}

// ClusterResult is the cluster of one batch record.
type ClusterResult struct {
	ID      string `json:"id"`
	Cluster int    `json:"cluster"`
}

// TrainingResult is the output of one training run.
type TrainingResult struct {
	Bundle      *storage.Bundle
	Assignments []storage.Assignment
	Metadata    storage.BundleMetadata
	KMeans      *algorithms.KMeansResult
}

// Status describes the serving state.
type Status struct {
	// Ready is true once a bundle is loaded.
	Ready bool `json:"ready"`

	// LoadedAt is when the current snapshot was published.
	LoadedAt time.Time `json:"loaded_at,omitempty"`

	// Bundle is the metadata of the loaded bundle.
	Bundle *storage.BundleMetadata `json:"bundle,omitempty"`

	// RosterSize is the number of profiles available for recommendations.
	RosterSize int `json:"roster_size"`

	// Unassigned counts roster profiles without a persisted cluster.
	Unassigned int `json:"unassigned"`

	// RequestCount is the number of predictions served.
	RequestCount int64 `json:"request_count"`

	// ErrorCount is the number of failed predictions.
	ErrorCount int64 `json:"error_count"`
}

// Observer receives pipeline events for metrics collection.
type Observer interface {
	// ObservePrediction is called once per classified profile.
	ObservePrediction(cluster int, duration time.Duration)

	// ObserveUnknownValues is called with the number of dropped values of a field.
	ObserveUnknownValues(field string, count int)

	// ObserveSnapshot is called after a snapshot is published.
	ObserveSnapshot(meta *storage.BundleMetadata, rosterSize int)

	// ObserveTraining is called after a successful training run.
	ObserveTraining(result *TrainingResult, duration time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObservePrediction(int, time.Duration) {}
func (noopObserver) ObserveUnknownValues(string, int) {}
func (noopObserver) ObserveSnapshot(*storage.BundleMetadata, int) {}
func (noopObserver) ObserveTraining(*TrainingResult, time.Duration) {}
