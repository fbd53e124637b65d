// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

// Package algorithms implements the numeric stages of the segmentation
// pipeline: column standardization and k-means clustering.
//
// Fitting functions return plain parameter structs (ScalerParams,
// ClusterModel) that are safe to share once built; nothing in this package
// mutates a fitted model.
package algorithms

import (
	"context"
	"errors"
	"fmt"
)

// Errors returned by fitting and transformation.
var (
	// ErrDimensionMismatch indicates vectors or parameters of different widths.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInsufficientData indicates too few rows to fit.
	ErrInsufficientData = errors.New("insufficient training data")

	// ErrInvalidConfig indicates an unusable fitting configuration.
	ErrInvalidConfig = errors.New("invalid algorithm config")
)

// Assigner maps a scaled feature vector to a cluster id.
type Assigner interface {
	Assign(vec []float64) int
	K() int
	Dim() int
}

var _ Assigner = (*ClusterModel)(nil)

// matrixWidth returns the shared row width, rejecting empty or ragged input.
func matrixWidth(matrix [][]float64) (int, error) {
	if len(matrix) == 0 {
		return 0, fmt.Errorf("%w: empty matrix", ErrInsufficientData)
	}
	width := len(matrix[0])
	for i, row := range matrix {
		if len(row) != width {
			return 0, fmt.Errorf("%w: row %d has width %d, want %d", ErrDimensionMismatch, i, len(row), width)
		}
	}
	return width, nil
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
