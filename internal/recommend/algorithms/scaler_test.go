// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package algorithms

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestFitScaler(t *testing.T) {
	matrix := [][]float64{
		{1, 10, 7},
		{2, 20, 7},
		{3, 30, 7},
		{4, 40, 7},
	}

	params, err := FitScaler(matrix)
	if err != nil {
		t.Fatalf("FitScaler() error = %v", err)
	}

	wantMean := []float64{2.5, 25, 7}
	// Population std: sqrt(1.25) and sqrt(125).
	wantStd := []float64{math.Sqrt(1.25), math.Sqrt(125), 1}

	for j := range wantMean {
		if !almostEqual(params.Mean[j], wantMean[j]) {
			t.Errorf("Mean[%d] = %v, want %v", j, params.Mean[j], wantMean[j])
		}
		if !almostEqual(params.Std[j], wantStd[j]) {
			t.Errorf("Std[%d] = %v, want %v", j, params.Std[j], wantStd[j])
		}
	}
	if params.Width() != 3 {
		t.Errorf("Width() = %d, want 3", params.Width())
	}
}

func TestFitScaler_NearZeroStd(t *testing.T) {
	// Column 0 differs only by rounding noise relative to its magnitude;
	// column 1 is tiny but genuinely spread.
	params, err := FitScaler([][]float64{
		{1e6, 1e-6},
		{1e6 + 1e-9, 3e-6},
	})
	if err != nil {
		t.Fatalf("FitScaler() error = %v", err)
	}
	if params.Std[0] != 1 {
		t.Errorf("Std[0] = %v, want 1 for a column within rounding noise", params.Std[0])
	}
	if !almostEqual(params.Std[1], 1e-6) {
		t.Errorf("Std[1] = %v, want 1e-6", params.Std[1])
	}
}

func TestFitScaler_Errors(t *testing.T) {
	tests := []struct {
		name    string
		matrix  [][]float64
		wantErr error
	}{
		{"empty", nil, ErrInsufficientData},
		{"ragged", [][]float64{{1, 2}, {3}}, ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitScaler(tt.matrix)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FitScaler() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestScalerParams_TransformMeanIsZero(t *testing.T) {
	matrix := [][]float64{
		{10, 0, 1, 0.1},
		{20, 100, 0, 0.1},
		{35, 50, 1, 0.1},
	}
	params, err := FitScaler(matrix)
	if err != nil {
		t.Fatalf("FitScaler() error = %v", err)
	}

	got, err := params.Transform(params.Mean)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	for j, v := range got {
		if !almostEqual(v, 0) {
			t.Errorf("Transform(mean)[%d] = %v, want 0", j, v)
		}
	}
}

func TestScalerParams_TransformConstantColumn(t *testing.T) {
	params, err := FitScaler([][]float64{{5, 1}, {5, 3}})
	if err != nil {
		t.Fatalf("FitScaler() error = %v", err)
	}

	got, err := params.Transform([]float64{5, 3})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got[0] != 0 {
		t.Errorf("constant column transformed to %v, want 0", got[0])
	}
	if !almostEqual(got[1], 1) {
		t.Errorf("got[1] = %v, want 1", got[1])
	}
}

func TestScalerParams_TransformDoesNotMutateInput(t *testing.T) {
	params := ScalerParams{Mean: []float64{1, 1}, Std: []float64{2, 2}}
	in := []float64{3, 5}

	if _, err := params.Transform(in); err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if in[0] != 3 || in[1] != 5 {
		t.Errorf("input mutated: %v", in)
	}
}

func TestScalerParams_TransformWidthMismatch(t *testing.T) {
	params := ScalerParams{Mean: []float64{0, 0}, Std: []float64{1, 1}}
	_, err := params.Transform([]float64{1, 2, 3})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Transform() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestScalerParams_TransformAll(t *testing.T) {
	matrix := [][]float64{{0}, {2}}
	params, err := FitScaler(matrix)
	if err != nil {
		t.Fatalf("FitScaler() error = %v", err)
	}

	scaled, err := params.TransformAll(matrix)
	if err != nil {
		t.Fatalf("TransformAll() error = %v", err)
	}
	if !almostEqual(scaled[0][0], -1) || !almostEqual(scaled[1][0], 1) {
		t.Errorf("TransformAll() = %v, want [[-1] [1]]", scaled)
	}
}
