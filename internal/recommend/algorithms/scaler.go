// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package algorithms

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// machineEpsilon is the float64 unit roundoff.
const machineEpsilon = 2.220446049250313e-16

// ScalerParams holds per-column standardization parameters.
//
// Std is the population standard deviation (ddof=0). Columns whose spread is
// numerically zero store a Std of 1, so they transform to (x - mean).
type ScalerParams struct {
	Mean []float64
	Std  []float64
}

// FitScaler computes column means and population standard deviations.
func FitScaler(matrix [][]float64) (ScalerParams, error) {
	width, err := matrixWidth(matrix)
	if err != nil {
		return ScalerParams{}, err
	}

	params := ScalerParams{
		Mean: make([]float64, width),
		Std:  make([]float64, width),
	}

	column := make([]float64, len(matrix))
	for j := 0; j < width; j++ {
		for i, row := range matrix {
			column[i] = row[j]
		}
		mean, std := stat.PopMeanStdDev(column, nil)
		if isDegenerateScale(std, mean) {
			std = 1
		}
		params.Mean[j] = mean
		params.Std[j] = std
	}

	return params, nil
}

// isDegenerateScale reports whether std is indistinguishable from zero
// relative to the column magnitude.
func isDegenerateScale(std, mean float64) bool {
	if std == 0 || math.IsNaN(std) {
		return true
	}
	return std < 10*machineEpsilon*math.Max(math.Abs(mean), 1)
}

// Width returns the vector width the parameters were fit on.
func (p *ScalerParams) Width() int {
	return len(p.Mean)
}

// Transform returns (x - mean) / std for each column. The input is not modified.
func (p *ScalerParams) Transform(vec []float64) ([]float64, error) {
	if len(vec) != len(p.Mean) || len(p.Std) != len(p.Mean) {
		return nil, fmt.Errorf("%w: scaler width %d, vector width %d",
			ErrDimensionMismatch, len(p.Mean), len(vec))
	}

	out := make([]float64, len(vec))
	floats.SubTo(out, vec, p.Mean)
	floats.Div(out, p.Std)
	return out, nil
}

// TransformAll scales every row of matrix.
func (p *ScalerParams) TransformAll(matrix [][]float64) ([][]float64, error) {
	out := make([][]float64, len(matrix))
	for i, row := range matrix {
		scaled, err := p.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = scaled
	}
	return out, nil
}
