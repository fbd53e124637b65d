// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package algorithms

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

// blobs returns n points around each of the given centers.
func blobs(centers [][]float64, n int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	var rows [][]float64
	for _, c := range centers {
		for i := 0; i < n; i++ {
			row := make([]float64, len(c))
			for j := range c {
				row[j] = c[j] + rng.NormFloat64()*0.3
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func TestDefaultKMeansConfig(t *testing.T) {
	cfg := DefaultKMeansConfig()
	if cfg.K != 4 || cfg.Seed != 42 {
		t.Errorf("DefaultKMeansConfig() = %+v, want K=4 Seed=42", cfg)
	}
	if cfg.MaxIterations <= 0 {
		t.Errorf("MaxIterations = %d, want > 0", cfg.MaxIterations)
	}
}

func TestClusterModel_Assign(t *testing.T) {
	m := ClusterModel{Centroids: [][]float64{
		{0, 0, 0, 0},
		{5, 5, 5, 5},
	}}

	tests := []struct {
		name string
		vec  []float64
		want int
	}{
		{"near second centroid", []float64{4.9, 4.9, 5, 5}, 1},
		{"near first centroid", []float64{0.1, -0.2, 0, 0.3}, 0},
		{"equidistant goes to lowest index", []float64{2.5, 2.5, 2.5, 2.5}, 0},
		{"overflowing distances go to lowest index", []float64{1e200, 0, 0, 0}, 0},
		{"wrong width", []float64{1, 2}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Assign(tt.vec); got != tt.want {
				t.Errorf("Assign(%v) = %d, want %d", tt.vec, got, tt.want)
			}
		})
	}
}

func TestClusterModel_AssignTieBreak(t *testing.T) {
	m := ClusterModel{Centroids: [][]float64{{2}, {0}, {2}}}
	if got := m.Assign([]float64{1}); got != 0 {
		t.Errorf("Assign() = %d, want 0", got)
	}
	if got := m.Assign([]float64{2}); got != 0 {
		t.Errorf("Assign() on duplicate centroids = %d, want 0", got)
	}
}

func TestClusterModel_AssignEmpty(t *testing.T) {
	var m ClusterModel
	if got := m.Assign([]float64{1}); got != -1 {
		t.Errorf("Assign() on empty model = %d, want -1", got)
	}
	if m.Dim() != 0 || m.K() != 0 {
		t.Errorf("empty model K=%d Dim=%d", m.K(), m.Dim())
	}
}

func TestFitKMeans_SeparatesBlobs(t *testing.T) {
	tests := []struct {
		name    string
		centers [][]float64
		init    InitMethod
	}{
		{"random two blobs", [][]float64{{0, 0}, {10, 10}}, InitRandom},
		{"kmeans++ four blobs", [][]float64{{0, 0}, {10, 10}, {-10, 10}, {10, -10}}, InitKMeansPlusPlus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const perBlob = 20
			matrix := blobs(tt.centers, perBlob, 7)
			res, err := FitKMeans(context.Background(), matrix, KMeansConfig{
				K: len(tt.centers), Seed: 42, MaxIterations: 100, Init: tt.init,
			})
			if err != nil {
				t.Fatalf("FitKMeans() error = %v", err)
			}
			if res.Model.K() != len(tt.centers) || res.Model.Dim() != 2 {
				t.Fatalf("model K=%d Dim=%d", res.Model.K(), res.Model.Dim())
			}

			seen := make(map[int]bool)
			for b := range tt.centers {
				first := res.Labels[b*perBlob]
				if seen[first] {
					t.Errorf("blob %d shares cluster %d with another blob", b, first)
				}
				seen[first] = true
				for i := b * perBlob; i < (b+1)*perBlob; i++ {
					if res.Labels[i] != first {
						t.Errorf("blob %d split across clusters", b)
						break
					}
				}
			}
			if !res.Converged {
				t.Errorf("did not converge in %d iterations", res.Iterations)
			}
		})
	}
}

func TestFitKMeans_InertiaNonIncreasing(t *testing.T) {
	matrix := blobs([][]float64{{0, 0, 0}, {3, 3, 3}, {6, 0, 3}}, 30, 11)

	res, err := FitKMeans(context.Background(), matrix, KMeansConfig{K: 4, Seed: 3, MaxIterations: 50})
	if err != nil {
		t.Fatalf("FitKMeans() error = %v", err)
	}
	if len(res.History) != res.Iterations {
		t.Fatalf("len(History) = %d, want %d", len(res.History), res.Iterations)
	}
	for i := 1; i < len(res.History); i++ {
		if res.History[i] > res.History[i-1]+1e-9 {
			t.Errorf("inertia increased at iteration %d: %v -> %v", i+1, res.History[i-1], res.History[i])
		}
	}
	if res.Inertia != res.History[len(res.History)-1] {
		t.Errorf("Inertia = %v, want last history entry %v", res.Inertia, res.History[len(res.History)-1])
	}
}

func TestFitKMeans_LabelsMatchAssign(t *testing.T) {
	matrix := blobs([][]float64{{0, 0}, {4, 4}}, 15, 5)

	for _, maxIter := range []int{1, 2, 100} {
		res, err := FitKMeans(context.Background(), matrix, KMeansConfig{K: 3, Seed: 42, MaxIterations: maxIter})
		if err != nil {
			t.Fatalf("FitKMeans() error = %v", err)
		}
		for i, row := range matrix {
			if got := res.Model.Assign(row); got != res.Labels[i] {
				t.Errorf("maxIter=%d row %d: Assign() = %d, label = %d", maxIter, i, got, res.Labels[i])
			}
		}
	}
}

func TestFitKMeans_Deterministic(t *testing.T) {
	matrix := blobs([][]float64{{0, 0}, {5, 5}, {0, 5}}, 10, 1)
	cfg := KMeansConfig{K: 4, Seed: 42, MaxIterations: 300}

	a, err := FitKMeans(context.Background(), matrix, cfg)
	if err != nil {
		t.Fatalf("FitKMeans() error = %v", err)
	}
	b, err := FitKMeans(context.Background(), matrix, cfg)
	if err != nil {
		t.Fatalf("FitKMeans() error = %v", err)
	}

	if !reflect.DeepEqual(a.Model.Centroids, b.Model.Centroids) {
		t.Error("centroids differ between runs with the same seed")
	}
	if !reflect.DeepEqual(a.Labels, b.Labels) {
		t.Error("labels differ between runs with the same seed")
	}
}

func TestFitKMeans_ClusterSizes(t *testing.T) {
	matrix := blobs([][]float64{{0}, {10}}, 8, 2)
	res, err := FitKMeans(context.Background(), matrix, KMeansConfig{K: 2, Seed: 42, MaxIterations: 20})
	if err != nil {
		t.Fatalf("FitKMeans() error = %v", err)
	}

	total := 0
	for _, n := range res.ClusterSizes {
		total += n
	}
	if total != len(matrix) {
		t.Errorf("sum(ClusterSizes) = %d, want %d", total, len(matrix))
	}
}

func TestFitKMeans_DuplicateRows(t *testing.T) {
	matrix := [][]float64{{1, 1}, {1, 1}, {1, 1}, {2, 2}}

	res, err := FitKMeans(context.Background(), matrix, KMeansConfig{K: 4, Seed: 42, MaxIterations: 10})
	if err != nil {
		t.Fatalf("FitKMeans() error = %v", err)
	}
	if res.Model.K() != 4 {
		t.Errorf("K() = %d, want 4", res.Model.K())
	}
	if res.Inertia != 0 {
		t.Errorf("Inertia = %v, want 0", res.Inertia)
	}
}

func TestFitKMeans_EmptyClusterKeepsCentroid(t *testing.T) {
	prev := [][]float64{{0}, {100}}
	next := updateCentroids([][]float64{{1}, {3}}, []int{0, 0}, prev)

	if next[0][0] != 2 {
		t.Errorf("centroid 0 = %v, want 2", next[0][0])
	}
	if next[1][0] != 100 {
		t.Errorf("empty centroid moved to %v, want 100", next[1][0])
	}
}

func TestFitKMeans_Errors(t *testing.T) {
	ok := [][]float64{{1}, {2}, {3}}

	tests := []struct {
		name    string
		matrix  [][]float64
		cfg     KMeansConfig
		wantErr error
	}{
		{"zero k", ok, KMeansConfig{K: 0, MaxIterations: 10}, ErrInvalidConfig},
		{"zero iterations", ok, KMeansConfig{K: 2}, ErrInvalidConfig},
		{"unknown init", ok, KMeansConfig{K: 2, MaxIterations: 10, Init: "bogus"}, ErrInvalidConfig},
		{"fewer rows than k", ok, KMeansConfig{K: 4, MaxIterations: 10}, ErrInsufficientData},
		{"empty matrix", nil, KMeansConfig{K: 1, MaxIterations: 10}, ErrInsufficientData},
		{"ragged matrix", [][]float64{{1}, {2, 3}}, KMeansConfig{K: 1, MaxIterations: 10}, ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitKMeans(context.Background(), tt.matrix, tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FitKMeans() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFitKMeans_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FitKMeans(ctx, [][]float64{{1}, {2}}, KMeansConfig{K: 1, MaxIterations: 10})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("FitKMeans() error = %v, want context.Canceled", err)
	}
}
