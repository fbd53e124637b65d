// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package algorithms

import (
	"context"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// InitMethod selects how initial centroids are chosen.
type InitMethod string

const (
	// InitRandom samples K distinct rows with a seeded permutation.
	InitRandom InitMethod = "random"

	// InitKMeansPlusPlus uses seeded k-means++ (D² weighting).
	InitKMeansPlusPlus InitMethod = "kmeans++"
)

// KMeansConfig configures FitKMeans.
type KMeansConfig struct {
	// K is the number of clusters.
	K int

	// Seed makes initialization reproducible.
	Seed int64

	// MaxIterations caps the number of Lloyd iterations.
	MaxIterations int

	// Init selects the initialization method (default random).
	Init InitMethod
}

// DefaultKMeansConfig returns the production clustering configuration.
func DefaultKMeansConfig() KMeansConfig {
	return KMeansConfig{
		K:             4,
		Seed:          42,
		MaxIterations: 300,
		Init:          InitRandom,
	}
}

// ClusterModel is a set of fitted centroids. The cluster id is the centroid index.
type ClusterModel struct {
	Centroids [][]float64
}

// K returns the number of clusters.
func (m *ClusterModel) K() int {
	return len(m.Centroids)
}

// Dim returns the centroid width, or 0 when the model is empty.
func (m *ClusterModel) Dim() int {
	if len(m.Centroids) == 0 {
		return 0
	}
	return len(m.Centroids[0])
}

// Assign returns the index of the nearest centroid by squared Euclidean
// distance. Ties go to the lowest index. Returns -1 for an empty model or
// when the vector width differs from the centroid width.
func (m *ClusterModel) Assign(vec []float64) int {
	if len(m.Centroids) == 0 || len(vec) != m.Dim() {
		return -1
	}
	best, _ := nearest(vec, m.Centroids, make([]float64, len(vec)))
	return best
}

// KMeansResult is the outcome of a FitKMeans run.
type KMeansResult struct {
	Model ClusterModel

	// Labels holds the cluster of each input row, equal to Model.Assign(row).
	Labels []int

	// Inertia is the total within-cluster squared distance of the final labels.
	Inertia float64

	// Iterations is the number of assignment passes performed.
	Iterations int

	// Converged is true when the last pass changed no labels.
	Converged bool

	// History records the inertia of each assignment pass. It is non-increasing.
	History []float64

	// ClusterSizes counts rows per cluster.
	ClusterSizes []int
}

// FitKMeans clusters the rows of matrix with Lloyd's algorithm.
func FitKMeans(ctx context.Context, matrix [][]float64, cfg KMeansConfig) (*KMeansResult, error) {
	if cfg.K < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", ErrInvalidConfig, cfg.K)
	}
	if cfg.MaxIterations < 1 {
		return nil, fmt.Errorf("%w: max iterations must be at least 1, got %d", ErrInvalidConfig, cfg.MaxIterations)
	}
	width, err := matrixWidth(matrix)
	if err != nil {
		return nil, err
	}
	if len(matrix) < cfg.K {
		return nil, fmt.Errorf("%w: %d rows for %d clusters", ErrInsufficientData, len(matrix), cfg.K)
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducibility, not security

	var centroids [][]float64
	switch cfg.Init {
	case InitKMeansPlusPlus:
		centroids = initPlusPlus(matrix, cfg.K, rng)
	case InitRandom, "":
		centroids = initRandom(matrix, cfg.K, rng)
	default:
		return nil, fmt.Errorf("%w: unknown init method %q", ErrInvalidConfig, cfg.Init)
	}

	result := &KMeansResult{
		Labels:  make([]int, len(matrix)),
		History: make([]float64, 0, cfg.MaxIterations),
	}
	for i := range result.Labels {
		result.Labels[i] = -1
	}

	scratch := make([]float64, width)
	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		changed := 0
		inertia := 0.0
		for i, row := range matrix {
			label, dist := nearest(row, centroids, scratch)
			if label != result.Labels[i] {
				result.Labels[i] = label
				changed++
			}
			inertia += dist
		}

		result.Iterations = iter
		result.Inertia = inertia
		result.History = append(result.History, inertia)

		if changed == 0 {
			result.Converged = true
			break
		}
		if iter == cfg.MaxIterations {
			break
		}

		centroids = updateCentroids(matrix, result.Labels, centroids)
	}

	result.Model = ClusterModel{Centroids: centroids}
	result.ClusterSizes = make([]int, cfg.K)
	for _, label := range result.Labels {
		result.ClusterSizes[label]++
	}

	return result, nil
}

// nearest returns the closest centroid index and its squared distance.
// centroids must be non-empty and scratch must have the vector's length.
// Distances that overflow to +Inf (or NaN) never beat an earlier centroid,
// so the lowest index wins.
func nearest(vec []float64, centroids [][]float64, scratch []float64) (int, float64) {
	best := 0
	bestDist := squaredDistance(vec, centroids[0], scratch)
	for c := 1; c < len(centroids); c++ {
		if d := squaredDistance(vec, centroids[c], scratch); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

// squaredDistance computes ||a-b||² using scratch as the difference buffer.
func squaredDistance(a, b, scratch []float64) float64 {
	floats.SubTo(scratch, a, b)
	return floats.Dot(scratch, scratch)
}

// updateCentroids recomputes each centroid as the mean of its rows.
// A cluster with no rows keeps its previous centroid.
func updateCentroids(matrix [][]float64, labels []int, previous [][]float64) [][]float64 {
	k := len(previous)
	width := len(previous[0])

	sums := make([][]float64, k)
	counts := make([]int, k)
	for c := range sums {
		sums[c] = make([]float64, width)
	}
	for i, row := range matrix {
		floats.Add(sums[labels[i]], row)
		counts[labels[i]]++
	}

	next := make([][]float64, k)
	for c := range next {
		if counts[c] == 0 {
			next[c] = append([]float64(nil), previous[c]...)
			continue
		}
		floats.Scale(1/float64(counts[c]), sums[c])
		next[c] = sums[c]
	}
	return next
}

// initRandom picks K rows in seeded permutation order, preferring rows whose
// values differ from those already chosen.
func initRandom(matrix [][]float64, k int, rng *rand.Rand) [][]float64 {
	perm := rng.Perm(len(matrix))
	chosen := make([]int, 0, k)
	used := make([]bool, len(matrix))

	for _, idx := range perm {
		if len(chosen) == k {
			break
		}
		if containsRow(matrix, chosen, matrix[idx]) {
			continue
		}
		chosen = append(chosen, idx)
		used[idx] = true
	}
	// Fewer distinct rows than K: fill with duplicates in permutation order.
	for _, idx := range perm {
		if len(chosen) == k {
			break
		}
		if !used[idx] {
			chosen = append(chosen, idx)
			used[idx] = true
		}
	}

	centroids := make([][]float64, k)
	for c, idx := range chosen {
		centroids[c] = append([]float64(nil), matrix[idx]...)
	}
	return centroids
}

// initPlusPlus runs seeded k-means++ seeding.
func initPlusPlus(matrix [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(matrix)
	width := len(matrix[0])
	scratch := make([]float64, width)

	centroids := make([][]float64, 0, k)
	used := make([]bool, n)

	first := rng.Intn(n)
	centroids = append(centroids, append([]float64(nil), matrix[first]...))
	used[first] = true

	dist := make([]float64, n)
	for i, row := range matrix {
		dist[i] = squaredDistance(row, centroids[0], scratch)
	}

	for len(centroids) < k {
		total := floats.Sum(dist)
		next := -1
		if total > 0 {
			target := rng.Float64() * total
			acc := 0.0
			for i, d := range dist {
				acc += d
				if d > 0 && acc >= target {
					next = i
					break
				}
			}
		}
		if next < 0 {
			// All remaining rows coincide with a centroid.
			for i := range used {
				if !used[i] {
					next = i
					break
				}
			}
		}

		used[next] = true
		centroid := append([]float64(nil), matrix[next]...)
		centroids = append(centroids, centroid)
		for i, row := range matrix {
			if d := squaredDistance(row, centroid, scratch); d < dist[i] {
				dist[i] = d
			}
		}
	}

	return centroids
}

func containsRow(matrix [][]float64, indices []int, row []float64) bool {
	for _, idx := range indices {
		if floats.Equal(matrix[idx], row) {
			return true
		}
	}
	return false
}
