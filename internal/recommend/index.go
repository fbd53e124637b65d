// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package recommend

import (
	"github.com/tomtom215/rallypoint/internal/recommend/features"
	"github.com/tomtom215/rallypoint/internal/recommend/storage"
)

// UnassignedCluster marks roster profiles without a persisted assignment.
const UnassignedCluster = -1

// RecommendationIndex groups roster profiles by persisted cluster.
// It is immutable after construction.
type RecommendationIndex struct {
	byCluster  map[int][]PlayerSummary
	size       int
	unassigned int
}

// NewRecommendationIndex joins the roster with the persisted assignments.
// Roster order is preserved within each cluster; profiles whose id has no
// assignment fall into UnassignedCluster.
func NewRecommendationIndex(roster []features.Profile, assignments []storage.Assignment) *RecommendationIndex {
	clusterOf := make(map[string]int, len(assignments))
	for _, a := range assignments {
		clusterOf[a.ID] = a.Cluster
	}

	idx := &RecommendationIndex{
		byCluster: make(map[int][]PlayerSummary),
		size:      len(roster),
	}
	for i := range roster {
		p := &roster[i]
		cluster, ok := clusterOf[p.ID]
		if !ok {
			cluster = UnassignedCluster
			idx.unassigned++
		}
		idx.byCluster[cluster] = append(idx.byCluster[cluster], PlayerSummary{
			ID:                  p.ID,
			Level:               p.Level,
			Rank:                p.Rank,
			MaxBudgetPerSession: p.MaxBudgetPerSession,
		})
	}
	return idx
}

// Recommend returns up to limit profiles of clusterID in roster order.
// The result is never nil and never padded.
func (x *RecommendationIndex) Recommend(clusterID, limit int) []PlayerSummary {
	members := x.byCluster[clusterID]
	if limit > len(members) {
		limit = len(members)
	}
	if limit < 0 {
		limit = 0
	}

	out := make([]PlayerSummary, limit)
	copy(out, members[:limit])
	return out
}

// Len returns the roster size.
func (x *RecommendationIndex) Len() int {
	return x.size
}

// Unassigned returns the number of roster profiles without a cluster.
func (x *RecommendationIndex) Unassigned() int {
	return x.unassigned
}

// ClusterSizes returns the number of roster profiles per cluster.
func (x *RecommendationIndex) ClusterSizes() map[int]int {
	sizes := make(map[int]int, len(x.byCluster))
	for c, members := range x.byCluster {
		sizes[c] = len(members)
	}
	return sizes
}
