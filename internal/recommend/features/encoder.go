// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package features

// Skill levels in ascending order.
const (
	LevelBeginner     = "beginner"
	LevelRecreational = "recreational"
	LevelHighSchool   = "high school player"
	LevelCollege      = "college player"
	LevelTournament   = "tournament player"
	LevelProfessional = "professional"
)

// DefaultLevelOrdinal is used for any level outside the table.
const DefaultLevelOrdinal = 1

var levelOrdinals = map[string]int{
	LevelBeginner:     1,
	LevelRecreational: 2,
	LevelHighSchool:   3,
	LevelCollege:      4,
	LevelTournament:   5,
	LevelProfessional: 6,
}

// Levels returns the recognized skill levels in ordinal order.
func Levels() []string {
	return []string{
		LevelBeginner,
		LevelRecreational,
		LevelHighSchool,
		LevelCollege,
		LevelTournament,
		LevelProfessional,
	}
}

// LevelOrdinal maps a skill level to 1..6. Matching is exact.
func LevelOrdinal(level string) int {
	if ord, ok := levelOrdinals[level]; ok {
		return ord
	}
	return DefaultLevelOrdinal
}

// IsKnownLevel reports whether level is in the ordinal table.
func IsKnownLevel(level string) bool {
	_, ok := levelOrdinals[level]
	return ok
}

// EncodeMultiHot returns one bit per vocabulary entry, in vocabulary order.
// Values absent from the vocabulary are ignored. Duplicates set the same bit.
func EncodeMultiHot(vocab, values []string) []float64 {
	out := make([]float64, len(vocab))
	if len(values) == 0 || len(vocab) == 0 {
		return out
	}

	present := make(map[string]struct{}, len(values))
	for _, v := range values {
		present[v] = struct{}{}
	}
	for i, term := range vocab {
		if _, ok := present[term]; ok {
			out[i] = 1
		}
	}
	return out
}

// UnknownValues returns the distinct values not present in vocab, in first-seen order.
func UnknownValues(vocab, values []string) []string {
	if len(values) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(vocab))
	for _, term := range vocab {
		known[term] = struct{}{}
	}

	var unknown []string
	seen := make(map[string]struct{})
	for _, v := range values {
		if _, ok := known[v]; ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		unknown = append(unknown, v)
	}
	return unknown
}
