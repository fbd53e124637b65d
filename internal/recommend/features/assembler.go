// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package features

// Assemble builds the feature vector for p using vocab. It is pure and
// deterministic; the result always has length vocab.Width().
func Assemble(p *Profile, vocab *Vocabulary) []float64 {
	vec := make([]float64, 0, vocab.Width())
	vec = append(vec,
		p.Rank,
		p.MaxBudgetPerSession,
		p.TravelDistance,
		float64(LevelOrdinal(p.Level)),
	)
	vec = append(vec, EncodeMultiHot(vocab.Services, p.DesiredServices)...)
	vec = append(vec, EncodeMultiHot(vocab.Goals, p.Goals)...)
	vec = append(vec, EncodeMultiHot(vocab.Languages, p.Languages)...)
	return vec
}

// AssembleAll builds one row per profile, in input order.
func AssembleAll(profiles []Profile, vocab *Vocabulary) [][]float64 {
	rows := make([][]float64, len(profiles))
	for i := range profiles {
		rows[i] = Assemble(&profiles[i], vocab)
	}
	return rows
}
