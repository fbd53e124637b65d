// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package features

import "sort"

// NumericWidth is the number of leading numeric columns in every vector.
const NumericWidth = 4

// Category field names, used for metrics labels and error details.
const (
	FieldServices  = "desiredServices"
	FieldGoals     = "goals"
	FieldLanguages = "languages"
)

// Vocabulary holds the ordered distinct terms of each multi-valued field.
type Vocabulary struct {
	Services  []string `json:"services"`
	Goals     []string `json:"goals"`
	Languages []string `json:"languages"`
}

// FitVocabulary collects the distinct terms of each field across profiles,
// sorted lexicographically so the result does not depend on row order.
func FitVocabulary(profiles []Profile) Vocabulary {
	services := make(map[string]struct{})
	goals := make(map[string]struct{})
	languages := make(map[string]struct{})

	for i := range profiles {
		addTerms(services, profiles[i].DesiredServices)
		addTerms(goals, profiles[i].Goals)
		addTerms(languages, profiles[i].Languages)
	}

	return Vocabulary{
		Services:  sortedTerms(services),
		Goals:     sortedTerms(goals),
		Languages: sortedTerms(languages),
	}
}

// Width returns the vector width this vocabulary produces.
func (v *Vocabulary) Width() int {
	return NumericWidth + len(v.Services) + len(v.Goals) + len(v.Languages)
}

// Columns returns a label per vector column, e.g. "goals=fitness".
func (v *Vocabulary) Columns() []string {
	cols := make([]string, 0, v.Width())
	cols = append(cols, "rank", "maxBudgetPerSession", "travelDistance", "level")
	for _, s := range v.Services {
		cols = append(cols, FieldServices+"="+s)
	}
	for _, g := range v.Goals {
		cols = append(cols, FieldGoals+"="+g)
	}
	for _, l := range v.Languages {
		cols = append(cols, FieldLanguages+"="+l)
	}
	return cols
}

// Unknown reports, per field, the profile values this vocabulary will drop.
// Fields with no unknown values are omitted.
func (v *Vocabulary) Unknown(p *Profile) map[string][]string {
	var out map[string][]string
	add := func(field string, vocab, values []string) {
		if u := UnknownValues(vocab, values); len(u) > 0 {
			if out == nil {
				out = make(map[string][]string, 3)
			}
			out[field] = u
		}
	}
	add(FieldServices, v.Services, p.DesiredServices)
	add(FieldGoals, v.Goals, p.Goals)
	add(FieldLanguages, v.Languages, p.Languages)
	return out
}

func addTerms(set map[string]struct{}, values []string) {
	for _, v := range values {
		set[v] = struct{}{}
	}
}

func sortedTerms(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for term := range set {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}
