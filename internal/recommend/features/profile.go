// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package features

// Profile is the input record for both training and prediction.
// Missing numeric fields are zero, which is the training default.
type Profile struct {
	// ID identifies the profile in the training set. Empty for ad-hoc predictions.
	ID string `json:"id,omitempty"`

	// Name is carried for registry listings only and is not a feature.
	Name string `json:"name,omitempty"`

	// Level is one of the ordered skill categories (see LevelOrdinal).
	Level string `json:"level"`

	Rank                float64 `json:"rank"`
	MaxBudgetPerSession float64 `json:"maxBudgetPerSession"`
	TravelDistance      float64 `json:"travelDistance"`

	DesiredServices []string `json:"desiredServices"`
	Goals           []string `json:"goals"`
	Languages       []string `json:"languages"`
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() Profile {
	c := *p
	c.DesiredServices = cloneStrings(p.DesiredServices)
	c.Goals = cloneStrings(p.Goals)
	c.Languages = cloneStrings(p.Languages)
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
