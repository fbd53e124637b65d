// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package models

import (
	"github.com/tomtom215/rallypoint/internal/recommend/features"
)

// ProfileRequest is the body of a single prediction.
//
// Numbers default to 0 when absent. The lists must be present but may be empty.
type ProfileRequest struct {
	Level               string   `json:"level" validate:"required"`
	Rank                float64  `json:"rank" validate:"gte=0"`
	MaxBudgetPerSession float64  `json:"maxBudgetPerSession" validate:"gte=0"`
	TravelDistance      float64  `json:"travelDistance" validate:"gte=0"`
	DesiredServices     []string `json:"desiredServices" validate:"required"`
	Goals               []string `json:"goals" validate:"required"`
	Languages           []string `json:"languages" validate:"required"`
}

// Profile converts the request into a feature profile.
func (r *ProfileRequest) Profile() features.Profile {
	p := features.Profile{
		Level:               r.Level,
		Rank:                r.Rank,
		MaxBudgetPerSession: r.MaxBudgetPerSession,
		TravelDistance:      r.TravelDistance,
		DesiredServices:     r.DesiredServices,
		Goals:               r.Goals,
		Languages:           r.Languages,
	}
	return p.Clone()
}

// BatchRecord is one element of a batch prediction body.
type BatchRecord struct {
	ID                  string   `json:"id" validate:"notblank"`
	Level               string   `json:"level" validate:"required"`
	Rank                float64  `json:"rank" validate:"gte=0"`
	MaxBudgetPerSession float64  `json:"maxBudgetPerSession" validate:"gte=0"`
	TravelDistance      float64  `json:"travelDistance" validate:"gte=0"`
	DesiredServices     []string `json:"desiredServices" validate:"required"`
	Goals               []string `json:"goals" validate:"required"`
	Languages           []string `json:"languages" validate:"required"`
}

// Profile converts the record into a feature profile carrying its id.
func (r *BatchRecord) Profile() features.Profile {
	p := features.Profile{
		ID:                  r.ID,
		Level:               r.Level,
		Rank:                r.Rank,
		MaxBudgetPerSession: r.MaxBudgetPerSession,
		TravelDistance:      r.TravelDistance,
		DesiredServices:     r.DesiredServices,
		Goals:               r.Goals,
		Languages:           r.Languages,
	}
	return p.Clone()
}

// PlayerRequest is the body of a player registration.
type PlayerRequest struct {
	ID                  string   `json:"id,omitempty" validate:"omitempty,max=128"`
	Name                string   `json:"name" validate:"notblank,max=100"`
	Level               string   `json:"level" validate:"required,skilllevel"`
	Rank                float64  `json:"rank" validate:"gte=0,lte=100"`
	MaxBudgetPerSession float64  `json:"maxBudgetPerSession" validate:"gte=0"`
	TravelDistance      float64  `json:"travelDistance" validate:"gte=0"`
	DesiredServices     []string `json:"desiredServices" validate:"max=64,dive,notblank"`
	Goals               []string `json:"goals" validate:"max=64,dive,notblank"`
	Languages           []string `json:"languages" validate:"max=64,dive,notblank"`
}

// Profile converts the request into a registry profile. Missing lists become empty.
func (r *PlayerRequest) Profile() features.Profile {
	p := features.Profile{
		ID:                  r.ID,
		Name:                r.Name,
		Level:               r.Level,
		Rank:                r.Rank,
		MaxBudgetPerSession: r.MaxBudgetPerSession,
		TravelDistance:      r.TravelDistance,
		DesiredServices:     nonNil(r.DesiredServices),
		Goals:               nonNil(r.Goals),
		Languages:           nonNil(r.Languages),
	}
	return p.Clone()
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
