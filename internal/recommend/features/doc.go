// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

// Package features turns player profiles into fixed-width numeric vectors.
//
// A feature vector is laid out as:
//
//	[rank, maxBudgetPerSession, travelDistance, levelOrdinal]
//	  ++ multi-hot(desiredServices)
//	  ++ multi-hot(goals)
//	  ++ multi-hot(languages)
//
// The multi-hot block widths and bit order come from a Vocabulary learned
// once at training time. The same Vocabulary is persisted with the model
// and reused at serving time, so a serving vector always has the width and
// column order the scaler and centroids were fit on.
//
// # Unknown Values
//
// Category values that are not in the vocabulary encode to zero bits and
// never widen the vector. Levels outside the ordinal table encode as 1.
// Neither case is an error; callers that want visibility can use
// UnknownValues.
//
// # Thread Safety
//
// Every function in this package is pure. A Vocabulary must not be mutated
// after it is fitted; sharing it across goroutines is then safe.
package features
