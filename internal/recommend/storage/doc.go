// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

// Package storage persists versioned segmentation bundles.
//
// A bundle is the triple produced by one training run: the feature
// vocabulary, the scaler parameters and the cluster centroids. The triple is
// always written and read as a single file so a reader can never observe a
// vocabulary from one run next to centroids from another.
//
// # Storage Format
//
// Each version N is stored as two files in the artifact directory:
//
//	assignments_vN.json   id -> cluster table of the training profiles
//	bundle_vN.gob.gz      gob-encoded bundle, gzip-compressed, SHA-256 checked
//
// The assignments file is written first. Both files are written to a
// temporary name, synced and renamed, so the bundle file appearing under its
// final name marks version N as complete. Directory scans only consider
// bundle files.
//
// # Validation
//
// Load verifies the checksum and the bundle dimensions:
//
//	len(mean) == len(std) == 4 + |services| + |goals| + |languages| == len(centroid)
//
// Any disagreement is reported as a *DimensionMismatchError, which matches
// ErrDimensionMismatch with errors.Is.
//
// # Thread Safety
//
// Store methods are safe for concurrent use. Bundles returned by Load are
// owned by the caller and are not shared with the store.
package storage
