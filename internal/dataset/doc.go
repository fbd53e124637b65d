// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

/*
Package dataset loads the player roster used for training and for
recommendation lookups.

Two sources are available:

  - JSONFileSource reads a JSON array of player profiles.
  - DuckDBSource runs a SQL query through DuckDB. By default it reads the
    same JSON file with read_json_auto, but any query returning the profile
    columns works, including one over a persistent DuckDB table.

Both sources return profiles in row order. Row order matters: the
recommendation index lists cluster members in dataset order.
*/
package dataset
