// Rallypoint - Player Segmentation and Matchmaking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rallypoint

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver
	"github.com/goccy/go-json"

	"github.com/tomtom215/rallypoint/internal/recommend/features"
)

// defaultQueryTemplate reads a JSON array of profiles with DuckDB's JSON reader.
// Column order must match scanProfile.
const defaultQueryTemplate = `SELECT
	CAST(id AS VARCHAR),
	COALESCE(CAST(level AS VARCHAR), ''),
	COALESCE(CAST(rank AS DOUBLE), 0),
	COALESCE(CAST("maxBudgetPerSession" AS DOUBLE), 0),
	COALESCE(CAST("travelDistance" AS DOUBLE), 0),
	"desiredServices",
	goals,
	languages
FROM read_json_auto('%s')`

// DuckDBSource loads profiles with a SQL query.
type DuckDBSource struct {
	// DBPath is the database file. Empty or ":memory:" uses an in-memory database.
	DBPath string

	// Path is the JSON file read by the default query.
	Path string

	// Query replaces the default query. It must return, in order: id, level,
	// rank, maxBudgetPerSession, travelDistance, desiredServices, goals, languages.
	// List columns may be VARCHAR[] or JSON-encoded VARCHAR.
	Query string
}

// Name implements Source.
func (s *DuckDBSource) Name() string {
	if s.Query != "" {
		return "duckdb:query"
	}
	return "duckdb:" + s.Path
}

func (s *DuckDBSource) query() string {
	if s.Query != "" {
		return s.Query
	}
	return fmt.Sprintf(defaultQueryTemplate, strings.ReplaceAll(s.Path, "'", "''"))
}

func (s *DuckDBSource) dsn() string {
	if s.DBPath == "" {
		return ":memory:"
	}
	return s.DBPath
}

// Load implements Source.
func (s *DuckDBSource) Load(ctx context.Context) ([]features.Profile, error) {
	conn, err := sql.Open("duckdb", s.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, s.query())
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset: %w", err)
	}
	defer rows.Close()

	var profiles []features.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(profiles), err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dataset rows: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%s: %w", s.Name(), ErrEmptyDataset)
	}
	return profiles, nil
}

func scanProfile(rows *sql.Rows) (features.Profile, error) {
	var (
		p                          features.Profile
		id                         sql.NullString
		services, goals, languages any
	)
	if err := rows.Scan(&id, &p.Level, &p.Rank, &p.MaxBudgetPerSession, &p.TravelDistance,
		&services, &goals, &languages); err != nil {
		return p, fmt.Errorf("failed to scan profile: %w", err)
	}
	p.ID = id.String

	var err error
	if p.DesiredServices, err = toStrings(services); err != nil {
		return p, fmt.Errorf("desiredServices: %w", err)
	}
	if p.Goals, err = toStrings(goals); err != nil {
		return p, fmt.Errorf("goals: %w", err)
	}
	if p.Languages, err = toStrings(languages); err != nil {
		return p, fmt.Errorf("languages: %w", err)
	}
	return p, nil
}

// toStrings converts a scanned list column to a string slice. DuckDB returns
// LIST values as []any; JSON columns arrive as text.
func toStrings(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return []string{}, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if item == nil {
				continue
			}
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list element %v is %T, want string", item, item)
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		return append([]string{}, val...), nil
	case string:
		return decodeJSONList([]byte(val))
	case []byte:
		return decodeJSONList(val)
	default:
		return nil, fmt.Errorf("unsupported list column type %T", v)
	}
}

func decodeJSONList(data []byte) ([]string, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("invalid JSON list: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
