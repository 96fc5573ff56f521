// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pdiddy/health-convert/pkg/types"
)

// SourceStats summarizes the rows ingested from one converted file.
type SourceStats struct {
	Source string         `json:"source" yaml:"source"`
	Kind   types.FileKind `json:"kind" yaml:"kind"`
	Unit   string         `json:"unit,omitempty" yaml:"unit,omitempty"`
	Rows   int            `json:"rows" yaml:"rows"`
	First  string         `json:"first,omitempty" yaml:"first,omitempty"`
	Last   string         `json:"last,omitempty" yaml:"last,omitempty"`
}

// Stats returns per-source row counts and time ranges, ordered by source.
func (s *Store) Stats(ctx context.Context) ([]SourceStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, 'metric', unit, count(*), min(timestamp), max(timestamp)
		 FROM samples GROUP BY source, unit
		 UNION ALL
		 SELECT source, 'workout', '', count(*), min(start_time), max(start_time)
		 FROM workouts GROUP BY source
		 ORDER BY 1, 3`)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	var out []SourceStats
	for rows.Next() {
		var (
			st          SourceStats
			kind        string
			first, last sql.NullString
		)
		if err := rows.Scan(&st.Source, &kind, &st.Unit, &st.Rows, &first, &last); err != nil {
			return nil, fmt.Errorf("scanning stats: %w", err)
		}
		st.Kind = types.FileKind(kind)
		st.First = first.String
		st.Last = last.String
		out = append(out, st)
	}
	return out, rows.Err()
}
