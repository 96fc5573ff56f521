// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"

	"github.com/pdiddy/health-convert/internal/tabular"
	"github.com/pdiddy/health-convert/internal/timestamp"
	"github.com/pdiddy/health-convert/pkg/types"
)

// Source column names in metric exports. Matched exactly.
const (
	colStartDate = "startDate"
	colEndDate   = "endDate"
	colValue     = "value"
)

// MetricColumns is the header of every converted metric file.
var MetricColumns = []string{"timestamp", "value", "unit"}

// Projection turns a parsed export into the rows of a converted file.
// The metric and workout exports use different implementations.
type Projection interface {
	Project(src *tabular.Table) (*Output, error)
}

// Output is a converted table ready to be written.
type Output struct {
	Header []string
	Rows   [][]string

	// RawTimestamps counts timestamp fields copied verbatim because they did
	// not parse.
	RawTimestamps int
}

// MissingColumnsError reports required source columns absent from a header.
// The file is skipped rather than failed.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing expected columns: " + strings.Join(e.Columns, ", ")
}

// MetricProjection projects a single-measurement export to
// (timestamp, value, unit). The timestamp is the midpoint of startDate and
// endDate, or startDate verbatim when either end does not parse.
type MetricProjection struct {
	Unit string
}

func (m MetricProjection) Project(src *tabular.Table) (*Output, error) {
	if missing := src.Header.Missing(colStartDate, colEndDate, colValue); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	start, _ := src.Header.Index(colStartDate)
	end, _ := src.Header.Index(colEndDate)
	value, _ := src.Header.Index(colValue)

	out := &Output{
		Header: append([]string(nil), MetricColumns...),
		Rows:   make([][]string, 0, len(src.Rows)),
	}
	for _, row := range src.Rows {
		ts, ok := timestamp.MidpointString(row[start], row[end])
		if !ok {
			out.RawTimestamps++
		}
		out.Rows = append(out.Rows, []string{ts, row[value], m.Unit})
	}
	return out, nil
}

// workoutField maps one output column to its source column.
type workoutField struct {
	output    string
	source    string
	timestamp bool
}

// workoutFields lists the workout output columns in output order.
var workoutFields = []workoutField{
	{output: "start_time", source: "startDate", timestamp: true},
	{output: "end_time", source: "endDate", timestamp: true},
	{output: "duration_min", source: "duration"},
	{output: "activity_type", source: "workoutType"},
	{output: "energy_kcal", source: "totalEnergyBurned"},
	{output: "distance_km", source: "totalDistance"},
}

// WorkoutColumns returns every column a converted workout file may carry,
// in output order.
func WorkoutColumns() []string {
	cols := make([]string, len(workoutFields))
	for i, f := range workoutFields {
		cols[i] = f.output
	}
	return cols
}

// WorkoutProjection selects and renames workout columns. Source columns are
// matched case-insensitively; an output column is present only when its
// source column is. Start and end times are normalized to ISO-8601 where
// they parse.
type WorkoutProjection struct{}

func (WorkoutProjection) Project(src *tabular.Table) (*Output, error) {
	idx := src.Header.FoldIndex()

	type selected struct {
		workoutField
		col int
	}
	var fields []selected
	for _, f := range workoutFields {
		if col, ok := idx.Lookup(f.source); ok {
			fields = append(fields, selected{workoutField: f, col: col})
		}
	}

	out := &Output{Header: make([]string, len(fields))}
	for i, f := range fields {
		out.Header[i] = f.output
	}
	if len(fields) == 0 {
		return out, nil
	}

	out.Rows = make([][]string, 0, len(src.Rows))
	for _, row := range src.Rows {
		rec := make([]string, len(fields))
		for i, f := range fields {
			v := row[f.col]
			if f.timestamp {
				var ok bool
				if v, ok = timestamp.Normalize(v); !ok {
					out.RawTimestamps++
				}
			}
			rec[i] = v
		}
		out.Rows = append(out.Rows, rec)
	}
	return out, nil
}

// ProjectionFor returns the projection that handles f.
func ProjectionFor(f types.ExportFile) Projection {
	if f.Kind() == types.KindWorkout {
		return WorkoutProjection{}
	}
	return MetricProjection{Unit: f.Unit}
}
