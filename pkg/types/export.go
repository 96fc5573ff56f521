// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the health-convert pipeline:
// the export file catalog entries, per-file conversion results, and stage
// configuration.
package types

// FileKind distinguishes the two converter variants.
type FileKind string

const (
	KindMetric  FileKind = "metric"
	KindWorkout FileKind = "workout"
)

// WorkoutUnit is the sentinel unit marking the workout export in the catalog.
const WorkoutUnit = "workout"

// ExportFile is one entry of the file-unit catalog.
type ExportFile struct {
	// Name is the file name, identical for source and output (e.g. "heart_rate.csv").
	Name string `json:"name" yaml:"name"`

	// Unit is the constant unit attached to every metric row, or WorkoutUnit.
	Unit string `json:"unit" yaml:"unit"`
}

// Kind reports which converter handles the file.
func (f ExportFile) Kind() FileKind {
	if f.Unit == WorkoutUnit {
		return KindWorkout
	}
	return KindMetric
}

// ConversionStatus is the outcome of converting one export file.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// FileResult records what happened to one export file during a run.
type FileResult struct {
	// Source is the input path that was read (or looked for).
	Source string `json:"source" yaml:"source"`

	// Output is the written path. Empty unless Status is ConversionDone.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	Kind FileKind `json:"kind" yaml:"kind"`

	// Unit is the metric unit; empty for workouts.
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`

	Status ConversionStatus `json:"status" yaml:"status"`

	// Rows is the number of data rows written.
	Rows int `json:"rows" yaml:"rows"`

	// RawTimestamps counts rows whose timestamp could not be parsed and was
	// copied verbatim from startDate.
	RawTimestamps int `json:"raw_timestamps,omitempty" yaml:"raw_timestamps,omitempty"`

	// Columns lists the output header, in order.
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`

	// Message explains a skip or failure.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}
