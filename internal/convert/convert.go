// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns tab-delimited health exports into comma-delimited
// files for import elsewhere. Metric exports become (timestamp, value, unit)
// series; the workout export becomes a flattened workout table.
//
// Each export is converted independently. A missing file or missing column
// skips that file, any other error fails it, and neither stops the batch.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/health-convert/internal/tabular"
	"github.com/pdiddy/health-convert/pkg/types"
)

const (
	// DefaultInputDir is where exports are read from.
	DefaultInputDir = "."
	// DefaultOutputDir is where converted files are written.
	DefaultOutputDir = "converted"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Files holds one result per catalog entry, in processing order.
	Files []types.FileResult
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(fr types.FileResult) {
	switch fr.Status {
	case types.ConversionDone:
		r.Converted++
	case types.ConversionSkipped:
		r.Skipped++
	case types.ConversionFailed:
		r.Failed++
	}
	r.Files = append(r.Files, fr)
}

// ConvertFile converts one export with projection p, writing a status line
// to w. The output is written only after the whole file has been projected.
func ConvertFile(p Projection, f types.ExportFile, cfg types.ConversionConfig, w io.Writer) types.FileResult {
	cfg = withDefaults(cfg)
	result := types.FileResult{
		Source: filepath.Join(cfg.InputDir, f.Name),
		Kind:   f.Kind(),
	}
	if result.Kind == types.KindMetric {
		result.Unit = f.Unit
	}

	if _, err := os.Stat(result.Source); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return skip(w, f.Name, result, "not found")
		}
		return fail(w, f.Name, result, err)
	}

	src, err := tabular.ReadFile(result.Source, tabular.Tab)
	if err != nil {
		return fail(w, f.Name, result, err)
	}

	out, err := p.Project(src)
	if err != nil {
		var missing *MissingColumnsError
		if errors.As(err, &missing) {
			return skip(w, f.Name, result, missing.Error())
		}
		return fail(w, f.Name, result, err)
	}

	outPath := filepath.Join(cfg.OutputDir, f.Name)
	if err := tabular.WriteFile(outPath, out.Header, out.Rows); err != nil {
		return fail(w, f.Name, result, err)
	}

	result.Status = types.ConversionDone
	result.Output = outPath
	result.Rows = len(out.Rows)
	result.RawTimestamps = out.RawTimestamps
	result.Columns = out.Header

	if out.RawTimestamps > 0 {
		fmt.Fprintf(w, "converted: %s -> %s (%d rows, %d timestamps kept as exported)\n",
			f.Name, outPath, result.Rows, out.RawTimestamps)
	} else {
		fmt.Fprintf(w, "converted: %s -> %s (%d rows)\n", f.Name, outPath, result.Rows)
	}
	return result
}

// ConvertMetric converts the metric export named filename, tagging every row
// with unit.
func ConvertMetric(filename, unit string, cfg types.ConversionConfig, w io.Writer) types.FileResult {
	f := types.ExportFile{Name: filename, Unit: unit}
	return ConvertFile(MetricProjection{Unit: unit}, f, cfg, w)
}

// ConvertWorkouts converts the workout export named filename.
func ConvertWorkouts(filename string, cfg types.ConversionConfig, w io.Writer) types.FileResult {
	f := types.ExportFile{Name: filename, Unit: types.WorkoutUnit}
	return ConvertFile(WorkoutProjection{}, f, cfg, w)
}

// ConvertBatch converts each file in order, printing per-file status to w
// and returning a summary.
func ConvertBatch(files []types.ExportFile, cfg types.ConversionConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, f := range files {
		result.add(ConvertFile(ProjectionFor(f), f, cfg, w))
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// Run is the driver: it converts every catalog entry found in
// cfg.InputDir, records the run in the manifest, and frames the output with
// start and completion banners.
func Run(cfg types.ConversionConfig, w io.Writer) BatchResult {
	cfg = withDefaults(cfg)

	fmt.Fprintln(w, "Converting health exports...")
	result := ConvertBatch(Catalog(), cfg, w)

	if result.Converted > 0 {
		if err := WriteManifest(cfg.OutputDir, result); err != nil {
			fmt.Fprintf(w, "warning: manifest write failed: %v\n", err)
		}
	}

	fmt.Fprintf(w, "All done. Check the %q folder.\n", cfg.OutputDir)
	return result
}

func withDefaults(cfg types.ConversionConfig) types.ConversionConfig {
	if cfg.InputDir == "" {
		cfg.InputDir = DefaultInputDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	return cfg
}

func skip(w io.Writer, name string, r types.FileResult, reason string) types.FileResult {
	r.Status = types.ConversionSkipped
	r.Message = reason
	fmt.Fprintf(w, "skipped: %s (%s)\n", name, reason)
	return r
}

func fail(w io.Writer, name string, r types.FileResult, err error) types.FileResult {
	r.Status = types.ConversionFailed
	r.Message = err.Error()
	fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
	return r
}
