// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store loads converted health files into a local SQLite database so
// they can be inspected with SQL. Metric series go to the samples table and
// workouts to the workouts table; re-ingesting a changed file replaces its
// rows.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/health-convert/internal/convert"
	"github.com/pdiddy/health-convert/internal/tabular"
	"github.com/pdiddy/health-convert/pkg/types"
)

// DefaultDBFile is the database name used when no path is configured.
const DefaultDBFile = "health.db"

// Store manages the sample database.
type Store struct {
	db        *sql.DB
	outputDir string
}

// NewStore opens or creates the database at cfg.DBPath (default
// cfg.OutputDir/health.db) and creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = convert.DefaultOutputDir
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(outputDir, DefaultDBFile)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, outputDir: outputDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS samples (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			value REAL,
			unit TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_source ON samples(source)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_timestamp ON samples(timestamp)`,
		`CREATE TABLE IF NOT EXISTS workouts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			start_time TEXT,
			end_time TEXT,
			duration_min REAL,
			activity_type TEXT,
			energy_kcal REAL,
			distance_km REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_workouts_start ON workouts(start_time)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			source TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from an ingest run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest loads every converted file into the database. The file list comes
// from the run manifest, or from the catalog when no manifest exists. Files
// unchanged since their last ingest are skipped.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	files, err := s.convertedFiles()
	if err != nil {
		return IngestSummary{}, err
	}

	var summary IngestSummary
	for _, f := range files {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		name := filepath.Base(f.Output)
		info, err := os.Stat(f.Output)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM ingest_status WHERE source = ?`, name,
		).Scan(&storedModTime)
		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		table, err := tabular.ReadFile(f.Output, tabular.Comma)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if err := s.ingestFile(ctx, name, f.Kind, table, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d rows)\n", name, len(table.Rows))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s (%d rows)\n", name, len(table.Rows))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

// convertedFiles lists the outputs to ingest, with paths inside s.outputDir.
func (s *Store) convertedFiles() ([]types.FileResult, error) {
	m, err := convert.ReadManifest(s.outputDir)
	if err == nil {
		// Recorded paths are relative to where convert ran; resolve them
		// against this store's output directory instead.
		files := m.Converted()
		for i := range files {
			files[i].Output = filepath.Join(s.outputDir, filepath.Base(files[i].Output))
		}
		return files, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var files []types.FileResult
	for _, f := range convert.Catalog() {
		path := filepath.Join(s.outputDir, f.Name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		files = append(files, types.FileResult{
			Output: path,
			Kind:   f.Kind(),
			Status: types.ConversionDone,
		})
	}
	return files, nil
}

func (s *Store) ingestFile(ctx context.Context, source string, kind types.FileKind, table *tabular.Table, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	switch kind {
	case types.KindWorkout:
		err = insertWorkouts(ctx, tx, source, table)
	default:
		err = insertSamples(ctx, tx, source, table)
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ingest_status (source, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(source) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		source, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating ingest status: %w", err)
	}

	return tx.Commit()
}

func insertSamples(ctx context.Context, tx *sql.Tx, source string, table *tabular.Table) error {
	if missing := table.Header.Missing(convert.MetricColumns...); len(missing) > 0 {
		return fmt.Errorf("not a converted metric file, missing %v", missing)
	}
	ts, _ := table.Header.Index("timestamp")
	val, _ := table.Header.Index("value")
	unit, _ := table.Header.Index("unit")

	if _, err := tx.ExecContext(ctx, `DELETE FROM samples WHERE source = ?`, source); err != nil {
		return fmt.Errorf("deleting old samples: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO samples (source, timestamp, value, unit) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range table.Rows {
		if _, err := stmt.ExecContext(ctx, source, row[ts], nullable(row[val]), row[unit]); err != nil {
			return fmt.Errorf("inserting row %d: %w", i+1, err)
		}
	}
	return nil
}

func insertWorkouts(ctx context.Context, tx *sql.Tx, source string, table *tabular.Table) error {
	idx := table.Header.FoldIndex()
	cols := convert.WorkoutColumns()

	if _, err := tx.ExecContext(ctx, `DELETE FROM workouts WHERE source = ?`, source); err != nil {
		return fmt.Errorf("deleting old workouts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO workouts (source, start_time, end_time, duration_min, activity_type, energy_kcal, distance_km)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range table.Rows {
		args := make([]any, 0, len(cols)+1)
		args = append(args, source)
		for _, c := range cols {
			if j, ok := idx.Lookup(c); ok {
				args = append(args, nullable(row[j]))
			} else {
				args = append(args, nil)
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row %d: %w", i+1, err)
		}
	}
	return nil
}

// nullable stores empty fields as NULL.
func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
