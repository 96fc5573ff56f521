// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionConfig holds settings for the convert stage.
type ConversionConfig struct {
	// InputDir is the directory holding the tab-delimited exports (default ".").
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the directory converted files are written to (default "converted").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// StoreConfig holds settings for the sample store stage.
type StoreConfig struct {
	// OutputDir is the directory holding converted files to ingest.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// DBPath is the SQLite database file. Empty means OutputDir/health.db.
	DBPath string `json:"db_path" yaml:"db_path"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Store      StoreConfig      `json:"store" yaml:"store"`
}
