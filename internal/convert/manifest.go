// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/health-convert/pkg/types"
)

// ManifestFile is the name of the run record written next to the outputs.
const ManifestFile = "manifest.yaml"

// Manifest records the outcome of the last conversion run.
type Manifest struct {
	GeneratedAt time.Time          `yaml:"generated_at"`
	Summary     ManifestSummary    `yaml:"summary"`
	Files       []types.FileResult `yaml:"files"`
}

// ManifestSummary holds the batch counts.
type ManifestSummary struct {
	Converted int `yaml:"converted"`
	Skipped   int `yaml:"skipped"`
	Failed    int `yaml:"failed"`
}

// Converted returns the entries that produced an output file.
func (m *Manifest) Converted() []types.FileResult {
	var out []types.FileResult
	for _, f := range m.Files {
		if f.Status == types.ConversionDone {
			out = append(out, f)
		}
	}
	return out
}

// WriteManifest saves result to outputDir/manifest.yaml.
func WriteManifest(outputDir string, result BatchResult) error {
	m := Manifest{
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Summary: ManifestSummary{
			Converted: result.Converted,
			Skipped:   result.Skipped,
			Failed:    result.Failed,
		},
		Files: result.Files,
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}
	return os.WriteFile(filepath.Join(outputDir, ManifestFile), data, 0o644)
}

// ReadManifest loads outputDir/manifest.yaml.
func ReadManifest(outputDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
