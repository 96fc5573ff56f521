// Package main contains Mage build targets for health-convert developer tooling.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/magefile/mage/sh"

	"github.com/pdiddy/health-convert/internal/convert"
	"github.com/pdiddy/health-convert/pkg/types"
)

const (
	binDir  = "bin"
	binName = "health-convert"
	cmdPkg  = "./cmd/health-convert"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Stats prints the per-file results recorded by the last conversion run.
func Stats() error {
	return writeStats(os.Stdout, convert.DefaultOutputDir)
}

func writeStats(w io.Writer, outputDir string) error {
	m, err := convert.ReadManifest(outputDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Last run: %s\n", m.GeneratedAt.Format(time.RFC3339))
	for _, f := range m.Files {
		switch f.Status {
		case types.ConversionDone:
			fmt.Fprintf(w, "  %-20s %-9s %6d rows", filepath.Base(f.Source), f.Status, f.Rows)
			if f.RawTimestamps > 0 {
				fmt.Fprintf(w, ", %d raw timestamps", f.RawTimestamps)
			}
			fmt.Fprintln(w)
		default:
			fmt.Fprintf(w, "  %-20s %-9s %s\n", filepath.Base(f.Source), f.Status, f.Message)
		}
	}
	fmt.Fprintf(w, "Converted: %d, skipped: %d, failed: %d\n",
		m.Summary.Converted, m.Summary.Skipped, m.Summary.Failed)
	return nil
}
