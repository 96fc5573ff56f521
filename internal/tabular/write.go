// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile writes header and rows as a comma-delimited file at path,
// creating the parent directory if needed. The data is written to a
// temporary file in the same directory and renamed into place, so path either
// holds the complete table or is left untouched.
func WriteFile(path string, header []string, rows [][]string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	w := bufio.NewWriter(f)
	if err := writeRecord(w, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := writeRecord(w, row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	if err := f.Chmod(0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

// writeRecord writes one line with minimal quoting: a field is quoted only
// when it holds a comma, a quote or a line break, or when it is the sole
// field of the record and empty. Leading spaces are written as-is.
func writeRecord(w io.StringWriter, record []string) error {
	var b strings.Builder
	for i, field := range record {
		if i > 0 {
			b.WriteByte(Comma)
		}
		switch {
		case strings.ContainsAny(field, ",\"\r\n"):
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		case field == "" && len(record) == 1:
			b.WriteString(`""`)
		default:
			b.WriteString(field)
		}
	}
	b.WriteByte('\n')
	_, err := w.WriteString(b.String())
	return err
}
