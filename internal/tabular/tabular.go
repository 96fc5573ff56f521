// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabular reads small delimited files (tab-separated health exports,
// comma-separated converted outputs) into memory and writes converted tables
// atomically.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// Tab separates fields in the source exports.
	Tab = '\t'
	// Comma separates fields in converted outputs.
	Comma = ','
)

var (
	// ErrEmptyFile is returned when a file has no header line.
	ErrEmptyFile = errors.New("no columns to parse from file")
	// ErrRowTooLong is returned when a row has more fields than the header.
	ErrRowTooLong = errors.New("row has more fields than header")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Header is the first line of a table.
type Header []string

// Index returns the position of the column named exactly name.
func (h Header) Index(name string) (int, bool) {
	for i, c := range h {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// Missing returns the names from want that are not columns of h, in order.
func (h Header) Missing(want ...string) []string {
	var missing []string
	for _, name := range want {
		if _, ok := h.Index(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// FoldIndex maps lower-cased column names to their positions. When two
// columns differ only in case, the later one wins.
func (h Header) FoldIndex() FoldIndex {
	idx := make(FoldIndex, len(h))
	for i, c := range h {
		idx[strings.ToLower(c)] = i
	}
	return idx
}

// FoldIndex is a case-insensitive column lookup built once from a Header.
type FoldIndex map[string]int

// Lookup returns the position of the column matching name in any case.
func (f FoldIndex) Lookup(name string) (int, bool) {
	i, ok := f[strings.ToLower(name)]
	return i, ok
}

// Table is a parsed delimited file. Every row has exactly len(Header) fields.
type Table struct {
	Header Header
	Rows   [][]string
}

// ReadFile parses the file at path using the given field delimiter.
func ReadFile(path string, delim rune) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	t, err := Read(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)), delim)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// Read parses delimited records from r. Short rows are padded with empty
// fields; a row longer than the header is an error.
func Read(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d: %w", line, len(header), len(rec), ErrRowTooLong)
		}
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}
