// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHeader Header
		wantRows   [][]string
		wantErr    error
	}{
		{
			name:       "tab separated export",
			input:      "startDate\tendDate\tvalue\n2025-09-30 23:00:00 +0000\t2025-09-30 23:24:00 +0000\t75\n",
			wantHeader: Header{"startDate", "endDate", "value"},
			wantRows:   [][]string{{"2025-09-30 23:00:00 +0000", "2025-09-30 23:24:00 +0000", "75"}},
		},
		{
			name:       "short rows are padded",
			input:      "a\tb\tc\n1\t2\n",
			wantHeader: Header{"a", "b", "c"},
			wantRows:   [][]string{{"1", "2", ""}},
		},
		{
			name:       "blank lines and CRLF are ignored",
			input:      "a\tb\r\n\r\n1\t2\r\n\n3\t4\r\n",
			wantHeader: Header{"a", "b"},
			wantRows:   [][]string{{"1", "2"}, {"3", "4"}},
		},
		{
			name:       "header only",
			input:      "a\tb\n",
			wantHeader: Header{"a", "b"},
		},
		{
			name:       "stray quotes are kept",
			input:      "name\tvalue\nHIIT \"sprint\"\t3\n",
			wantHeader: Header{"name", "value"},
			wantRows:   [][]string{{"HIIT \"sprint\"", "3"}},
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrEmptyFile,
		},
		{
			name:    "row longer than header",
			input:   "a\tb\n1\t2\t3\n",
			wantErr: ErrRowTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), Tab)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeader, got.Header)
			assert.Equal(t, tt.wantRows, got.Rows)
		})
	}
}

func TestReadFile_StripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.csv")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFstartDate\tvalue\nx\t1\n"), 0o644))

	got, err := ReadFile(path, Tab)
	require.NoError(t, err)
	_, ok := got.Header.Index("startDate")
	assert.True(t, ok, "first column should match without the byte order mark")
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), Tab)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestHeader(t *testing.T) {
	h := Header{"startDate", "endDate", "Value"}

	i, ok := h.Index("endDate")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = h.Index("value")
	assert.False(t, ok, "exact lookup is case-sensitive")

	assert.Equal(t, []string{"value"}, h.Missing("startDate", "endDate", "value"))
	assert.Empty(t, h.Missing("startDate", "Value"))
}

func TestFoldIndex(t *testing.T) {
	h := Header{"StartDate", "WorkoutType", "DURATION", "duration"}
	idx := h.FoldIndex()

	i, ok := idx.Lookup("startdate")
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = idx.Lookup("workoutType")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	i, ok = idx.Lookup("Duration")
	assert.True(t, ok)
	assert.Equal(t, 3, i, "later duplicate wins")

	_, ok = idx.Lookup("totalEnergyBurned")
	assert.False(t, ok)
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "converted")
	path := filepath.Join(dir, "heart_rate.csv")

	err := WriteFile(path, []string{"timestamp", "value", "unit"}, [][]string{
		{"2025-09-30T23:12:00+00:00", "75", "bpm"},
		{"2025-10-01T00:00:00+00:00", "1,5", "bpm"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"timestamp,value,unit\n2025-09-30T23:12:00+00:00,75,bpm\n2025-10-01T00:00:00+00:00,\"1,5\",bpm\n",
		string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should be renamed away")

	back, err := ReadFile(path, Comma)
	require.NoError(t, err)
	assert.Equal(t, "1,5", back.Rows[1][1])
}

func TestWriteFile_MinimalQuoting(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want string
	}{
		{
			name: "leading space is not quoted",
			rows: [][]string{{"2025-09-30T23:12:00+00:00", " 75", "bpm"}},
			want: "2025-09-30T23:12:00+00:00, 75,bpm\n",
		},
		{
			name: "embedded quote is doubled",
			rows: [][]string{{"", `a"b`, ""}},
			want: `,"a""b",` + "\n",
		},
		{
			name: "line break is quoted",
			rows: [][]string{{"x", "line1\nline2", "y"}},
			want: "x,\"line1\nline2\",y\n",
		},
		{
			name: "sole empty field is quoted",
			rows: [][]string{{""}},
			want: "\"\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.csv")
			require.NoError(t, WriteFile(path, []string{"a", "b", "c"}, tt.rows))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "a,b,c\n"+tt.want, string(data))
		})
	}
}
