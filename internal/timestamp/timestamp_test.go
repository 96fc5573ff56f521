// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package timestamp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantOK     bool
		wantUTC    string
		wantOffset int
	}{
		{
			name:    "export layout with zero offset",
			in:      "2025-09-30 23:00:00 +0000",
			wantOK:  true,
			wantUTC: "2025-09-30T23:00:00Z",
		},
		{
			name:       "negative offset",
			in:         "2025-03-09 01:30:00 -0500",
			wantOK:     true,
			wantUTC:    "2025-03-09T06:30:00Z",
			wantOffset: -5 * 3600,
		},
		{
			name:       "colon offset",
			in:         "2025-03-09 01:30:00 +02:00",
			wantOK:     true,
			wantUTC:    "2025-03-08T23:30:00Z",
			wantOffset: 2 * 3600,
		},
		{
			name:    "zulu",
			in:      "2025-03-09 01:30:00 Z",
			wantOK:  true,
			wantUTC: "2025-03-09T01:30:00Z",
		},
		{
			name:    "surrounding whitespace",
			in:      "  2025-09-30 23:00:00 +0000\n",
			wantOK:  true,
			wantUTC: "2025-09-30T23:00:00Z",
		},
		{
			name:    "unpadded date and time fields",
			in:      "2025-9-3 7:05:9 +0000",
			wantOK:  true,
			wantUTC: "2025-09-03T07:05:09Z",
		},
		{
			name:       "runs of whitespace between fields",
			in:         "2025-09-30  23:00:00 \t+0100",
			wantOK:     true,
			wantUTC:    "2025-09-30T22:00:00Z",
			wantOffset: 3600,
		},
		{name: "missing offset", in: "2025-09-30 23:00:00"},
		{name: "iso input", in: "2025-09-30T23:00:00+00:00"},
		{name: "empty", in: ""},
		{name: "garbage", in: "yesterday"},
		{name: "out of range day", in: "2025-02-30 10:00:00 +0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.True(t, got.IsZero())
				return
			}
			assert.Equal(t, tt.wantUTC, got.UTC().Format(time.RFC3339))
			_, offset := got.Zone()
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "utc renders numeric offset",
			in:   time.Date(2025, 9, 30, 23, 12, 0, 0, time.UTC),
			want: "2025-09-30T23:12:00+00:00",
		},
		{
			name: "fixed negative offset",
			in:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("", -7*3600)),
			want: "2025-01-02T03:04:05-07:00",
		},
		{
			name: "half second gets microseconds",
			in:   time.Date(2025, 9, 30, 23, 12, 0, 500_000_000, time.UTC),
			want: "2025-09-30T23:12:00.500000+00:00",
		},
		{
			name: "sub-microsecond is rounded away",
			in:   time.Date(2025, 9, 30, 23, 12, 0, 200, time.UTC),
			want: "2025-09-30T23:12:00+00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestMidpointString(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		end    string
		want   string
		wantOK bool
	}{
		{
			name:   "heart rate sample",
			start:  "2025-09-30 23:00:00 +0000",
			end:    "2025-09-30 23:24:00 +0000",
			want:   "2025-09-30T23:12:00+00:00",
			wantOK: true,
		},
		{
			name:   "instantaneous sample",
			start:  "2025-09-30 08:15:00 +0200",
			end:    "2025-09-30 08:15:00 +0200",
			want:   "2025-09-30T08:15:00+02:00",
			wantOK: true,
		},
		{
			name:   "odd second span",
			start:  "2025-09-30 23:00:00 +0000",
			end:    "2025-09-30 23:00:01 +0000",
			want:   "2025-09-30T23:00:00.500000+00:00",
			wantOK: true,
		},
		{
			name:   "crosses midnight",
			start:  "2025-09-30 22:00:00 +0000",
			end:    "2025-10-01 06:00:00 +0000",
			want:   "2025-10-01T02:00:00+00:00",
			wantOK: true,
		},
		{
			name:   "mixed offsets keep start offset",
			start:  "2025-09-30 10:00:00 +0100",
			end:    "2025-09-30 11:00:00 +0000",
			want:   "2025-09-30T11:00:00+01:00",
			wantOK: true,
		},
		{
			name:   "unpadded start month",
			start:  "2025-9-30 23:00:00 +0000",
			end:    "2025-09-30 23:24:00 +0000",
			want:   "2025-09-30T23:12:00+00:00",
			wantOK: true,
		},
		{
			name:  "unparseable end falls back to raw start",
			start: "2025-09-30 23:00:00 +0000",
			end:   "n/a",
			want:  "2025-09-30 23:00:00 +0000",
		},
		{
			name:  "unparseable start is returned verbatim",
			start: "30/09/2025 23:00",
			end:   "2025-09-30 23:24:00 +0000",
			want:  "30/09/2025 23:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MidpointString(tt.start, tt.end)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestMidpoint_IsArithmeticMidpoint(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, span := range []time.Duration{0, time.Second, 7 * time.Second, 90 * time.Minute, 36 * time.Hour} {
		end := start.Add(span)
		mid := Midpoint(start, end)
		assert.Equal(t, mid.Sub(start), end.Sub(mid), "span %v", span)
	}
}

func TestNormalize(t *testing.T) {
	got, ok := Normalize("2025-09-30 06:45:10 -0400")
	assert.True(t, ok)
	assert.Equal(t, "2025-09-30T06:45:10-04:00", got)

	got, ok = Normalize("not a date")
	assert.False(t, ok)
	assert.Equal(t, "not a date", got)
}
