// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package timestamp parses the fixed-offset timestamps found in health
// exports ("2025-09-30 23:00:00 +0000") and renders them as ISO-8601 with a
// numeric offset ("2025-09-30T23:00:00+00:00").
package timestamp

import (
	"strings"
	"time"
)

// exportLayouts lists accepted input layouts, most common first.
var exportLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05 Z0700",
	"2006-01-02 15:04:05 Z07:00",
}

const (
	isoLayout      = "2006-01-02T15:04:05-07:00"
	isoMicroLayout = "2006-01-02T15:04:05.000000-07:00"
)

// Parse reads an export timestamp. It reports false instead of returning an
// error when s matches none of the accepted layouts.
func Parse(s string) (time.Time, bool) {
	s = canonical(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range exportLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// canonical collapses whitespace runs and zero-pads single-digit date and
// time fields, so "2025-9-30  7:05:00 +0000" reads as
// "2025-09-30 07:05:00 +0000".
func canonical(s string) string {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return strings.Join(fields, " ")
	}
	fields[0] = padParts(fields[0], "-")
	fields[1] = padParts(fields[1], ":")
	return strings.Join(fields, " ")
}

// padParts left-pads every part after the first to two digits. The first
// part is the year or hour and is left alone.
func padParts(s, sep string) string {
	parts := strings.Split(s, sep)
	for i := 1; i < len(parts); i++ {
		if len(parts[i]) == 1 {
			parts[i] = "0" + parts[i]
		}
	}
	return strings.Join(parts, sep)
}

// Format renders t as ISO-8601. The offset is always numeric, and a
// microsecond fraction is included only when t has one.
func Format(t time.Time) string {
	t = t.Round(time.Microsecond)
	if t.Nanosecond() != 0 {
		return t.Format(isoMicroLayout)
	}
	return t.Format(isoLayout)
}

// Midpoint returns the instant halfway between start and end, in start's
// offset.
func Midpoint(start, end time.Time) time.Time {
	return start.Add(end.Sub(start) / 2)
}

// Normalize reformats raw as ISO-8601, or returns raw unchanged when it does
// not parse.
func Normalize(raw string) (string, bool) {
	t, ok := Parse(raw)
	if !ok {
		return raw, false
	}
	return Format(t), true
}

// MidpointString derives the representative timestamp of a sample spanning
// rawStart..rawEnd. When either end fails to parse it falls back to rawStart
// verbatim and reports false.
func MidpointString(rawStart, rawEnd string) (string, bool) {
	start, ok := Parse(rawStart)
	if !ok {
		return rawStart, false
	}
	end, ok := Parse(rawEnd)
	if !ok {
		return rawStart, false
	}
	return Format(Midpoint(start, end)), true
}
