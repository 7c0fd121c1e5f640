package slogobs

import "strings"

// Format selects how the Handler renders records.
type Format string

const (
	// FormatCompact is one line per record with attributes as JSON:
	//   2026-10-19 10:40:35  INFO Span ended → {"calc.op":"divide"}
	FormatCompact Format = "compact"

	// FormatPretty puts every attribute on its own indented line.
	FormatPretty Format = "pretty"

	// FormatJSON is one JSON object per record, for log aggregation.
	FormatJSON Format = "json"
)

// ParseFormat parses a format name; anything unknown or empty is FormatCompact.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPretty:
		return FormatPretty
	case FormatJSON:
		return FormatJSON
	default:
		return FormatCompact
	}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}
