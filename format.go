package tabulate

import (
	"fmt"
)

// Format represents an output format.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	HTML     Format = "html"
	LaTeX    Format = "latex"
	JSON     Format = "json"
	YAML     Format = "yaml"
)

var formats = []Format{Text, Markdown, CSV, TSV, HTML, LaTeX, JSON, YAML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format string, typically a CLI flag value.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// renderer wraps preprocessed header and body strings in format syntax and
// writes them to the writer's stream. Everything a renderer consumes has
// already been typed, styled, aligned, and padded by the preprocessing
// pipeline.
type renderer interface {
	render(w *Writer) error
}

// chunkedRenderer is implemented by renderers that can emit a table in
// bounded-size pieces sharing one header. The row separator is written
// between consecutive chunks.
type chunkedRenderer interface {
	renderer
	writeRowSeparator(w *Writer) error
}
