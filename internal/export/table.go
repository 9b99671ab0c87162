// Package export renders fixed-column tables into downloadable documents.
package export

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Align positions a column's cell text.
type Align string

// Alignments understood by the renderers.
const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Column describes one table column. Width is a relative weight.
type Column struct {
	Header string
	Width  float64
	Align  Align
}

// Table is the renderer input.
type Table struct {
	Title    string
	Subtitle string
	Columns  []Column
	Rows     [][]string
}

// ErrShape reports rows that do not match the column set.
var ErrShape = errors.New("export: row width does not match columns")

// Validate checks the table shape.
func (t Table) Validate() error {
	if len(t.Columns) == 0 {
		return errors.New("export: table has no columns")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrShape, i+1, len(row), len(t.Columns))
		}
	}
	return nil
}

func (t Table) headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Header
	}
	return out
}

// Format is a supported document format.
type Format string

// Supported formats.
const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatXLSX, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("export: unsupported format %q", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	}
	return "application/octet-stream"
}

// Options tune rendering.
type Options struct {
	Paper string
}

// Write renders t in the requested format.
func Write(w io.Writer, f Format, t Table, opts Options) error {
	switch f {
	case FormatPDF:
		return WritePDF(w, t, opts)
	case FormatXLSX:
		return WriteXLSX(w, t)
	case FormatCSV:
		return WriteCSV(w, t)
	}
	return fmt.Errorf("export: unsupported format %q", f)
}

var unsafeName = regexp.MustCompile(`[^a-z0-9_-]+`)

func slug(s string) string {
	s = unsafeName.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(s, "-")
}

// FileName builds a download name such as "invoice-details-inv-001.pdf".
func FileName(prefix, parentKey string, ext Format) string {
	name := slug(prefix)
	if key := slug(parentKey); key != "" {
		if name != "" {
			name += "-"
		}
		name += key
	}
	if name == "" {
		name = "export"
	}
	return name + "." + slug(string(ext))
}
