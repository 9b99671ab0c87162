// Package console serves the list-detail-mutate pages of every entity.
package console

import (
	"context"
	"log/slog"

	"github.com/odyssey-erp/odyssey-console/internal/export"
	"github.com/odyssey-erp/odyssey-console/internal/ldm"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
	"github.com/odyssey-erp/odyssey-console/internal/shared"
	"github.com/odyssey-erp/odyssey-console/internal/view"
)

// Column renders one list or export column.
type Column[T any] struct {
	Header string
	Value  func(T) string
	Align  export.Align
	Width  float64
}

// Resource declares how an entity is listed and edited.
type Resource[T ldm.Record] struct {
	// Name is the plural title, Singular the noun used in messages.
	Name     string
	Singular string
	Columns  []Column[T]
	Fields   []Field
	Decode   func(Form) T
	Encode   func(T) map[string]string
	// SetKey pins the immutable key of an updated record.
	SetKey func(T, string) T
	// Prepare re-derives cascaded fields before a submit reaches the backend.
	Prepare func(ctx context.Context, item T) (T, error)
	// Check adds entity rules the validator tags cannot express.
	Check func(T) map[string]string
}

// Deps carries the collaborators shared by every console handler.
type Deps struct {
	Logger    *slog.Logger
	Templates *view.Engine
	CSRF      *shared.CSRFManager
	Options   *Options
	Nav       []view.NavSection
	PageSize  int
	Paper     string
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// message resolves the user facing text of a backend error.
func message(err error, fallback string) string {
	return backend.Message(err, fallback)
}

func headers[T any](cols []Column[T]) []Header {
	out := make([]Header, len(cols))
	for i, c := range cols {
		out[i] = Header{Label: c.Header, Align: string(c.Align)}
	}
	return out
}

func cells[T any](cols []Column[T], item T) []Cell {
	out := make([]Cell, len(cols))
	for i, c := range cols {
		out[i] = Cell{Text: c.Value(item), Align: string(c.Align)}
	}
	return out
}

func exportTable[T any](title, subtitle string, cols []Column[T], items []T) export.Table {
	t := export.Table{Title: title, Subtitle: subtitle}
	for _, c := range cols {
		t.Columns = append(t.Columns, export.Column{Header: c.Header, Width: c.Width, Align: c.Align})
	}
	for _, item := range items {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = c.Value(item)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
