package console

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/odyssey-erp/odyssey-console/internal/ldm"
	"github.com/odyssey-erp/odyssey-console/internal/lookup"
	"github.com/odyssey-erp/odyssey-console/internal/shared"
	"github.com/odyssey-erp/odyssey-console/internal/view"
)

// Header is a table header cell.
type Header struct {
	Label string
	Align string
}

// Cell is a table body cell.
type Cell struct {
	Text  string
	Align string
}

// Row is a table body row addressed by its record key.
type Row struct {
	Key    string
	Status string
	Cells  []Cell
}

// Pager is the pagination bar of a list page.
type Pager struct {
	Number      int
	Count       int
	Total       int
	First       int
	Last        int
	Offset      int
	PrevOffset  int
	NextOffset  int
	HasPrevious bool
	HasNext     bool
}

func pagerOf[T any](p ldm.Page[T]) Pager {
	return Pager{
		Number:      p.PageNumber,
		Count:       p.PageCount,
		Total:       p.Total,
		First:       p.First(),
		Last:        p.Last(),
		Offset:      p.Offset,
		PrevOffset:  p.PreviousOffset(),
		NextOffset:  p.NextOffset(),
		HasPrevious: p.HasPrevious(),
		HasNext:     p.HasNext(),
	}
}

// ListPage is the data of pages/list.html.
type ListPage struct {
	Name     string
	Singular string
	Base     string
	Headers  []Header
	Rows     []Row
	Pager    Pager
	Status   string
	Statuses []string
	Error    string
	Details  bool
	Panel    *Panel
}

// Panel is the detail overlay rendered above a list page.
type Panel struct {
	Title     string
	Parent    string
	State     string
	NoDetails bool
	Error     string
	Base      string
	Back      string
	Headers   []Header
	Rows      []Row
	Exports   []string
}

// FormPage is the data of pages/form.html.
type FormPage struct {
	Title  string
	Action string
	Cancel string
	Submit string
	Fields []FieldView
	Errors map[string]string
	Error  string
}

func (d Deps) render(w http.ResponseWriter, r *http.Request, name, title string, data any, status int) {
	d.renderFlash(w, r, name, title, nil, data, status)
}

// renderAlert renders a page with a blocking alert instead of the session flash.
func (d Deps) renderAlert(w http.ResponseWriter, r *http.Request, name, title, alert string, data any, status int) {
	var flash *shared.FlashMessage
	if alert != "" {
		flash = &shared.FlashMessage{Kind: shared.FlashAlert, Message: alert}
	}
	d.renderFlash(w, r, name, title, flash, data, status)
}

func (d Deps) renderFlash(w http.ResponseWriter, r *http.Request, name, title string, flash *shared.FlashMessage, data any, status int) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil && flash == nil {
		flash = sess.PopFlash()
	}
	td := view.TemplateData{
		Title:       title,
		CSRFToken:   d.CSRF.PageToken(r.Context()),
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Nav:         d.Nav,
		Data:        data,
	}
	if err := d.Templates.RenderStatus(w, name, td, status); err != nil {
		d.logger().Error("render page", "template", name, "error", err)
	}
}

func (d Deps) redirect(w http.ResponseWriter, r *http.Request, to, kind, msg string) {
	shared.Notify(r.Context(), kind, msg)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func offsetParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// listURL rebuilds a list link keeping the window and filter.
func listURL(base string, offset int, status, details string) string {
	q := url.Values{}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	if status != "" {
		q.Set("status", status)
	}
	if details != "" {
		q.Set("details", details)
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

func bindFields(fields []Field, values map[string]string, errs map[string]string, options map[string][]lookup.Option, editing bool) []FieldView {
	out := make([]FieldView, 0, len(fields))
	for _, f := range fields {
		fv := FieldView{
			Field:  f,
			Value:  values[f.Name],
			Error:  errs[f.Name],
			Locked: f.ReadOnly || (editing && f.Immutable),
		}
		switch f.Type {
		case InputSelect:
			fv.Choices = f.Static
			if f.Options != "" {
				fv.Choices = options[f.Options]
			}
		case InputStatus:
			fv.Statuses = []string{ldm.StatusActive, ldm.StatusNonActive}
			if fv.Value == "" {
				fv.Value = ldm.StatusActive
			}
		}
		out = append(out, fv)
	}
	return out
}

func optionNames(fields []Field) []string {
	var names []string
	for _, f := range fields {
		if f.Type == InputSelect && f.Options != "" {
			names = append(names, f.Options)
		}
	}
	return names
}
