package console

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/odyssey-console/internal/export"
	"github.com/odyssey-erp/odyssey-console/internal/ldm"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
	"github.com/odyssey-erp/odyssey-console/internal/shared"
)

// DetailResource declares the child rows of a master-detail entity.
type DetailResource[C ldm.Keyed] struct {
	// Name titles the overlay, e.g. "Invoice lines"; Singular names one row.
	Name       string
	Singular   string
	Columns    []Column[C]
	Fields     []Field
	Decode     func(Form) C
	Encode     func(C) map[string]string
	Check      func(C) map[string]string
	// SetKey stamps the path key onto a decoded row before an update.
	SetKey     func(C, string) C
	FilePrefix string
}

// DetailHandler serves the overlay, child mutations and exports of one
// master-detail entity.
type DetailHandler[C ldm.Keyed] struct {
	deps     Deps
	base     string
	source   ldm.DetailSource[C]
	res      DetailResource[C]
	validate *validator.Validate
}

// NewDetailHandler binds child rows to their backend source. base is the
// mount path of the parent resource.
func NewDetailHandler[C ldm.Keyed](deps Deps, base string, source ldm.DetailSource[C], res DetailResource[C]) *DetailHandler[C] {
	if deps.Options == nil {
		deps.Options = NewOptions()
	}
	return &DetailHandler[C]{
		deps:     deps,
		base:     strings.TrimRight(base, "/"),
		source:   source,
		res:      res,
		validate: newValidator(),
	}
}

// MountRoutes registers the routes below /{key}/details.
func (h *DetailHandler[C]) MountRoutes(r chi.Router) {
	r.Get("/", h.show)
	r.Get("/new", h.newForm)
	r.Post("/", h.add)
	r.Get("/export/{format}", h.export)
	r.Get("/{detail}/edit", h.editForm)
	r.Post("/{detail}/edit", h.edit)
	r.Post("/{detail}/delete", h.remove)
}

func (h *DetailHandler[C]) overlay() *ldm.Overlay[C] {
	return ldm.NewOverlay[C](h.source, ldm.OverlayOptions{
		Messages:  message,
		IsMissing: backend.IsNotFound,
	})
}

func (h *DetailHandler[C]) detailsBase(parent string) string {
	return h.base + "/" + pathKey(parent) + "/details"
}

// back returns the list page with the overlay of parent open.
func (h *DetailHandler[C]) back(r *http.Request, parent string) string {
	return listURL(h.base, offsetParam(r), "", parent)
}

// Panel opens the overlay for parent and renders its current state.
func (h *DetailHandler[C]) Panel(ctx context.Context, parent, back string) *Panel {
	o := h.overlay()
	state := o.Open(ctx, parent)
	if state == ldm.OverlayErrored {
		h.deps.logger().Warn("detail fetch failed", "parent", parent, "error", o.Err())
	}
	p := &Panel{
		Title:     h.res.Name + " " + parent,
		Parent:    parent,
		State:     state.String(),
		NoDetails: o.NoDetails(),
		Error:     o.Err(),
		Base:      h.detailsBase(parent),
		Back:      back,
		Headers:   headers(h.res.Columns),
		Exports:   []string{string(export.FormatPDF), string(export.FormatXLSX), string(export.FormatCSV)},
	}
	for _, row := range o.Rows() {
		p.Rows = append(p.Rows, Row{Key: row.Key(), Cells: cells(h.res.Columns, row)})
	}
	return p
}

func (h *DetailHandler[C]) show(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.back(r, keyParam(r, "key")), http.StatusSeeOther)
}

func (h *DetailHandler[C]) withOffset(r *http.Request, path string) string {
	if off := offsetParam(r); off > 0 {
		return path + "?offset=" + strconv.Itoa(off)
	}
	return path
}

func (h *DetailHandler[C]) renderForm(w http.ResponseWriter, r *http.Request, parent, key string, values, errs map[string]string, alert string, status int) {
	page := FormPage{
		Title:  "Add " + h.res.Singular + " to " + parent,
		Action: h.withOffset(r, h.detailsBase(parent)+"/"),
		Cancel: h.back(r, parent),
		Submit: "Add",
		Errors: errs,
	}
	if key != "" {
		page.Title = "Edit " + h.res.Singular + " " + key
		page.Action = h.withOffset(r, h.detailsBase(parent)+"/"+pathKey(key)+"/edit")
		page.Submit = "Save"
	}
	options, err := h.deps.Options.Load(r.Context(), optionNames(h.res.Fields))
	if err != nil {
		h.deps.logger().Error("load detail form options", "resource", h.res.Name, "error", err)
		page.Error = "Failed to load form data"
	}
	page.Fields = bindFields(h.res.Fields, values, errs, options, key != "")
	h.deps.renderAlert(w, r, formTemplate, page.Title, alert, page, status)
}

func (h *DetailHandler[C]) newForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, keyParam(r, "key"), "", map[string]string{}, map[string]string{}, "", http.StatusOK)
}

func (h *DetailHandler[C]) bind(r *http.Request) (C, map[string]string, error) {
	var zero C
	if err := r.ParseForm(); err != nil {
		return zero, nil, err
	}
	row := h.res.Decode(NewForm(r.PostForm))
	errs := fieldErrors(h.validate, row, h.res.Fields)
	if h.res.Check != nil {
		for k, v := range h.res.Check(row) {
			if _, exists := errs[k]; !exists {
				errs[k] = v
			}
		}
	}
	return row, errs, nil
}

// open loads the overlay of parent so a child mutation can be applied to it.
func (h *DetailHandler[C]) open(ctx context.Context, parent string) *ldm.Overlay[C] {
	o := h.overlay()
	o.Open(ctx, parent)
	return o
}

func (h *DetailHandler[C]) add(w http.ResponseWriter, r *http.Request) {
	parent := keyParam(r, "key")
	row, errs, err := h.bind(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if len(errs) > 0 {
		h.renderForm(w, r, parent, "", h.res.Encode(row), errs, "", http.StatusUnprocessableEntity)
		return
	}
	if _, err := h.open(r.Context(), parent).Add(r.Context(), row); err != nil {
		h.deps.logger().Error("add detail", "parent", parent, "error", err)
		h.renderForm(w, r, parent, "", h.res.Encode(row), map[string]string{}, mutationMessage(err), http.StatusOK)
		return
	}
	h.deps.redirect(w, r, h.back(r, parent), shared.FlashSuccess, h.res.Singular+" added")
}

func (h *DetailHandler[C]) editForm(w http.ResponseWriter, r *http.Request) {
	parent, key := keyParam(r, "key"), keyParam(r, "detail")
	o := h.open(r.Context(), parent)
	for _, row := range o.Rows() {
		if row.Key() == key {
			h.renderForm(w, r, parent, key, h.res.Encode(row), map[string]string{}, "", http.StatusOK)
			return
		}
	}
	msg := h.res.Singular + " " + key + " not found"
	if o.State() == ldm.OverlayErrored {
		msg = o.Err()
	}
	h.deps.redirect(w, r, h.back(r, parent), shared.FlashAlert, msg)
}

func (h *DetailHandler[C]) edit(w http.ResponseWriter, r *http.Request) {
	parent, key := keyParam(r, "key"), keyParam(r, "detail")
	row, errs, err := h.bind(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if len(errs) > 0 {
		h.renderForm(w, r, parent, key, h.res.Encode(row), errs, "", http.StatusUnprocessableEntity)
		return
	}
	if h.res.SetKey != nil {
		row = h.res.SetKey(row, key)
	}
	if _, err := h.open(r.Context(), parent).Edit(r.Context(), key, row); err != nil {
		h.deps.logger().Error("edit detail", "parent", parent, "key", key, "error", err)
		h.renderForm(w, r, parent, key, h.res.Encode(row), map[string]string{}, mutationMessage(err), http.StatusOK)
		return
	}
	h.deps.redirect(w, r, h.back(r, parent), shared.FlashSuccess, h.res.Singular+" "+key+" updated")
}

func (h *DetailHandler[C]) remove(w http.ResponseWriter, r *http.Request) {
	parent, key := keyParam(r, "key"), keyParam(r, "detail")
	if err := h.open(r.Context(), parent).Remove(r.Context(), key); err != nil {
		h.deps.logger().Error("delete detail", "parent", parent, "key", key, "error", err)
		h.deps.redirect(w, r, h.back(r, parent), shared.FlashAlert, mutationMessage(err))
		return
	}
	h.deps.redirect(w, r, h.back(r, parent), shared.FlashSuccess, h.res.Singular+" "+key+" deleted")
}

func (h *DetailHandler[C]) export(w http.ResponseWriter, r *http.Request) {
	parent := keyParam(r, "key")
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	o := h.open(r.Context(), parent)
	if o.State() == ldm.OverlayErrored {
		h.deps.redirect(w, r, h.back(r, parent), shared.FlashAlert, o.Err())
		return
	}

	table := exportTable(h.res.Name+" "+parent, h.res.Singular+" rows of "+parent, h.res.Columns, o.Rows())
	buf := &bytes.Buffer{}
	if err := export.Write(buf, format, table, export.Options{Paper: h.deps.Paper}); err != nil {
		h.deps.logger().Error("export details", "parent", parent, "format", format, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(h.res.FilePrefix, parent, format)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
