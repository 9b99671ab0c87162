package console

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/odyssey-console/internal/ldm"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
	"github.com/odyssey-erp/odyssey-console/internal/shared"
)

const (
	listTemplate = "pages/list.html"
	formTemplate = "pages/form.html"
)

// Paneler renders and mounts the detail overlay of a master-detail entity.
type Paneler interface {
	Panel(ctx context.Context, parent, back string) *Panel
	MountRoutes(r chi.Router)
}

// ResourceHandler serves the list, form and delete routes of one entity.
type ResourceHandler[T ldm.Record] struct {
	deps     Deps
	base     string
	source   ldm.Source[T]
	res      Resource[T]
	validate *validator.Validate
	panel    Paneler
}

// NewResourceHandler binds a resource to its backend source. base is the
// path the handler is mounted on.
func NewResourceHandler[T ldm.Record](deps Deps, base string, source ldm.Source[T], res Resource[T]) *ResourceHandler[T] {
	if deps.Options == nil {
		deps.Options = NewOptions()
	}
	return &ResourceHandler[T]{
		deps:     deps,
		base:     strings.TrimRight(base, "/"),
		source:   source,
		res:      res,
		validate: newValidator(),
	}
}

// WithDetails attaches a detail overlay.
func (h *ResourceHandler[T]) WithDetails(p Paneler) *ResourceHandler[T] {
	h.panel = p
	return h
}

// MountRoutes registers the entity routes.
func (h *ResourceHandler[T]) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/new", h.newForm)
	r.Post("/", h.create)
	r.Get("/{key}/edit", h.editForm)
	r.Post("/{key}/edit", h.update)
	r.Post("/{key}/delete", h.delete)
	if h.panel != nil {
		r.Route("/{key}/details", h.panel.MountRoutes)
	}
}

func (h *ResourceHandler[T]) newView() *ldm.View[T] {
	return ldm.NewView[T](h.source, ldm.ViewOptions{
		Name:         strings.ToLower(h.res.Name),
		PageSize:     h.deps.PageSize,
		SortByStatus: true,
		Messages:     message,
	})
}

func (h *ResourceHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	status := q.Get("status")
	if status != ldm.StatusActive && status != ldm.StatusNonActive {
		status = ""
	}
	data := ListPage{
		Name:     h.res.Name,
		Singular: h.res.Singular,
		Base:     h.base,
		Headers:  headers(h.res.Columns),
		Status:   status,
		Statuses: []string{ldm.StatusActive, ldm.StatusNonActive},
		Details:  h.panel != nil,
	}

	v := h.newView()
	if err := v.Load(ctx); err != nil {
		h.deps.logger().Error("load collection", "resource", h.res.Name, "error", err)
		data.Error = v.Store().Err()
		data.Pager = pagerOf(v.Page())
		h.deps.render(w, r, listTemplate, h.res.Name, data, http.StatusOK)
		return
	}

	var page ldm.Page[T]
	if status != "" {
		page = ldm.Paginate(ldm.FilterStatus(v.Store().Items(), status), offsetParam(r), h.deps.PageSize)
	} else {
		v.SetOffset(offsetParam(r))
		page = v.Page()
	}
	data.Pager = pagerOf(page)
	for _, item := range page.Items {
		data.Rows = append(data.Rows, Row{Key: item.Key(), Status: item.StatusValue(), Cells: cells(h.res.Columns, item)})
	}
	if parent := q.Get("details"); parent != "" && h.panel != nil {
		data.Panel = h.panel.Panel(ctx, parent, listURL(h.base, page.Offset, status, ""))
	}
	h.deps.render(w, r, listTemplate, h.res.Name, data, http.StatusOK)
}

func (h *ResourceHandler[T]) newForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "", map[string]string{}, map[string]string{}, "", http.StatusOK)
}

func (h *ResourceHandler[T]) editForm(w http.ResponseWriter, r *http.Request) {
	key := keyParam(r, "key")
	item, err := h.source.Get(r.Context(), key)
	if err != nil {
		h.deps.logger().Error("get record", "resource", h.res.Name, "key", key, "error", err)
		msg := message(err, "Failed to load "+h.res.Singular)
		if backend.IsNotFound(err) {
			msg = h.res.Singular + " " + key + " not found"
		}
		h.deps.redirect(w, r, h.base, shared.FlashAlert, msg)
		return
	}
	h.renderForm(w, r, key, h.res.Encode(item), map[string]string{}, "", http.StatusOK)
}

func (h *ResourceHandler[T]) renderForm(w http.ResponseWriter, r *http.Request, key string, values, errs map[string]string, alert string, status int) {
	editing := key != ""
	page := FormPage{
		Title:  "New " + h.res.Singular,
		Action: h.base + "/",
		Cancel: h.base,
		Submit: "Create",
		Errors: errs,
	}
	if editing {
		page.Title = "Edit " + h.res.Singular + " " + key
		page.Action = h.base + "/" + pathKey(key) + "/edit"
		page.Submit = "Save"
	}
	options, err := h.deps.Options.Load(r.Context(), optionNames(h.res.Fields))
	if err != nil {
		h.deps.logger().Error("load form options", "resource", h.res.Name, "error", err)
		page.Error = "Failed to load form data"
	}
	page.Fields = bindFields(h.res.Fields, values, errs, options, editing)
	h.deps.renderAlert(w, r, formTemplate, page.Title, alert, page, status)
}

// bind decodes and checks a submitted record. On update the path key wins
// over any submitted code, and cascaded fields are re-derived from the parent
// selection before validation.
func (h *ResourceHandler[T]) bind(r *http.Request, key string) (T, map[string]string, error) {
	var zero T
	if err := r.ParseForm(); err != nil {
		return zero, nil, err
	}
	item := h.res.Decode(NewForm(r.PostForm))
	if key != "" && h.res.SetKey != nil {
		item = h.res.SetKey(item, key)
	}
	if h.res.Prepare != nil {
		prepared, err := h.res.Prepare(r.Context(), item)
		if err != nil {
			h.deps.logger().Warn("cascade lookup failed", "resource", h.res.Name, "error", err)
		} else {
			item = prepared
		}
	}
	errs := fieldErrors(h.validate, item, h.res.Fields)
	if h.res.Check != nil {
		for k, v := range h.res.Check(item) {
			if _, exists := errs[k]; !exists {
				errs[k] = v
			}
		}
	}
	return item, errs, nil
}

func (h *ResourceHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	item, errs, err := h.bind(r, "")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if len(errs) > 0 {
		h.renderForm(w, r, "", h.res.Encode(item), errs, "", http.StatusUnprocessableEntity)
		return
	}

	v := h.newView()
	if err := v.Load(r.Context()); err != nil {
		h.deps.logger().Warn("duplicate check skipped", "resource", h.res.Name, "error", err)
	}
	created, err := v.Create(r.Context(), item)
	if err != nil {
		h.deps.logger().Error("create record", "resource", h.res.Name, "key", item.Key(), "error", err)
		h.renderForm(w, r, "", h.res.Encode(item), map[string]string{}, mutationMessage(err), http.StatusOK)
		return
	}
	h.deps.redirect(w, r, h.base, shared.FlashSuccess, h.res.Singular+" "+created.Key()+" created")
}

func (h *ResourceHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	key := keyParam(r, "key")
	item, errs, err := h.bind(r, key)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	values := h.res.Encode(item)
	if len(errs) > 0 {
		h.renderForm(w, r, key, values, errs, "", http.StatusUnprocessableEntity)
		return
	}

	if _, err := h.newView().Update(r.Context(), key, item); err != nil {
		h.deps.logger().Error("update record", "resource", h.res.Name, "key", key, "error", err)
		h.renderForm(w, r, key, values, map[string]string{}, mutationMessage(err), http.StatusOK)
		return
	}
	h.deps.redirect(w, r, h.base, shared.FlashSuccess, h.res.Singular+" "+key+" updated")
}

func (h *ResourceHandler[T]) delete(w http.ResponseWriter, r *http.Request) {
	key := keyParam(r, "key")
	back := listURL(h.base, offsetParam(r), r.URL.Query().Get("status"), "")
	if err := h.newView().Delete(r.Context(), key); err != nil {
		h.deps.logger().Error("delete record", "resource", h.res.Name, "key", key, "error", err)
		h.deps.redirect(w, r, back, shared.FlashAlert, mutationMessage(err))
		return
	}
	h.deps.redirect(w, r, back, shared.FlashSuccess, h.res.Singular+" "+key+" deleted")
}

func pathKey(key string) string {
	return url.PathEscape(key)
}

// keyParam reads a record key from the route. chi matches on the escaped path
// when the URL carries an encoded slash, so the key is unescaped then.
func keyParam(r *http.Request, name string) string {
	key := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return key
	}
	if unescaped, err := url.PathUnescape(key); err == nil {
		return unescaped
	}
	return key
}

func mutationMessage(err error) string {
	var mErr *ldm.MutationError
	if errors.As(err, &mErr) {
		return mErr.Message
	}
	return message(err, "Request failed")
}
