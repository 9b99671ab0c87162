package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/odyssey-erp/odyssey-console/internal/shared"
	"github.com/odyssey-erp/odyssey-console/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// NavLink is one sidebar entry.
type NavLink struct {
	Label string
	Path  string
}

// NavSection groups sidebar entries under a heading.
type NavSection struct {
	Title string
	Links []NavLink
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	Nav         []NavSection
	Data        any
}

// NewEngine parses the embedded templates once.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"active": func(current, path string) bool {
			return current == path || strings.HasPrefix(current, path+"/")
		},
		"statusClass": func(status string) string {
			if status == "Active" {
				return "badge-active"
			}
			return "badge-inactive"
		},
		"upper":      strings.ToUpper,
		"pathescape": url.PathEscape,
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, web.TemplatePatterns...)
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	return e.RenderStatus(w, name, data, http.StatusOK)
}

// RenderStatus executes a named template and writes it with status. Nothing
// is written when execution fails.
func (e *Engine) RenderStatus(w http.ResponseWriter, name string, data TemplateData, status int) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	buf := &bytes.Buffer{}
	if err := e.templates.ExecuteTemplate(buf, name, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
