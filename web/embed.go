// Package web carries the console's page templates and browser assets,
// compiled into the binary so a deploy is a single file.
package web

import (
	"embed"
	"io/fs"
)

// Templates holds the layouts, partials and entity pages.
//
//go:embed templates/**/*.html
var Templates embed.FS

// TemplatePatterns lists the template globs the view engine parses.
var TemplatePatterns = []string{
	"templates/layouts/*.html",
	"templates/partials/*.html",
	"templates/pages/*.html",
}

// Static holds the stylesheet and the form/cascade scripts.
//
//go:embed static/**/*
var Static embed.FS

// StaticFS returns the assets rooted at static/, as served under /static/.
func StaticFS() (fs.FS, error) {
	return fs.Sub(Static, "static")
}
