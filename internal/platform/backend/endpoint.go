package backend

import (
	"net/url"
	"strings"
)

// APIPrefix is prepended to every backend path.
const APIPrefix = "/api/v1"

// Endpoint names a REST collection as /{domain}/{collection}.
type Endpoint struct {
	Domain     string
	Collection string
}

// Path returns the collection path without the API prefix.
func (e Endpoint) Path() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{e.Domain, e.Collection} {
		if p = strings.Trim(p, "/"); p != "" {
			parts = append(parts, p)
		}
	}
	return "/" + strings.Join(parts, "/")
}

// Item returns the path of a single record.
func (e Endpoint) Item(id string) string {
	return e.Path() + "/" + url.PathEscape(id)
}

// Details returns the child collection path of a parent record.
func (e Endpoint) Details(parentID string) string {
	return e.Item(parentID) + "/details"
}

// Detail returns the path of one child record.
func (e Endpoint) Detail(parentID, detailID string) string {
	return e.Details(parentID) + "/" + url.PathEscape(detailID)
}

// String implements fmt.Stringer.
func (e Endpoint) String() string {
	return e.Path()
}
