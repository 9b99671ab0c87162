// Package ldm implements the list-detail-mutate view controller shared by every
// entity page: fetch a collection, hold it locally, page through it, mutate
// records and resolve child rows for a selected parent.
package ldm

// Keyed is anything addressable by a stable string key.
type Keyed interface {
	Key() string
}

// Record is a top-level entity held in a Store.
type Record interface {
	Keyed
	StatusValue() string
}

// Status values used by every entity.
const (
	StatusActive    = "Active"
	StatusNonActive = "Non-Active"
)
