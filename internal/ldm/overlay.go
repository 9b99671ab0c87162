package ldm

import (
	"context"
	"sync"
)

// OverlayState is the lifecycle of a detail overlay.
type OverlayState int

const (
	OverlayClosed OverlayState = iota
	OverlayLoading
	OverlayPopulated
	OverlayEmpty
	OverlayErrored
)

func (s OverlayState) String() string {
	switch s {
	case OverlayClosed:
		return "closed"
	case OverlayLoading:
		return "loading"
	case OverlayPopulated:
		return "populated"
	case OverlayEmpty:
		return "empty"
	case OverlayErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// DetailSource is the remote child collection behind an Overlay.
type DetailSource[C Keyed] interface {
	ListDetails(ctx context.Context, parentKey string) ([]C, error)
	CreateDetail(ctx context.Context, parentKey string, row C) (C, error)
	UpdateDetail(ctx context.Context, parentKey, key string, row C) (C, error)
	DeleteDetail(ctx context.Context, parentKey, key string) error
}

// OverlayOptions configures an Overlay.
type OverlayOptions struct {
	Messages Messager
	// IsMissing classifies a fetch error as "no details" rather than a failure.
	IsMissing func(err error) bool
}

// Overlay resolves and mutates the child rows of one parent at a time.
type Overlay[C Keyed] struct {
	source DetailSource[C]
	opts   OverlayOptions

	mu     sync.RWMutex
	state  OverlayState
	parent string
	rows   []C
	err    string
}

// NewOverlay wires an overlay to its source.
func NewOverlay[C Keyed](source DetailSource[C], opts OverlayOptions) *Overlay[C] {
	if opts.Messages == nil {
		opts.Messages = func(_ error, fallback string) string { return fallback }
	}
	if opts.IsMissing == nil {
		opts.IsMissing = func(error) bool { return false }
	}
	return &Overlay[C]{source: source, opts: opts}
}

// Open fetches the rows of parent. A failed fetch is not returned: it moves the
// overlay to the empty or errored state, both of which render as "no details".
func (o *Overlay[C]) Open(ctx context.Context, parent string) OverlayState {
	o.mu.Lock()
	o.state = OverlayLoading
	o.parent = parent
	o.rows = nil
	o.err = ""
	o.mu.Unlock()

	rows, err := o.source.ListDetails(ctx, parent)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != OverlayLoading || o.parent != parent {
		return o.state
	}
	switch {
	case err != nil && o.opts.IsMissing(err):
		o.state = OverlayEmpty
	case err != nil:
		o.state = OverlayErrored
		o.err = o.opts.Messages(err, "Failed to load details")
	case len(rows) == 0:
		o.state = OverlayEmpty
	default:
		o.rows = rows
		o.state = OverlayPopulated
	}
	return o.state
}

// Close discards the overlay from any state.
func (o *Overlay[C]) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = OverlayClosed
	o.parent = ""
	o.rows = nil
	o.err = ""
}

// State returns the current state.
func (o *Overlay[C]) State() OverlayState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Parent returns the key of the open parent.
func (o *Overlay[C]) Parent() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.parent
}

// Rows returns a copy of the loaded rows.
func (o *Overlay[C]) Rows() []C {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]C(nil), o.rows...)
}

// Err returns the fetch failure message in the errored state.
func (o *Overlay[C]) Err() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.err
}

// NoDetails reports whether the overlay should render the "no details" affordance.
func (o *Overlay[C]) NoDetails() bool {
	s := o.State()
	return s == OverlayEmpty || s == OverlayErrored
}

// Add creates a child row and appends it locally.
func (o *Overlay[C]) Add(ctx context.Context, row C) (C, error) {
	parent, err := o.openParent("create")
	if err != nil {
		var zero C
		return zero, err
	}
	created, err := o.source.CreateDetail(ctx, parent, row)
	if err != nil {
		var zero C
		return zero, &MutationError{Op: "create detail", Key: parent, Message: o.opts.Messages(err, "Failed to add detail"), Err: err}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.parent == parent {
		o.rows = append(o.rows, created)
		o.state = OverlayPopulated
		o.err = ""
	}
	return created, nil
}

// Edit updates a child row and patches it locally.
func (o *Overlay[C]) Edit(ctx context.Context, key string, row C) (C, error) {
	parent, err := o.openParent("update")
	if err != nil {
		var zero C
		return zero, err
	}
	updated, err := o.source.UpdateDetail(ctx, parent, key, row)
	if err != nil {
		var zero C
		return zero, &MutationError{Op: "update detail", Key: key, Message: o.opts.Messages(err, "Failed to update detail"), Err: err}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.parent == parent {
		for i := range o.rows {
			if o.rows[i].Key() == key {
				o.rows[i] = updated
				break
			}
		}
	}
	return updated, nil
}

// Remove deletes a child row and filters it out locally.
func (o *Overlay[C]) Remove(ctx context.Context, key string) error {
	parent, err := o.openParent("delete")
	if err != nil {
		return err
	}
	if err := o.source.DeleteDetail(ctx, parent, key); err != nil {
		return &MutationError{Op: "delete detail", Key: key, Message: o.opts.Messages(err, "Failed to delete detail"), Err: err}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.parent != parent {
		return nil
	}
	kept := o.rows[:0:0]
	for _, r := range o.rows {
		if r.Key() != key {
			kept = append(kept, r)
		}
	}
	o.rows = kept
	if len(kept) == 0 {
		o.state = OverlayEmpty
	}
	return nil
}

func (o *Overlay[C]) openParent(op string) (string, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.state == OverlayClosed || o.state == OverlayLoading {
		return "", &MutationError{Op: op + " detail", Message: "Details are not open", Err: ErrOverlayClosed}
	}
	return o.parent, nil
}
