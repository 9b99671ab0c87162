package ldm

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Source is the remote collection behind a View.
type Source[T Record] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, key string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, key string, item T) (T, error)
	Delete(ctx context.Context, key string) error
}

// Messager turns an error into a user facing message, falling back to a default.
type Messager func(err error, fallback string) string

// MutationError is returned when a create, update or delete is rejected.
type MutationError struct {
	Op      string
	Key     string
	Message string
	Err     error
}

func (e *MutationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Key, e.Message)
}

// Unwrap returns the cause.
func (e *MutationError) Unwrap() error {
	return e.Err
}

var (
	// ErrDuplicateKey is returned when a create reuses a key already held by the view.
	ErrDuplicateKey = errors.New("ldm: key already exists")
	// ErrOverlayClosed is returned when a child mutation targets a closed overlay.
	ErrOverlayClosed = errors.New("ldm: overlay not open")
)

// ViewOptions configures a View.
type ViewOptions struct {
	// Name is the plural noun used in default messages, e.g. "suppliers".
	Name     string
	PageSize int
	// SortByStatus orders the collection with Active records first after every load.
	SortByStatus bool
	// Messages resolves server messages; the default ignores the error.
	Messages Messager
}

// View is the list-detail-mutate controller for one collection.
type View[T Record] struct {
	source Source[T]
	store  Store[T]
	opts   ViewOptions

	mu     sync.Mutex
	offset int
}

// NewView wires a controller to its source.
func NewView[T Record](source Source[T], opts ViewOptions) *View[T] {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Name == "" {
		opts.Name = "records"
	}
	if opts.Messages == nil {
		opts.Messages = func(_ error, fallback string) string { return fallback }
	}
	return &View[T]{source: source, opts: opts}
}

// Store exposes the local store.
func (v *View[T]) Store() *Store[T] {
	return &v.store
}

// Load fetches the collection into the store. On failure the store holds the
// page error and no items.
func (v *View[T]) Load(ctx context.Context) error {
	v.store.Begin()
	items, err := v.source.List(ctx)
	if err != nil {
		v.store.Fail(v.opts.Messages(err, "Failed to load "+v.opts.Name))
		return err
	}
	if v.opts.SortByStatus {
		SortByStatus(items)
	}
	v.store.Fill(items)
	v.clamp()
	return nil
}

// Reload re-fetches from the server, keeping the current offset where possible.
func (v *View[T]) Reload(ctx context.Context) error {
	return v.Load(ctx)
}

// Page returns the visible window for the current offset.
func (v *View[T]) Page() Page[T] {
	v.mu.Lock()
	offset := v.offset
	v.mu.Unlock()
	return Paginate(v.store.Items(), offset, v.opts.PageSize)
}

// SetOffset moves the window, clamped to the collection.
func (v *View[T]) SetOffset(offset int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = ClampOffset(offset, v.store.Len(), v.opts.PageSize)
}

// Next advances one page when possible.
func (v *View[T]) Next() {
	v.SetOffset(v.Page().NextOffset())
}

// Previous moves back one page when possible.
func (v *View[T]) Previous() {
	v.SetOffset(v.Page().PreviousOffset())
}

// Get resolves a single record from the server.
func (v *View[T]) Get(ctx context.Context, key string) (T, error) {
	return v.source.Get(ctx, key)
}

// Create posts a new record and adds it to the store.
func (v *View[T]) Create(ctx context.Context, item T) (T, error) {
	if _, exists := v.store.Find(item.Key()); exists {
		var zero T
		return zero, &MutationError{Op: "create", Key: item.Key(), Message: "Code " + item.Key() + " already exists", Err: ErrDuplicateKey}
	}
	created, err := v.source.Create(ctx, item)
	if err != nil {
		var zero T
		return zero, &MutationError{Op: "create", Key: item.Key(), Message: v.opts.Messages(err, "Failed to create record"), Err: err}
	}
	v.store.Upsert(created)
	return created, nil
}

// Update replaces the record stored under key. The key itself never changes.
func (v *View[T]) Update(ctx context.Context, key string, item T) (T, error) {
	updated, err := v.source.Update(ctx, key, item)
	if err != nil {
		var zero T
		return zero, &MutationError{Op: "update", Key: key, Message: v.opts.Messages(err, "Failed to update record"), Err: err}
	}
	v.store.Upsert(updated)
	return updated, nil
}

// Delete removes the record on the server, then from the store. A rejected
// delete leaves the store untouched.
func (v *View[T]) Delete(ctx context.Context, key string) error {
	if err := v.source.Delete(ctx, key); err != nil {
		return &MutationError{Op: "delete", Key: key, Message: v.opts.Messages(err, "Failed to delete record"), Err: err}
	}
	v.store.Remove(key)
	v.clamp()
	return nil
}

func (v *View[T]) clamp() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = ClampOffset(v.offset, v.store.Len(), v.opts.PageSize)
}
