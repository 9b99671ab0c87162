package backend

import (
	"context"
	"errors"
)

// Collection is a typed REST repository over one Endpoint.
type Collection[T any] struct {
	client   *Client
	endpoint Endpoint
}

// NewCollection binds a record type to an endpoint.
func NewCollection[T any](client *Client, endpoint Endpoint) *Collection[T] {
	return &Collection[T]{client: client, endpoint: endpoint}
}

// Endpoint returns the bound endpoint.
func (c *Collection[T]) Endpoint() Endpoint {
	return c.endpoint
}

// List fetches the whole collection.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := c.client.Get(ctx, c.endpoint.Path(), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get fetches a single record.
func (c *Collection[T]) Get(ctx context.Context, key string) (T, error) {
	var item T
	err := c.client.Get(ctx, c.endpoint.Item(key), &item)
	return item, err
}

// Create posts a new record and returns the stored version.
func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	var created T
	err := c.client.Post(ctx, c.endpoint.Path(), item, &created)
	return echoed(item, created, err)
}

// Update replaces the record identified by key.
func (c *Collection[T]) Update(ctx context.Context, key string, item T) (T, error) {
	var updated T
	err := c.client.Put(ctx, c.endpoint.Item(key), item, &updated)
	return echoed(item, updated, err)
}

// Delete removes the record identified by key.
func (c *Collection[T]) Delete(ctx context.Context, key string) error {
	return c.client.Delete(ctx, c.endpoint.Item(key))
}

// Details is a typed REST repository over the child rows of an Endpoint.
type Details[C any] struct {
	client   *Client
	endpoint Endpoint
}

// NewDetails binds a child record type to the parent endpoint.
func NewDetails[C any](client *Client, parent Endpoint) *Details[C] {
	return &Details[C]{client: client, endpoint: parent}
}

// ListDetails fetches the children of parentKey.
func (d *Details[C]) ListDetails(ctx context.Context, parentKey string) ([]C, error) {
	var rows []C
	if err := d.client.Get(ctx, d.endpoint.Details(parentKey), &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []C{}
	}
	return rows, nil
}

// CreateDetail adds a child row.
func (d *Details[C]) CreateDetail(ctx context.Context, parentKey string, row C) (C, error) {
	var created C
	err := d.client.Post(ctx, d.endpoint.Details(parentKey), row, &created)
	return echoed(row, created, err)
}

// UpdateDetail replaces a child row.
func (d *Details[C]) UpdateDetail(ctx context.Context, parentKey, key string, row C) (C, error) {
	var updated C
	err := d.client.Put(ctx, d.endpoint.Detail(parentKey, key), row, &updated)
	return echoed(row, updated, err)
}

// DeleteDetail removes a child row.
func (d *Details[C]) DeleteDetail(ctx context.Context, parentKey, key string) error {
	return d.client.Delete(ctx, d.endpoint.Detail(parentKey, key))
}

// echoed falls back to the submitted value when the backend acknowledges a
// write without echoing the record.
func echoed[T any](submitted, returned T, err error) (T, error) {
	if err == nil {
		return returned, nil
	}
	if errors.Is(err, errMissingData) {
		return submitted, nil
	}
	var zero T
	return zero, err
}
