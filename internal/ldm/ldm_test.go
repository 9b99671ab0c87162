package ldm

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type supplier struct {
	Code   string
	Name   string
	Status string
}

func (s supplier) Key() string         { return s.Code }
func (s supplier) StatusValue() string { return s.Status }

func makeSuppliers(n int) []supplier {
	out := make([]supplier, n)
	for i := range out {
		out[i] = supplier{Code: fmt.Sprintf("S%02d", i+1), Name: fmt.Sprintf("Supplier %d", i+1), Status: StatusActive}
	}
	return out
}

var errServer = errors.New("status 500")

type fakeSource struct {
	mu        sync.Mutex
	items     []supplier
	listErr   error
	deleteErr error
	createErr error
	deletes   []string
}

func (f *fakeSource) List(ctx context.Context) ([]supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]supplier(nil), f.items...), nil
}

func (f *fakeSource) Get(ctx context.Context, key string) (supplier, error) {
	for _, s := range f.items {
		if s.Code == key {
			return s, nil
		}
	}
	return supplier{}, errors.New("not found")
}

func (f *fakeSource) Create(ctx context.Context, item supplier) (supplier, error) {
	if f.createErr != nil {
		return supplier{}, f.createErr
	}
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeSource) Update(ctx context.Context, key string, item supplier) (supplier, error) {
	for i := range f.items {
		if f.items[i].Code == key {
			f.items[i] = item
		}
	}
	return item, nil
}

func (f *fakeSource) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, key)
	return f.deleteErr
}

func serverMessage(err error, fallback string) string {
	if errors.Is(err, errServer) {
		return "supplier still referenced by purchase orders"
	}
	return fallback
}
