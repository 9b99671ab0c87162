package console

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/odyssey-erp/odyssey-console/internal/ldm"
	"github.com/odyssey-erp/odyssey-console/internal/lookup"
)

// OptionSource lists the choices of a select input.
type OptionSource func(ctx context.Context) ([]lookup.Option, error)

// Options is the registry of select option sources shared by every form.
type Options struct {
	mu      sync.RWMutex
	sources map[string]OptionSource
}

// NewOptions returns an empty registry.
func NewOptions() *Options {
	return &Options{sources: make(map[string]OptionSource)}
}

// Register binds name to src, replacing any previous source.
func (o *Options) Register(name string, src OptionSource) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sources[name] = src
}

// RegisterLookups binds the shared lookup collections.
func (o *Options) RegisterLookups(cache *lookup.Cache) {
	o.Register(lookup.Cities, func(ctx context.Context) ([]lookup.Option, error) {
		rows, err := cache.Cities(ctx)
		return lookup.CityOptions(rows), err
	})
	o.Register(lookup.Banks, func(ctx context.Context) ([]lookup.Option, error) {
		rows, err := cache.Banks(ctx)
		return lookup.BankOptions(rows), err
	})
	o.Register(lookup.Categories, func(ctx context.Context) ([]lookup.Option, error) {
		rows, err := cache.Categories(ctx)
		return lookup.CategoryOptions(rows), err
	})
	o.Register(lookup.Channels, func(ctx context.Context) ([]lookup.Option, error) {
		rows, err := cache.Channels(ctx)
		return lookup.ChannelOptions(rows), err
	})
}

// RecordOptions builds a source listing records of a collection by key.
func RecordOptions[T ldm.Record](list func(ctx context.Context) ([]T, error), label func(T) string) OptionSource {
	return func(ctx context.Context) ([]lookup.Option, error) {
		items, err := list(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]lookup.Option, 0, len(items))
		for _, item := range items {
			out = append(out, lookup.Option{Value: item.Key(), Label: label(item)})
		}
		return out, nil
	}
}

// Load fetches every named source concurrently. Either all of them resolve or
// none are returned.
func (o *Options) Load(ctx context.Context, names []string) (map[string][]lookup.Option, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	unique := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name != "" {
			unique[name] = struct{}{}
		}
	}
	ordered := make([]string, 0, len(unique))
	for name := range unique {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)

	results := make(map[string]*[]lookup.Option, len(ordered))
	var batch ldm.Batch
	for _, name := range ordered {
		src, ok := o.sources[name]
		if !ok {
			return nil, fmt.Errorf("console: no option source %q", name)
		}
		dst := new([]lookup.Option)
		results[name] = dst
		ldm.Add(&batch, name, dst, src)
	}
	if err := batch.Run(ctx); err != nil {
		return nil, err
	}
	out := make(map[string][]lookup.Option, len(results))
	for name, dst := range results {
		out[name] = *dst
	}
	return out, nil
}
