package ldm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrFetch is returned when any fetch of a Batch fails.
var ErrFetch = errors.New("ldm: fetch failed")

type fetch struct {
	name string
	run  func(ctx context.Context) (commit func(), err error)
}

// Batch issues independent collection fetches concurrently. Destinations are
// written only when every fetch succeeded.
type Batch struct {
	mu      sync.Mutex
	fetches []fetch
}

// Add registers a fetch whose result lands in dst.
func Add[T any](b *Batch, name string, dst *[]T, list func(ctx context.Context) ([]T, error)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetches = append(b.fetches, fetch{
		name: name,
		run: func(ctx context.Context) (func(), error) {
			items, err := list(ctx)
			if err != nil {
				return nil, err
			}
			return func() { *dst = items }, nil
		},
	})
}

// Run executes every fetch and joins them. On failure nothing is committed.
func (b *Batch) Run(ctx context.Context) error {
	b.mu.Lock()
	fetches := append([]fetch(nil), b.fetches...)
	b.mu.Unlock()

	commits := make([]func(), len(fetches))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range fetches {
		g.Go(func() error {
			commit, err := f.run(gctx)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrFetch, f.name, err)
			}
			commits[i] = commit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, commit := range commits {
		commit()
	}
	return nil
}
