package ldm

import "sync"

// Store holds the fetched collection, a loading flag and the page error for
// the lifetime of one view.
type Store[T Record] struct {
	mu      sync.RWMutex
	items   []T
	loading bool
	err     string
}

// Begin marks a fetch as in flight and clears the previous error.
func (s *Store[T]) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

// Fill replaces the collection after a successful fetch.
func (s *Store[T]) Fill(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T(nil), items...)
	s.loading = false
	s.err = ""
}

// Fail records a fetch failure and discards any held items.
func (s *Store[T]) Fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.loading = false
	s.err = message
}

// Items returns a copy of the held collection.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.items...)
}

// Len returns the number of held items.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Loading reports whether a fetch is in flight.
func (s *Store[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the page error message, empty when the last fetch succeeded.
func (s *Store[T]) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Find returns the item with the given key.
func (s *Store[T]) Find(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.Key() == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Remove drops the item with the given key and reports whether it was present.
func (s *Store[T]) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.Key() == key {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Upsert replaces the item sharing item's key or appends it.
func (s *Store[T]) Upsert(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Key() == item.Key() {
			s.items[i] = item
			return
		}
	}
	s.items = append(s.items, item)
}
