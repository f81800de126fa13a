package catalog

import "sync/atomic"

// Store publishes catalog snapshots to concurrent readers. Requests call
// Current once and use that snapshot for their whole lifetime; Replace swaps
// the pointer atomically so a half-updated catalog is never observable.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store seeded with the given catalog.
func NewStore(initial *Catalog) *Store {
	s := &Store{}
	if initial == nil {
		initial = New(nil)
	}
	s.current.Store(initial)
	return s
}

// Current returns the active snapshot.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Replace publishes a new snapshot. In-flight requests keep reading the
// snapshot they started with.
func (s *Store) Replace(c *Catalog) {
	if c == nil {
		return
	}
	s.current.Store(c)
}
