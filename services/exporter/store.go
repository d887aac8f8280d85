package exporter

import (
	"sync/atomic"
)

// Store owns the currently installed snapshot; it is written by the poll loop
// only and read by any number of concurrent scrape handlers
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns a store holding an empty snapshot, so scrapes before the
// first completed poll cycle serve zero samples instead of failing
func NewStore() *Store {
	store := &Store{}
	empty := Snapshot{}
	store.current.Store(&empty)
	return store
}

// Install atomically replaces the visible snapshot; readers see either the
// previous or the new snapshot in full, never a mix
func (s *Store) Install(snapshot Snapshot) {
	s.current.Store(&snapshot)
}

// Current returns the installed snapshot; the caller must not modify it
func (s *Store) Current() Snapshot {
	return *s.current.Load()
}
