package state

import (
	"sync"
	"time"

	"github.com/five82/pokedex/internal/catalog"
)

// Snapshot represents the latest catalog data available to readers.
type Snapshot struct {
	Catalog    catalog.State[[]catalog.Entry]
	LoadID     string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Entries returns the loaded collection, or nil unless the catalog is Loaded.
func (s Snapshot) Entries() []catalog.Entry {
	entries, _ := s.Catalog.Data()
	return entries
}

// Loading reports whether the catalog load is still in flight.
func (s Snapshot) Loading() bool {
	return s.Catalog.Pending()
}

// Store coordinates the single writer (the catalog loader goroutine) with
// any number of readers (UI tick, HTTP handlers).
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	version  uint64
}

// Begin marks a catalog load as started. Previously loaded entries are
// discarded: a reload starts from an empty collection.
func (s *Store) Begin(loadID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = Snapshot{
		Catalog:   catalog.Loading[[]catalog.Entry](),
		LoadID:    loadID,
		StartedAt: time.Now(),
	}
	s.version++
}

// Finish records the outcome of the load started by Begin. When err is
// non-nil the catalog becomes Failed and holds no entries.
func (s *Store) Finish(entries []catalog.Entry, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.Catalog = catalog.Failed[[]catalog.Entry](err)
	} else {
		s.snapshot.Catalog = catalog.Loaded(cloneEntries(entries))
	}
	s.snapshot.FinishedAt = time.Now()
	s.version++
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if entries, ok := s.snapshot.Catalog.Data(); ok {
		snap.Catalog = catalog.Loaded(cloneEntries(entries))
	}
	return snap
}

// Version increments on every Begin and Finish so readers can tell whether
// the collection changed since their last look.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func cloneEntries(entries []catalog.Entry) []catalog.Entry {
	if len(entries) == 0 {
		return []catalog.Entry{}
	}
	dup := make([]catalog.Entry, len(entries))
	copy(dup, entries)
	return dup
}
