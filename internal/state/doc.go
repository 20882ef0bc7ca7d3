// Package state provides thread-safe state management for the catalog.
//
// # Overview
//
// The Store is the coordination point between the background goroutine that
// runs the one-shot catalog load and the readers that render it (the TUI tick
// and the JSON surface's handlers).
//
// # Architecture
//
//	Producer (app loader):         Consumers:
//	┌──────────────────┐          ┌─────────────────────┐
//	│ store.Begin(id)  │          │ ui: snapshot on tick│
//	│ loader.Load()    │─────────→│ server: per request │
//	│ store.Finish()   │ (mutex)  │                     │
//	└──────────────────┘          └─────────────────────┘
//
// # Core Types
//
// Snapshot carries a catalog.State[[]catalog.Entry] (Idle, Loading,
// Loaded or Failed), the load's correlation id and its timestamps. It is
// returned by value with the entry slice cloned, so readers may keep it.
//
// # Update Semantics
//
//	store.Begin(id)            → Loading, entries discarded
//	store.Finish(entries, nil) → Loaded(entries)
//	store.Finish(_, err)       → Failed(err), no entries
//
// Version increments on each transition; the UI uses it to recompute the
// filtered view only when the source collection changed.
package state
