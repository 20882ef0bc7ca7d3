// Package catalog turns PokeAPI payloads into the in-memory catalog and the
// per-entity detail records, and derives the filtered list view.
//
// Load runs the index request, then fans out one request per reference
// through an errgroup (bounded by WithConcurrency) and joins all-or-nothing.
// Filter is a pure function over the loaded entries. State is the tagged
// Idle/Loading/Loaded/Failed value screens keep instead of loose flags.
package catalog
