// Package app is the composition root: it turns a config.Config into a
// Runtime (log file, PokeAPI client, catalog loader, shared store) and hands
// it to one of the front ends.
//
// # Flow
//
//	NewRuntime(cfg)
//	  ├─> diag.Open()          JSON log file
//	  ├─> pokeapi.NewClient()  HTTP client
//	  ├─> catalog.NewLoader()  bounded fan-out
//	  └─> state.Store{}        shared snapshot
//
//	StartLoader()  one background load, tagged with a load id
//	  ├─> store.Begin(id)
//	  ├─> loader.Load()
//	  └─> store.Finish()
//
// Front ends read the store independently:
//
//   - Run: the Bubble Tea TUI polls snapshots on a tick
//   - WaitCatalog: CLI commands block until the load completes
//   - Serve: the JSON API answers 503 until the load completes
//
// # Error Handling
//
// Configuration and log file errors are fatal and returned from NewRuntime.
// A failed catalog load is logged once with its load id. The TUI and the
// JSON API then show an empty catalog; WaitCatalog returns the error so CLI
// commands exit non-zero.
package app
