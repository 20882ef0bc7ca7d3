// Package ui implements the pokedex terminal interface with Bubble Tea.
//
// # Screens
//
//   - List: a search box over the catalog. The filter runs on every
//     keystroke and matches names case-insensitively or the zero-padded
//     number ("007"). Enter opens the selected entry.
//   - Detail: a fresh fetch of one record. While the fetch is pending, and
//     also when it fails, the screen shows the loading indicator; failures
//     only reach the diagnostics log.
//   - Logs: a tail of the JSON diagnostics log written by internal/diag.
//
// # Data Flow
//
// The catalog is loaded by internal/app in the background and published
// through state.Store. The Model polls Store.Snapshot on a tick and
// re-filters only when Store.Version changed. Detail fetches run as tea.Cmd
// functions; each visit carries a sequence number and its own context so
// a result that arrives after the user moved on is dropped.
//
// # Files
//
//   - app.go: Model, Update/View dispatch, messages and Run
//   - list.go, detail.go, logs.go: the three screens
//   - header.go, help.go: status bar, command bar and help overlay
//   - keys.go, theme.go, style_helpers.go, strings.go: shared pieces
package ui
