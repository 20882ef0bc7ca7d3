// Package diag owns pokedex's diagnostic log.
//
// The TUI owns the terminal, so records go to a JSON-lines file (log_file in
// the config) instead of stderr. Open creates that logger; Tail and
// ParseRecord read it back for the in-app log screen.
package diag
