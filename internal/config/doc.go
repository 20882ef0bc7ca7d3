// Package config loads pokedex configuration.
//
// # Overview
//
// Settings are layered, lowest precedence first:
//
//  1. Built-in defaults (see Default)
//  2. The TOML file, ~/.config/pokedex/config.toml unless a path is given
//  3. POKEDEX_* environment variables (POKEDEX_SERVER_ADDR for server.addr)
//  4. Command-line flags, applied by cmd/pokedex after Load returns
//
// A missing file is not an error. Empty string values fall back to their
// defaults and paths beginning with ~ are expanded to absolute paths.
//
// # Configuration Fields
//
//	base_url          PokeAPI root, default https://pokeapi.co/api/v2
//	index_limit       entries requested from the index, default 1025
//	fetch_concurrency bound on in-flight entity fetches, default 16; <= 0 is unbounded
//	request_timeout   per-request timeout, default 0 (none)
//	refresh_interval  TUI snapshot tick, default 500ms
//	log_file          default ~/.local/state/pokedex/pokedex.log
//	log_level         debug, info, warn or error
//	server.addr       listen address for `pokedex serve`, default :8080
package config
