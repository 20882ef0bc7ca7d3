// Package pokeapi provides an HTTP client for the public PokeAPI service.
//
// # Overview
//
// The package is a pure consumer of someone else's API. It covers the two
// endpoints the application needs:
//
//   - GET {base}/pokemon?limit=N returns the index of entity references
//   - GET {base}/pokemon/{id} (or the locator from the index) returns one entity
//
// # Architecture
//
//   - client.go: HTTP client, request execution and base URL normalization
//   - types.go: data structures mirroring the response schema and FetchError
//
// # Client Usage
//
//	client, err := pokeapi.NewClient("https://pokeapi.co/api/v2")
//	if err != nil {
//		return err
//	}
//	refs, err := client.FetchIndex(ctx, 1025)
//
// # Error Handling
//
// Every failure is returned as a *FetchError: transport errors, any non-2xx
// status and undecodable bodies. Callers use errors.As to inspect the URL and
// status code. The client never retries and, unless WithTimeout is supplied,
// never times out; cancellation flows through the request context.
package pokeapi
