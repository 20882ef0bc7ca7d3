// Package server exposes the loaded catalog over HTTP as JSON.
//
// Routes:
//
//	GET /health                 liveness
//	GET /api/v1/pokemon?q=...   filtered catalog (503 while loading)
//	GET /api/v1/pokemon/{id}    full record fetched on demand
//
// Every response uses the same envelope: {"success", "data", "error"}.
package server
