// Package pokeapitest provides an in-process fake of the PokeAPI endpoints
// pokedex consumes, for use in tests.
package pokeapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/five82/pokedex/internal/pokeapi"
)

// Server is a fake PokeAPI backed by httptest.Server.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	pokemon  []pokeapi.Pokemon
	failIDs  map[int]int
	gate     chan struct{}
	requests atomic.Int32
}

// NewServer starts a fake serving the given records in index order. Callers
// must Close it.
func NewServer(pokemon ...pokeapi.Pokemon) *Server {
	s := &Server{pokemon: pokemon, failIDs: make(map[int]int)}
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon", s.handleIndex)
	mux.HandleFunc("/pokemon/", s.handleEntity)
	s.Server = httptest.NewServer(mux)
	return s
}

// Named builds minimal records with ids 1..n in the given order.
func Named(names ...string) []pokeapi.Pokemon {
	out := make([]pokeapi.Pokemon, len(names))
	for i, name := range names {
		p := pokeapi.Pokemon{ID: i + 1, Name: name}
		p.Sprites.FrontDefault = fmt.Sprintf("https://img.example/%d.png", i+1)
		out[i] = p
	}
	return out
}

// Fail makes entity requests for id answer with status.
func (s *Server) Fail(id, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failIDs[id] = status
}

// Hold blocks entity requests until Release is called.
func (s *Server) Hold() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = make(chan struct{})
}

// Release unblocks requests parked by Hold.
func (s *Server) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate != nil {
		close(s.gate)
		s.gate = nil
	}
}

// Requests reports how many requests the fake has served.
func (s *Server) Requests() int {
	return int(s.requests.Load())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)
	s.mu.Lock()
	records := s.pokemon
	s.mu.Unlock()

	limit := len(records)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n < limit {
			limit = n
		}
	}
	resp := pokeapi.IndexResponse{Count: len(records)}
	for _, p := range records[:limit] {
		resp.Results = append(resp.Results, pokeapi.Reference{
			Name: p.Name,
			URL:  fmt.Sprintf("%s/pokemon/%d/", s.URL, p.ID),
		})
	}
	writeJSON(w, resp)
}

func (s *Server) handleEntity(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)
	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	raw := strings.Trim(strings.TrimPrefix(r.URL.Path, "/pokemon/"), "/")
	id, err := strconv.Atoi(raw)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	status, failing := s.failIDs[id]
	var found *pokeapi.Pokemon
	for i := range s.pokemon {
		if s.pokemon[i].ID == id {
			found = &s.pokemon[i]
			break
		}
	}
	s.mu.Unlock()

	if failing {
		http.Error(w, "upstream failure", status)
		return
	}
	if found == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, found)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
