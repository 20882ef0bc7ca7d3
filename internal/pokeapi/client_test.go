package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if got := u.String(); got != DefaultBaseURL+"/" {
		t.Fatalf("default base = %q, want %q", got, DefaultBaseURL+"/")
	}

	u, err = parseBaseURL("http://example.com:1234/api/v2?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api/v2/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("pokeapi.example")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "pokeapi.example" {
		t.Fatalf("scheme/host = %q/%q, want https/pokeapi.example", u.Scheme, u.Host)
	}
}

func TestParseBaseURL_RejectsMissingHost(t *testing.T) {
	if _, err := parseBaseURL("http:///only/path"); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want missing host error")
	}
}

func TestClient_FetchesIndexAndEntities(t *testing.T) {
	t.Parallel()

	var gotLimit, gotUserAgent, gotAccept string
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/api/v2/pokemon", func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		_ = json.NewEncoder(w).Encode(IndexResponse{
			Count: 2,
			Results: []Reference{
				{Name: "bulbasaur", URL: server.URL + "/api/v2/pokemon/1/"},
				{Name: "ivysaur", URL: server.URL + "/api/v2/pokemon/2/"},
			},
		})
	})
	mux.HandleFunc("/api/v2/pokemon/1/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"id": 1, "name": "bulbasaur", "height": 7, "weight": 69,
			"sprites": {"front_default": "front.png", "other": {"official-artwork": {"front_default": "art.png"}}},
			"abilities": [{"ability": {"name": "overgrow"}, "slot": 1}, {"ability": {"name": "chlorophyll"}, "is_hidden": true, "slot": 3}],
			"stats": [{"base_stat": 45, "stat": {"name": "hp"}}]
		}`))
	})
	mux.HandleFunc("/api/v2/pokemon/2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 2, "name": "ivysaur"}`))
	})

	c, err := NewClient(server.URL + "/api/v2")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	refs, err := c.FetchIndex(ctx, 1025)
	if err != nil {
		t.Fatalf("FetchIndex returned error: %v", err)
	}
	if gotLimit != "1025" {
		t.Fatalf("limit query = %q, want 1025", gotLimit)
	}
	if !strings.HasPrefix(gotUserAgent, "pokedex/") {
		t.Fatalf("User-Agent = %q, want pokedex/*", gotUserAgent)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
	if len(refs) != 2 || refs[0].Name != "bulbasaur" || refs[1].Name != "ivysaur" {
		t.Fatalf("refs = %#v, want bulbasaur, ivysaur", refs)
	}

	p, err := c.FetchPokemon(ctx, refs[0].URL)
	if err != nil {
		t.Fatalf("FetchPokemon returned error: %v", err)
	}
	if p.ID != 1 || p.Name != "bulbasaur" || p.Sprites.FrontDefault != "front.png" {
		t.Fatalf("FetchPokemon payload = %#v", p)
	}
	if got := p.ArtworkURL(); got != "art.png" {
		t.Fatalf("ArtworkURL = %q, want art.png", got)
	}
	if diff := cmp.Diff([]string{"overgrow", "chlorophyll"}, p.AbilityNames()); diff != "" {
		t.Fatalf("AbilityNames mismatch (-want +got):\n%s", diff)
	}

	p, err = c.FetchPokemonByID(ctx, 2)
	if err != nil {
		t.Fatalf("FetchPokemonByID returned error: %v", err)
	}
	if p.Name != "ivysaur" {
		t.Fatalf("FetchPokemonByID name = %q, want ivysaur", p.Name)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pokemon/1":
			_, _ = w.Write([]byte("{not-json"))
		case "/pokemon/2":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchPokemonByID(context.Background(), 1)
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchPokemonByID(1) error = %v, want decode response error", err)
	}
	if !IsFetchError(err) {
		t.Fatalf("decode failure should be a FetchError, got %T", err)
	}

	_, err = c.FetchPokemonByID(context.Background(), 2)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("FetchPokemonByID(2) error = %v, want *FetchError", err)
	}
	if fe.StatusCode != http.StatusInternalServerError {
		t.Fatalf("StatusCode = %d, want 500", fe.StatusCode)
	}
	if !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("error = %q, want status 500 message", err.Error())
	}
}

func TestClient_TransportErrorIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	c, err := NewClient(base)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchIndex(context.Background(), 3)
	if !IsFetchError(err) {
		t.Fatalf("FetchIndex error = %v, want FetchError", err)
	}
	if !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("error = %q, want execute request message", err.Error())
	}
}

func TestClient_ValidatesArguments(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchPokemonByID(context.Background(), 0); err == nil {
		t.Fatalf("FetchPokemonByID(0) returned nil error, want error")
	}
	if _, err := c.FetchPokemon(context.Background(), "   "); err == nil {
		t.Fatalf("FetchPokemon(blank) returned nil error, want error")
	}

	var nilClient *Client
	if _, err := nilClient.FetchIndex(context.Background(), 1); err == nil {
		t.Fatalf("nil client FetchIndex returned nil error, want error")
	}
}

func TestWithTimeoutSetsHTTPTimeout(t *testing.T) {
	c, err := NewClient("", WithTimeout(3*time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if c.http.Timeout != 3*time.Second {
		t.Fatalf("timeout = %v, want 3s", c.http.Timeout)
	}
}
