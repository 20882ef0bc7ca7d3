package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Fetcher defines the subset of PokeAPI used by the catalog.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchIndex(ctx context.Context, limit int) ([]Reference, error)
	FetchPokemon(ctx context.Context, ref string) (*Pokemon, error)
	FetchPokemonByID(ctx context.Context, id int) (*Pokemon, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the PokeAPI REST service.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	DefaultBaseURL   = "https://pokeapi.co/api/v2"
	defaultUserAgent = "pokedex/0.1"
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout sets a per-request timeout. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client rooted at baseURL, e.g. https://pokeapi.co/api/v2.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchIndex retrieves up to limit entity references in index order.
func (c *Client) FetchIndex(ctx context.Context, limit int) ([]Reference, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	rel := &url.URL{Path: "pokemon", RawQuery: values.Encode()}
	var payload IndexResponse
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// FetchPokemon retrieves a single entity from the locator returned by the
// index. Relative locators resolve against the base URL.
func (c *Client) FetchPokemon(ctx context.Context, ref string) (*Pokemon, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return nil, fmt.Errorf("resource locator required")
	}
	rel, err := url.Parse(trimmed)
	if err != nil {
		return nil, &FetchError{URL: trimmed, Err: fmt.Errorf("parse locator: %w", err)}
	}
	var payload Pokemon
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchPokemonByID retrieves a single entity by its numeric identifier.
func (c *Client) FetchPokemonByID(ctx context.Context, id int) (*Pokemon, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return nil, fmt.Errorf("pokemon id must be positive, got %d", id)
	}
	rel := &url.URL{Path: "pokemon/" + strconv.Itoa(id)}
	var payload Pokemon
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &FetchError{URL: reqURL, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{URL: reqURL, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &FetchError{
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &FetchError{URL: reqURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// parseBaseURL normalizes the API root so relative endpoint paths resolve
// beneath it: the path always ends in a slash and query/fragment are dropped.
func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
