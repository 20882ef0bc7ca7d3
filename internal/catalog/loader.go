package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/five82/pokedex/internal/pokeapi"
)

const (
	// DefaultIndexLimit is the last national dex number without alternate forms.
	DefaultIndexLimit = 1025
	// DefaultConcurrency bounds the detail fan-out of Load.
	DefaultConcurrency = 16
)

// Loader builds the catalog and detail records from a pokeapi.Fetcher.
type Loader struct {
	fetcher     pokeapi.Fetcher
	indexLimit  int
	concurrency int
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithIndexLimit sets how many references the index request asks for.
func WithIndexLimit(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.indexLimit = n
		}
	}
}

// WithConcurrency bounds the number of in-flight detail requests during Load.
// Zero or negative removes the bound.
func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) {
		l.concurrency = n
	}
}

// NewLoader returns a Loader backed by fetcher.
func NewLoader(fetcher pokeapi.Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher:     fetcher,
		indexLimit:  DefaultIndexLimit,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Concurrency returns the configured fan-out bound (<= 0 means unbounded).
func (l *Loader) Concurrency() int {
	return l.concurrency
}

// Load fetches the index, then every referenced entity concurrently, and
// returns the entries in index order. The join is all-or-nothing: the first
// failure cancels the outstanding requests and Load returns no entries.
func (l *Loader) Load(ctx context.Context) ([]Entry, error) {
	if l == nil || l.fetcher == nil {
		return nil, fmt.Errorf("loader has no fetcher")
	}
	refs, err := l.fetcher.FetchIndex(ctx, l.indexLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}

	entries := make([]Entry, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	if l.concurrency > 0 {
		g.SetLimit(l.concurrency)
	}
	for i, ref := range refs {
		g.Go(func() error {
			p, err := l.fetcher.FetchPokemon(gctx, ref.URL)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", ref.Name, err)
			}
			entries[i] = NewEntry(*p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// LoadDetail fetches the full record for one identifier. Nothing is reused
// from a previous Load.
func (l *Loader) LoadDetail(ctx context.Context, id int) (Detail, error) {
	if l == nil || l.fetcher == nil {
		return Detail{}, fmt.Errorf("loader has no fetcher")
	}
	p, err := l.fetcher.FetchPokemonByID(ctx, id)
	if err != nil {
		return Detail{}, fmt.Errorf("fetch pokemon %d: %w", id, err)
	}
	return NewDetail(*p), nil
}
