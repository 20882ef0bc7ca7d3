package pokeapi

import (
	"errors"
	"fmt"
)

// IndexResponse mirrors the payload returned by /pokemon?limit=N.
type IndexResponse struct {
	Count    int         `json:"count"`
	Next     string      `json:"next"`
	Previous string      `json:"previous"`
	Results  []Reference `json:"results"`
}

// Reference names an entity and the locator of its full resource.
type Reference struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// NamedResource is PokeAPI's generic {name, url} pointer.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Pokemon mirrors the subset of /pokemon/{id} the application reads.
type Pokemon struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Height    int           `json:"height"`
	Weight    int           `json:"weight"`
	Sprites   Sprites       `json:"sprites"`
	Abilities []AbilitySlot `json:"abilities"`
	Stats     []StatSlot    `json:"stats"`
}

// Sprites holds image locators.
type Sprites struct {
	FrontDefault string       `json:"front_default"`
	Other        OtherSprites `json:"other"`
}

// OtherSprites groups the alternative artwork sets.
type OtherSprites struct {
	OfficialArtwork Artwork `json:"official-artwork"`
}

// Artwork is a single artwork set.
type Artwork struct {
	FrontDefault string `json:"front_default"`
}

// AbilitySlot is one entry of the abilities array.
type AbilitySlot struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

// StatSlot is one entry of the stats array.
type StatSlot struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// ArtworkURL returns the official artwork locator, falling back to the
// default front sprite when the artwork is missing.
func (p Pokemon) ArtworkURL() string {
	if p.Sprites.Other.OfficialArtwork.FrontDefault != "" {
		return p.Sprites.Other.OfficialArtwork.FrontDefault
	}
	return p.Sprites.FrontDefault
}

// AbilityNames returns ability names in response order.
func (p Pokemon) AbilityNames() []string {
	names := make([]string, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		names = append(names, a.Ability.Name)
	}
	return names
}

// FetchError is the single failure kind of this package: a transport error,
// a non-2xx response or a malformed body.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.URL == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err wraps a *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
