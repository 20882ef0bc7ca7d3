package catalog

import (
	"fmt"
	"strings"

	"github.com/five82/pokedex/internal/pokeapi"
)

// Entry is the lightweight catalog row shown on the list screen.
type Entry struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// Stat is one base stat of a Detail, in API order.
type Stat struct {
	Name  string `json:"statName"`
	Value int    `json:"value"`
}

// Detail is the full record loaded per detail visit.
type Detail struct {
	Entry
	ArtworkURL string   `json:"artworkUrl"`
	Height     int      `json:"height"` // decimetres
	Weight     int      `json:"weight"` // hectograms
	Abilities  []string `json:"abilities"`
	Stats      []Stat   `json:"stats"`
}

// NewEntry maps an API payload to an Entry with a lowercase canonical name.
func NewEntry(p pokeapi.Pokemon) Entry {
	return Entry{
		ID:       p.ID,
		Name:     strings.ToLower(strings.TrimSpace(p.Name)),
		ImageURL: p.Sprites.FrontDefault,
	}
}

// NewDetail maps an API payload to a Detail.
func NewDetail(p pokeapi.Pokemon) Detail {
	stats := make([]Stat, 0, len(p.Stats))
	for _, s := range p.Stats {
		stats = append(stats, Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}
	return Detail{
		Entry:      NewEntry(p),
		ArtworkURL: p.ArtworkURL(),
		Height:     p.Height,
		Weight:     p.Weight,
		Abilities:  p.AbilityNames(),
		Stats:      stats,
	}
}

// PaddedID renders id as a zero-padded three digit decimal ("007").
// Identifiers above 999 keep all their digits.
func PaddedID(id int) string {
	return fmt.Sprintf("%03d", id)
}

// Label renders the entry the way both screens title it: "#025 pikachu".
func (e Entry) Label() string {
	return "#" + PaddedID(e.ID) + " " + e.Name
}

// HeightMeters converts decimetres to metres.
func (d Detail) HeightMeters() float64 {
	return float64(d.Height) / 10
}

// WeightKilograms converts hectograms to kilograms.
func (d Detail) WeightKilograms() float64 {
	return float64(d.Weight) / 10
}

// StatTotal sums all base stats.
func (d Detail) StatTotal() int {
	total := 0
	for _, s := range d.Stats {
		total += s.Value
	}
	return total
}
