package catalog

import "strings"

// Filter returns the entries whose name contains query case-insensitively or
// whose zero-padded identifier contains query literally. The result preserves
// the order of entries and is always a fresh slice; an empty query matches
// everything.
func Filter(entries []Entry, query string) []Entry {
	out := make([]Entry, 0, len(entries))
	needle := strings.ToLower(query)
	for _, e := range entries {
		if Matches(e, query, needle) {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether e satisfies the search predicate. lowered must be
// strings.ToLower(query); it is passed in so Filter lowers the query once.
func Matches(e Entry, query, lowered string) bool {
	if strings.Contains(strings.ToLower(e.Name), lowered) {
		return true
	}
	return strings.Contains(PaddedID(e.ID), query)
}
