package timezones

import (
	"sort"
	"strings"
)

const (
	// DefaultSearchLimit caps result counts when the caller passes limit <= 0.
	DefaultSearchLimit = 20
	// MaxSearchLimit is the hard ceiling on result counts.
	MaxSearchLimit = 100
)

// Search returns zones matching query, case-insensitively. Prefix matches
// rank before substring matches; ties keep alphabetical order. An empty query
// returns the head of the catalog so interactive callers can show suggestions
// before any input has been typed.
func (c *Catalog) Search(query string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if len(c.zones) <= limit {
			return append([]string{}, c.zones...)
		}
		return append([]string{}, c.zones[:limit]...)
	}

	q := strings.ToLower(query)
	matches := make([]matchedZone, 0, 32)
	for _, zone := range c.zones {
		lowerZone := strings.ToLower(zone)
		if !strings.Contains(lowerZone, q) {
			continue
		}
		matches = append(matches, matchedZone{
			name:     zone,
			isPrefix: strings.HasPrefix(lowerZone, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

type matchedZone struct {
	name     string
	isPrefix bool
}
