// Package source holds the built-in ranking pages rankbar knows how to scrape.
package source

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/rankbar/internal/domain"
)

const (
	NameTIOBE = "tiobe"
	NamePYPL  = "pypl"
)

// Both pages render the language name in its own cell and the rank as the first
// cell of the same row.
const (
	kotlinMarker = "<td>Kotlin</td>"
	rowStart     = "<tr><td>"
	fieldEnd     = "<"
)

var builtins = map[string]domain.Source{
	NameTIOBE: {
		Name:     NameTIOBE,
		Title:    "TIOBE Index for Kotlin",
		URL:      "https://www.tiobe.com/tiobe-index/",
		Marker:   kotlinMarker,
		RowStart: rowStart,
		FieldEnd: fieldEnd,
	},
	NamePYPL: {
		Name:     NamePYPL,
		Title:    "PYPL Index for Kotlin",
		URL:      "https://pypl.github.io/PYPL.html",
		Marker:   kotlinMarker,
		RowStart: rowStart,
		FieldEnd: fieldEnd,
	},
}

// Default is the source used when none is configured
func Default() domain.Source {
	return builtins[NameTIOBE]
}

// Names returns the built-in source names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every built-in source, sorted by name
func All() []domain.Source {
	names := Names()
	sources := make([]domain.Source, len(names))
	for i, name := range names {
		sources[i] = builtins[name]
	}
	return sources
}

// Lookup resolves a source by name (case-insensitive). Unknown names produce
// domain.ErrUnknownSource, with a suggestion when one is close enough.
func Lookup(name string) (domain.Source, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Default(), nil
	}
	if src, ok := builtins[key]; ok {
		return src, nil
	}

	if suggestion := suggest(key); suggestion != "" {
		return domain.Source{}, fmt.Errorf("%w %q (did you mean %q?)", domain.ErrUnknownSource, name, suggestion)
	}
	return domain.Source{}, fmt.Errorf("%w %q (available: %s)", domain.ErrUnknownSource, name, strings.Join(Names(), ", "))
}

// suggest returns the closest built-in name to key, or "" if nothing is close
func suggest(key string) string {
	names := Names()

	ranks := fuzzy.RankFindNormalizedFold(key, names)
	if len(ranks) == 0 {
		// Allow for typos, not just abbreviations
		best, bestDist := "", 3
		for _, name := range names {
			if d := fuzzy.LevenshteinDistance(key, name); d < bestDist {
				best, bestDist = name, d
			}
		}
		return best
	}

	sort.Sort(ranks)
	return ranks[0].Target
}

// Activate makes active the only source with cached data by clearing the keys of
// every other built-in source.
func Activate(prefs domain.Prefs, active domain.Source) error {
	var stale []string
	for _, src := range All() {
		if src.Name == active.Name {
			continue
		}
		stale = append(stale, src.RankKey(), src.FetchedAtKey())
	}
	if len(stale) == 0 {
		return nil
	}
	if err := prefs.Delete(stale...); err != nil {
		return fmt.Errorf("failed to clear previous source: %w", err)
	}
	return nil
}
