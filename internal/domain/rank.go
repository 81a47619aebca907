package domain

import "time"

// CachedRank is the last successfully fetched rank for a source.
type CachedRank struct {
	Value     int   // 1-based rank, 0 means unset
	FetchedAt int64 // epoch millis, 0 means unset
}

// IsSet reports whether both halves of the pair are present
func (c CachedRank) IsSet() bool {
	return c.Value != 0 && c.FetchedAt != 0
}

// FreshAt reports whether the rank can be reused at now without refetching
func (c CachedRank) FreshAt(now time.Time, window time.Duration) bool {
	if !c.IsSet() {
		return false
	}
	return now.UnixMilli()-c.FetchedAt < window.Milliseconds()
}

// Source describes where a rank is scraped from and how it is located in the page.
type Source struct {
	Name     string // short identifier, also the storage key prefix
	Title    string // human readable name
	URL      string
	Marker   string // literal anchor identifying the keyword's row
	RowStart string // literal that opens the row; the rank follows it directly
	FieldEnd string // literal that terminates the rank field
}

// RankKey is the preference key holding the cached rank value
func (s Source) RankKey() string {
	return s.Name + ".rank"
}

// FetchedAtKey is the preference key holding the cached fetch timestamp
func (s Source) FetchedAtKey() string {
	return s.Name + ".fetchedAt"
}
