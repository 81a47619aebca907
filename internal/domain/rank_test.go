package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCachedRankFreshAt(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	tests := []struct {
		name     string
		cached   CachedRank
		expected bool
	}{
		{"fresh", CachedRank{Value: 7, FetchedAt: now.Add(-time.Hour).UnixMilli()}, true},
		{"one millisecond short of expiry", CachedRank{Value: 7, FetchedAt: now.Add(-window).UnixMilli() + 1}, true},
		{"exactly at expiry", CachedRank{Value: 7, FetchedAt: now.Add(-window).UnixMilli()}, false},
		{"expired", CachedRank{Value: 7, FetchedAt: now.Add(-48 * time.Hour).UnixMilli()}, false},
		{"value unset", CachedRank{Value: 0, FetchedAt: now.UnixMilli()}, false},
		{"timestamp unset", CachedRank{Value: 7}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cached.FreshAt(now, window))
		})
	}
}
