package store

import (
	"sort"
	"testing"

	"github.com/mmcdole/rankbar/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetDefault(t *testing.T) {
	s := NewMemoryStore()

	assert.Equal(t, "0", s.Get("tiobe.rank", "0"))
	require.NoError(t, s.Put("tiobe.rank", "17"))
	assert.Equal(t, "17", s.Get("tiobe.rank", "0"))
}

func TestPrefsStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewPrefsStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.PutAll(map[string]string{
		"tiobe.rank":      "17",
		"tiobe.fetchedAt": "1700000000000",
	}))
	require.NoError(t, s.Close())

	reopened, err := NewPrefsStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	assert.Equal(t, "17", reopened.Get("tiobe.rank", "0"))
	assert.Equal(t, "1700000000000", reopened.Get("tiobe.fetchedAt", "0"))
}

func TestPrefsStoreDelete(t *testing.T) {
	dir := t.TempDir()

	s, err := NewPrefsStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.PutAll(map[string]string{"a": "1", "b": "2", "c": "3"}))
	require.NoError(t, s.Delete("a", "b", "missing"))

	assert.Equal(t, "", s.Get("a", ""))
	assert.Equal(t, "", s.Get("b", ""))
	assert.Equal(t, "3", s.Get("c", ""))

	keys := s.Keys()
	sort.Strings(keys)
	assert.Equal(t, []string{"c"}, keys)
}

func TestPrefsStoreClosed(t *testing.T) {
	s, err := NewPrefsStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Put("k", "v"), domain.ErrStoreClosed)
	assert.ErrorIs(t, s.Delete("k"), domain.ErrStoreClosed)
	assert.Equal(t, "def", s.Get("k", "def"))
}
