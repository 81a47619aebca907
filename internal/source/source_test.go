package source

import (
	"testing"

	"github.com/mmcdole/rankbar/internal/domain"
	"github.com/mmcdole/rankbar/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"exact", "tiobe", NameTIOBE},
		{"case insensitive", "PYPL", NamePYPL},
		{"padded", "  pypl ", NamePYPL},
		{"empty falls back to default", "", NameTIOBE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Lookup(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, src.Name)
		})
	}
}

func TestLookupUnknownSuggests(t *testing.T) {
	_, err := Lookup("tiob")
	require.ErrorIs(t, err, domain.ErrUnknownSource)
	assert.Contains(t, err.Error(), `did you mean "tiobe"`)

	_, err = Lookup("pyppl")
	require.ErrorIs(t, err, domain.ErrUnknownSource)
	assert.Contains(t, err.Error(), `did you mean "pypl"`)

	_, err = Lookup("redmonk")
	require.ErrorIs(t, err, domain.ErrUnknownSource)
	assert.Contains(t, err.Error(), "available: pypl, tiobe")
}

func TestKeys(t *testing.T) {
	src := Default()
	assert.Equal(t, "tiobe.rank", src.RankKey())
	assert.Equal(t, "tiobe.fetchedAt", src.FetchedAtKey())
}

func TestActivateClearsOtherSources(t *testing.T) {
	prefs := store.NewMemoryStore()
	tiobe, _ := Lookup(NameTIOBE)
	pypl, _ := Lookup(NamePYPL)

	require.NoError(t, prefs.PutAll(map[string]string{
		tiobe.RankKey():      "17",
		tiobe.FetchedAtKey(): "1000",
		pypl.RankKey():       "12",
		pypl.FetchedAtKey():  "2000",
	}))

	require.NoError(t, Activate(prefs, pypl))

	assert.Equal(t, "", prefs.Get(tiobe.RankKey(), ""))
	assert.Equal(t, "", prefs.Get(tiobe.FetchedAtKey(), ""))
	assert.Equal(t, "12", prefs.Get(pypl.RankKey(), ""))
	assert.Equal(t, "2000", prefs.Get(pypl.FetchedAtKey(), ""))
}
