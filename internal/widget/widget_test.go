package widget

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/rankbar/internal/domain"
	"github.com/mmcdole/rankbar/internal/log"
	"github.com/mmcdole/rankbar/internal/rank"
	"github.com/mmcdole/rankbar/internal/schedule"
	"github.com/mmcdole/rankbar/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	texts []string
	errs  []error
	calls int
}

func (s *stubSource) DisplayText(ctx context.Context) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return s.texts[i], nil
}

type recordingRenderer struct {
	texts []string
}

func (r *recordingRenderer) Render(text string) {
	r.texts = append(r.texts, text)
}

func TestDefaultDelays(t *testing.T) {
	d := DefaultDelays()
	assert.Equal(t, time.Second, d.Initial)
	assert.Equal(t, 23*time.Hour, d.Refresh)
	assert.Equal(t, time.Hour, d.Retry)
}

func TestWidgetSchedulesByOutcome(t *testing.T) {
	fetchErr := &rank.FetchError{Source: "tiobe", Reason: rank.ReasonNetwork}
	src := &stubSource{
		texts: []string{"", "#7", "#7"},
		errs:  []error{fetchErr, nil, nil},
	}
	sched := &schedule.Manual{}
	r := &recordingRenderer{}

	w := New(src, sched, r, DefaultDelays(), log.NullLogger())
	w.Start(context.Background())
	t.Cleanup(w.Stop)

	assert.Equal(t, []time.Duration{time.Second}, sched.Delays())

	// Failure: nothing rendered, retry in exactly one hour
	_, ok := sched.RunNext()
	require.True(t, ok)
	assert.Empty(t, r.texts)
	assert.Equal(t, []time.Duration{time.Hour}, sched.Delays())
	_, err := w.Text()
	assert.ErrorIs(t, err, rank.ErrFetch)

	// Success: rendered, refresh in exactly 23 hours
	_, ok = sched.RunNext()
	require.True(t, ok)
	assert.Equal(t, []string{"#7"}, r.texts)
	assert.Equal(t, []time.Duration{23 * time.Hour}, sched.Delays())

	text, err := w.Text()
	assert.NoError(t, err)
	assert.Equal(t, "#7", text)
}

func TestWidgetFailureKeepsPreviousText(t *testing.T) {
	src := &stubSource{
		texts: []string{"#7", ""},
		errs:  []error{nil, &rank.FetchError{Source: "tiobe", Reason: rank.ReasonMarker}},
	}
	w := New(src, &schedule.Manual{}, &recordingRenderer{}, DefaultDelays(), log.NullLogger())

	assert.Equal(t, 23*time.Hour, w.Refresh(context.Background()))
	assert.Equal(t, time.Hour, w.Refresh(context.Background()))

	text, err := w.Text()
	assert.Equal(t, "#7", text)
	assert.Error(t, err)
}

func TestWidgetStop(t *testing.T) {
	sched := &schedule.Manual{}
	w := New(&stubSource{texts: []string{"#1"}}, sched, &recordingRenderer{}, DefaultDelays(), log.NullLogger())

	w.Start(context.Background())
	w.Start(context.Background()) // no second task
	assert.Len(t, sched.Delays(), 1)

	w.Stop()
	assert.Empty(t, sched.Delays())
	_, ok := sched.RunNext()
	assert.False(t, ok)
}

func TestWidgetEndToEnd(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("<tr><td>7</td><td>9</td><td>Kotlin</td></tr>"))
	}))
	t.Cleanup(srv.Close)

	src := domain.Source{
		Name:     "tiobe",
		URL:      srv.URL,
		Marker:   "<td>Kotlin</td>",
		RowStart: "<tr><td>",
		FieldEnd: "<",
	}
	prefs := store.NewMemoryStore()
	require.NoError(t, prefs.PutAll(map[string]string{
		src.RankKey():      "5",
		src.FetchedAtKey(): "1",
	}))

	var out bytes.Buffer
	sched := &schedule.Manual{}
	fetcher := rank.NewFetcher(src, prefs, log.NullLogger())
	w := New(fetcher, sched, NewLineRenderer(&out, true), DefaultDelays(), log.NullLogger())
	w.Start(context.Background())
	t.Cleanup(w.Stop)

	_, ok := sched.RunNext()
	require.True(t, ok)
	assert.Equal(t, "#5->#7\n", out.String())
	assert.Equal(t, "7", prefs.Get(src.RankKey(), ""))

	// Second run within the cache window does not touch the network
	_, ok = sched.RunNext()
	require.True(t, ok)
	assert.EqualValues(t, 1, hits.Load())
	assert.Equal(t, "#5->#7\n#7\n", out.String())
}

func TestPrintable(t *testing.T) {
	assert.Equal(t, "#5→#7", Printable("#5→#7", false))
	assert.Equal(t, "#5->#7", Printable("#5→#7", true))
	assert.Equal(t, "#7", Printable("#7", true))
}
