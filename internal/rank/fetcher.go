// Package rank scrapes a language's position from a ranking page and caches it.
package rank

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mmcdole/rankbar/internal/domain"
)

const (
	// CacheWindow is how long a fetched rank is reused without a network call
	CacheWindow = 24 * time.Hour

	// DefaultTimeout bounds a single page fetch
	DefaultTimeout = 30 * time.Second

	// Arrow separates the previous and current rank in a transition
	Arrow = "→"

	// maxBodySize caps how much of a ranking page is read
	maxBodySize = 8 << 20
)

// Outcome describes how a successful DisplayText call was satisfied
type Outcome string

const (
	OutcomeCacheHit Outcome = "hit"
	OutcomeFetched  Outcome = "fetched"
)

// Observer is notified after each DisplayText call. Implementations must be fast.
type Observer interface {
	ObserveFetch(source string, outcome Outcome, rank int, err error)
}

// Fetcher returns the display text for the rank of a single source.
type Fetcher struct {
	source    domain.Source
	prefs     domain.Prefs
	client    *http.Client
	userAgent string
	now       func() time.Time
	observer  Observer
	logger    *slog.Logger
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithHTTPClient replaces the default client (which uses DefaultTimeout)
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithTimeout sets the timeout of the default client
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.client = &http.Client{Timeout: timeout}
		}
	}
}

// WithClock overrides time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) {
		f.now = now
	}
}

// WithUserAgent sets the User-Agent header sent with each request
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithObserver registers a fetch observer (metrics)
func WithObserver(o Observer) Option {
	return func(f *Fetcher) {
		f.observer = o
	}
}

// NewFetcher creates a fetcher for src backed by prefs
func NewFetcher(src domain.Source, prefs domain.Prefs, logger *slog.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		source:    src,
		prefs:     prefs,
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: "rankbar",
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Source returns the source this fetcher scrapes
func (f *Fetcher) Source() domain.Source {
	return f.source
}

// Cached reads the stored rank. Malformed values read as zero, and the second
// return is false unless both halves of the pair are set.
func (f *Fetcher) Cached() (domain.CachedRank, bool) {
	var c domain.CachedRank

	if v, err := strconv.Atoi(f.prefs.Get(f.source.RankKey(), "0")); err == nil {
		c.Value = v
	}
	if ts, err := strconv.ParseInt(f.prefs.Get(f.source.FetchedAtKey(), "0"), 10, 64); err == nil {
		c.FetchedAt = ts
	}

	return c, c.IsSet()
}

// DisplayText returns "#<rank>" from cache when fresh, otherwise fetches the page,
// stores the new rank, and reports a change as "#<old>→#<new>".
// Every failure is a *FetchError.
func (f *Fetcher) DisplayText(ctx context.Context) (string, error) {
	cached, _ := f.Cached()
	now := f.now()

	if cached.FreshAt(now, CacheWindow) {
		f.logger.Debug("rank cache hit", "source", f.source.Name, "rank", cached.Value)
		f.observe(OutcomeCacheHit, cached.Value, nil)
		return FormatDisplay(0, cached.Value), nil
	}

	value, err := f.fetch(ctx)
	if err != nil {
		f.observe("", 0, err)
		return "", err
	}

	err = f.prefs.PutAll(map[string]string{
		f.source.RankKey():      strconv.Itoa(value),
		f.source.FetchedAtKey(): strconv.FormatInt(now.UnixMilli(), 10),
	})
	if err != nil {
		err = &FetchError{Source: f.source.Name, Reason: ReasonPersist, Err: err}
		f.observe("", 0, err)
		return "", err
	}

	f.logger.Info("rank fetched", "source", f.source.Name, "rank", value, "previous", cached.Value)
	f.observe(OutcomeFetched, value, nil)
	return FormatDisplay(cached.Value, value), nil
}

// fetch downloads the ranking page and extracts the rank
func (f *Fetcher) fetch(ctx context.Context) (int, error) {
	networkErr := func(err error) error {
		return &FetchError{Source: f.source.Name, Reason: ReasonNetwork, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.source.URL, nil)
	if err != nil {
		return 0, networkErr(err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	f.logger.Debug("fetching ranking page", "source", f.source.Name, "url", f.source.URL)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, networkErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, networkErr(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, networkErr(err)
	}

	return Extract(string(body), f.source)
}

func (f *Fetcher) observe(outcome Outcome, rank int, err error) {
	if f.observer != nil {
		f.observer.ObserveFetch(f.source.Name, outcome, rank, err)
	}
}

// FormatDisplay renders a rank, or a transition when old is set and differs
func FormatDisplay(old, current int) string {
	if old != 0 && old != current {
		return fmt.Sprintf("#%d%s#%d", old, Arrow, current)
	}
	return fmt.Sprintf("#%d", current)
}
