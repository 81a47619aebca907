// Package widget composes a rank fetcher, a scheduler and a renderer into the
// self-refreshing rank indicator.
package widget

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/rankbar/internal/schedule"
)

// Delays is the refresh cadence of a widget
type Delays struct {
	Initial time.Duration // first run after Start, kept off the caller's goroutine
	Refresh time.Duration // after a successful run
	Retry   time.Duration // after a failed run
}

// DefaultDelays refreshes an hour before the 24h cache expires and retries hourly
func DefaultDelays() Delays {
	return Delays{
		Initial: time.Second,
		Refresh: 23 * time.Hour,
		Retry:   time.Hour,
	}
}

// TextSource produces the text to display
type TextSource interface {
	DisplayText(ctx context.Context) (string, error)
}

// Renderer shows the display text. Render is called from the scheduler's
// goroutine; renderers owning a UI loop must hand the text over to it.
type Renderer interface {
	Render(text string)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(text string)

func (f RendererFunc) Render(text string) { f(text) }

// Widget periodically refreshes the rank and hands the result to a renderer.
// Failures keep the previous text on screen and retry after Delays.Retry.
type Widget struct {
	source   TextSource
	sched    schedule.Scheduler
	renderer Renderer
	delays   Delays
	logger   *slog.Logger

	mu       sync.Mutex
	periodic *schedule.Periodic
	lastText string
	lastErr  error
}

// New creates a widget. It does nothing until Start is called.
func New(source TextSource, sched schedule.Scheduler, renderer Renderer, delays Delays, logger *slog.Logger) *Widget {
	return &Widget{
		source:   source,
		sched:    sched,
		renderer: renderer,
		delays:   delays,
		logger:   logger,
	}
}

// Start schedules the first refresh. Calling Start on a running widget is a no-op.
func (w *Widget) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.periodic != nil && !w.periodic.Stopped() {
		return
	}
	w.logger.Debug("widget starting", "initial_delay", w.delays.Initial)
	w.periodic = schedule.Start(ctx, w.sched, w.delays.Initial, w.Refresh)
}

// Stop disposes the scheduled refresh; no further runs occur
func (w *Widget) Stop() {
	w.mu.Lock()
	p := w.periodic
	w.periodic = nil
	w.mu.Unlock()

	if p != nil {
		p.Stop()
		w.logger.Debug("widget stopped")
	}
}

// Refresh runs one cycle and returns the delay until the next one
func (w *Widget) Refresh(ctx context.Context) time.Duration {
	text, err := w.source.DisplayText(ctx)

	w.mu.Lock()
	w.lastErr = err
	if err == nil {
		w.lastText = text
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("rank refresh failed", "error", err, "retry_in", w.delays.Retry)
		return w.delays.Retry
	}

	w.renderer.Render(text)
	w.logger.Debug("rank refreshed", "text", text, "next_in", w.delays.Refresh)
	return w.delays.Refresh
}

// Text returns the last successfully rendered text and the error of the latest run
func (w *Widget) Text() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastText, w.lastErr
}
