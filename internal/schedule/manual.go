package schedule

import (
	"sync"
	"time"
)

// Manual is a Scheduler that never fires on its own; callers advance it with
// RunNext. Used in tests and for one-shot runs.
type Manual struct {
	mu      sync.Mutex
	pending []*manualEntry
}

type manualEntry struct {
	delay   time.Duration
	task    func()
	stopped bool
}

func (e *manualEntry) Stop() bool {
	if e.stopped {
		return false
	}
	e.stopped = true
	return true
}

// ScheduleOnce implements Scheduler
func (m *Manual) ScheduleOnce(delay time.Duration, task func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := &manualEntry{delay: delay, task: task}
	m.pending = append(m.pending, e)
	return &manualHandle{m: m, e: e}
}

type manualHandle struct {
	m *Manual
	e *manualEntry
}

func (h *manualHandle) Stop() bool {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	return h.e.Stop()
}

// Delays returns the delays of runs that are still scheduled, oldest first
func (m *Manual) Delays() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	var delays []time.Duration
	for _, e := range m.pending {
		if !e.stopped {
			delays = append(delays, e.delay)
		}
	}
	return delays
}

// RunNext runs the oldest scheduled task on the calling goroutine. It returns the
// task's delay and false when nothing is scheduled.
func (m *Manual) RunNext() (time.Duration, bool) {
	m.mu.Lock()
	var next *manualEntry
	for len(m.pending) > 0 {
		e := m.pending[0]
		m.pending = m.pending[1:]
		if !e.stopped {
			e.stopped = true
			next = e
			break
		}
	}
	m.mu.Unlock()

	if next == nil {
		return 0, false
	}
	next.task()
	return next.delay, true
}
