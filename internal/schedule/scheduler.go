// Package schedule runs delayed and self-rescheduling tasks.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Handle cancels a scheduled run. Stop reports whether the run was prevented.
type Handle interface {
	Stop() bool
}

// Scheduler runs a task once after a delay
type Scheduler interface {
	ScheduleOnce(delay time.Duration, task func()) Handle
}

// TimerScheduler schedules tasks on runtime timers. Each task runs on its own goroutine.
type TimerScheduler struct{}

// ScheduleOnce implements Scheduler
func (TimerScheduler) ScheduleOnce(delay time.Duration, task func()) Handle {
	return time.AfterFunc(delay, task)
}

// Task does one unit of work and returns how long to wait before the next run
type Task func(ctx context.Context) time.Duration

// Periodic re-arms a Task on a Scheduler after each run finishes, so at most one
// run is ever in flight. It stops when Stop is called or its context is done.
type Periodic struct {
	sched Scheduler
	task  Task
	ctx   context.Context

	mu      sync.Mutex
	cancel  context.CancelFunc
	handle  Handle
	stopped bool
	runs    int
}

// Start schedules the first run of task after initial and returns its handle
func Start(ctx context.Context, sched Scheduler, initial time.Duration, task Task) *Periodic {
	ctx, cancel := context.WithCancel(ctx)
	p := &Periodic{
		sched:  sched,
		task:   task,
		ctx:    ctx,
		cancel: cancel,
	}

	p.mu.Lock()
	p.handle = sched.ScheduleOnce(initial, p.run)
	p.mu.Unlock()

	return p
}

func (p *Periodic) run() {
	if p.ctx.Err() != nil {
		p.Stop()
		return
	}

	next := p.task(p.ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.runs++
	if p.stopped || p.ctx.Err() != nil {
		return
	}
	p.handle = p.sched.ScheduleOnce(next, p.run)
}

// Stop prevents any further runs and cancels the context passed to a run in progress
func (p *Periodic) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	p.stopped = true
	p.cancel()
	if p.handle != nil {
		p.handle.Stop()
		p.handle = nil
	}
}

// Runs returns how many times the task has completed
func (p *Periodic) Runs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runs
}

// Stopped reports whether the task will run again
func (p *Periodic) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}
