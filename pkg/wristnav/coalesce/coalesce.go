// Package coalesce turns bursts of button edges into deferred work.
//
// Edge handlers call Trigger, which only bumps a counter and, if nothing is
// outstanding yet, posts a single task. The task performs one unit of work
// per recorded edge, reposting itself while edges remain, so a burst of N
// presses never has more than one task queued at a time and no press is
// lost even if it arrives while the task runs.
package coalesce

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/internal"
	"github.com/wristnav/wristnav/pkg/wristnav/scheduler"
	"go.uber.org/atomic"
)

// ErrClosed is returned by Trigger after Close.
var ErrClosed = errors.New("coalesce: closed")

// Coalescer owns one pending counter and one task slot.
//
// The counter and the handle are only changed while holding mu, which is
// shared by the edge side (Trigger) and the task side (run), so scheduling,
// completion and Close are serialized. The counter is additionally an
// atomic so it can be sampled without taking the lock.
type Coalescer struct {
	name      string
	sched     scheduler.Scheduler
	tolerance time.Duration
	work      func()

	mu      sync.Mutex
	pending atomic.Int32
	handle  scheduler.Handle
	closed  bool

	runs    atomic.Uint64
	dropped atomic.Uint64
	logger  *slog.Logger
}

// Option configures a Coalescer.
type Option func(*Coalescer)

// WithTolerance sets the scheduling tolerance of the posted task.
func WithTolerance(d time.Duration) Option {
	return func(c *Coalescer) { c.tolerance = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Coalescer) { c.logger = logger }
}

// New creates a coalescer that runs work once per Trigger on sched.
func New(name string, sched scheduler.Scheduler, work func(), opts ...Option) *Coalescer {
	c := &Coalescer{
		name:  name,
		sched: sched,
		work:  work,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = internal.Component("coalesce").With("slot", name)
	}
	return c
}

// Trigger records one edge. It never runs work itself and never waits on
// it, so it is safe to call from input handlers.
//
// When no task is outstanding and the scheduler has no free slot, the edge
// is dropped and the wrapped scheduler error returned. When a task is
// outstanding the edge is simply counted; that task will pick it up.
func (c *Coalescer) Trigger() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	c.pending.Inc()
	if c.handle != scheduler.NoHandle {
		return nil
	}

	h, err := c.sched.Schedule(c.run, 0, c.tolerance)
	if err != nil {
		c.pending.Dec()
		c.dropped.Inc()
		return fmt.Errorf("coalesce: %s: %w", c.name, err)
	}
	c.handle = h
	return nil
}

func (c *Coalescer) run() {
	c.work()
	c.runs.Inc()

	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.pending.Dec()
	if n < 0 {
		panic(fmt.Sprintf("coalesce: %s: pending count went negative (%d)", c.name, n))
	}

	if n == 0 || c.closed {
		c.handle = scheduler.NoHandle
		return
	}

	h, err := c.sched.Schedule(c.run, 0, c.tolerance)
	if err != nil {
		// The backlog stays counted; the next Trigger finds the slot empty
		// and posts a fresh task that drains it.
		c.handle = scheduler.NoHandle
		c.logger.Warn("repost failed", "pending", n, "error", err)
		return
	}
	c.handle = h
}

// Pending returns the number of recorded edges not yet worked off.
func (c *Coalescer) Pending() int32 {
	return c.pending.Load()
}

// Scheduled reports whether a task is queued or running.
func (c *Coalescer) Scheduled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle != scheduler.NoHandle
}

// Runs returns how many times work has run.
func (c *Coalescer) Runs() uint64 {
	return c.runs.Load()
}

// Dropped returns how many edges were rejected because no task could be
// scheduled.
func (c *Coalescer) Dropped() uint64 {
	return c.dropped.Load()
}

// Close cancels the outstanding task, if it has not started yet, and makes
// further Triggers fail. A task already running finishes its current unit
// of work and does not repost.
func (c *Coalescer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.handle != scheduler.NoHandle && c.sched.Cancel(c.handle) {
		c.handle = scheduler.NoHandle
	}
}
