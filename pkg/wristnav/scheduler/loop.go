package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/internal"
	"go.uber.org/atomic"
)

// ErrAlreadyRunning is returned when Run is called on a loop that is running.
var ErrAlreadyRunning = errors.New("scheduler: loop already running")

// Loop is a single goroutine executor. Tasks never overlap: the goroutine
// inside Run executes them one after another in deadline order.
type Loop struct {
	mu      sync.Mutex
	q       queue
	stopped bool

	wake    chan struct{}
	done    chan struct{}
	running atomic.Bool

	executed atomic.Uint64
	logger   *slog.Logger
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithCapacity bounds the number of queued tasks. Zero means unbounded.
func WithCapacity(n int) LoopOption {
	return func(l *Loop) {
		l.q.capacity = n
	}
}

// WithLogger sets the logger used for loop diagnostics.
func WithLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		l.logger = logger
	}
}

// NewLoop creates a stopped loop. Tasks may be scheduled before Run starts;
// they execute once it does.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		q:    newQueue(0),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = internal.Component("scheduler")
	}
	return l
}

func (l *Loop) Schedule(task func(), delay, tolerance time.Duration) (Handle, error) {
	if delay < 0 {
		delay = 0
	}

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return NoHandle, ErrStopped
	}
	h, err := l.q.add(task, time.Now().Add(delay), tolerance)
	l.mu.Unlock()

	if err != nil {
		return NoHandle, err
	}
	l.signal()
	return h, nil
}

func (l *Loop) Cancel(h Handle) bool {
	if h == NoHandle {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.remove(h)
}

// Len returns the number of queued tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.q.timers)
}

// Executed returns how many tasks have run so far.
func (l *Loop) Executed() uint64 {
	return l.executed.Load()
}

// Do runs fn on the loop and waits for it to finish. It must not be called
// from a task, since the loop would wait on itself.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	dropped := make(chan struct{})

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return ErrStopped
	}
	h, err := l.q.add(func() {
		defer close(finished)
		fn()
	}, time.Now(), 0)
	if err == nil {
		l.q.byHandle[h].onDrop = func() { close(dropped) }
	}
	l.mu.Unlock()

	if err != nil {
		return err
	}
	l.signal()

	select {
	case <-finished:
		return nil
	case <-dropped:
		return ErrStopped
	case <-ctx.Done():
		if l.Cancel(h) {
			return ctx.Err()
		}
		// Already picked up by the loop (or dropped by Close).
		select {
		case <-finished:
			return nil
		case <-dropped:
			return ErrStopped
		}
	}
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes tasks until ctx is cancelled or Close is called.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer l.running.Store(false)

	idle := time.NewTimer(time.Hour)
	defer idle.Stop()

	for {
		l.mu.Lock()
		if l.stopped {
			l.mu.Unlock()
			return nil
		}

		var next *timer
		sleep := time.Duration(-1)
		if head := l.q.peek(); head != nil {
			now := time.Now()
			if !head.deadline.After(now) {
				next = l.q.pop()
			} else {
				sleep = l.q.wakeAt().Sub(now)
			}
		}
		l.mu.Unlock()

		if next != nil {
			next.task()
			l.executed.Inc()
			continue
		}

		if !idle.Stop() {
			select {
			case <-idle.C:
			default:
			}
		}
		if sleep >= 0 {
			idle.Reset(sleep)
		} else {
			idle.Reset(time.Hour)
		}

		select {
		case <-ctx.Done():
			l.logger.Debug("loop context done", "error", ctx.Err())
			l.Close()
			return ctx.Err()
		case <-l.done:
			return nil
		case <-l.wake:
		case <-idle.C:
		}
	}
}

// Start runs the loop in its own goroutine.
func (l *Loop) Start(ctx context.Context) {
	go func() {
		if err := l.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			l.logger.Error("loop exited", "error", err)
		}
	}()
}

// Close stops the loop and drops every queued task. Tasks already running
// finish normally.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	dropped := l.q.drain()
	l.mu.Unlock()

	close(l.done)
	for _, t := range dropped {
		if t.onDrop != nil {
			t.onDrop()
		}
	}
	if len(dropped) > 0 {
		l.logger.Debug("loop closed with queued tasks", "dropped", len(dropped))
	}
}
