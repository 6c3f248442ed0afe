// Package longpress tells short presses from long ones without polling.
//
// Press arms a deferred fire task; Release before it runs disarms it and
// reports a short press; if the task runs first the press is long. Release
// and fire race, and whichever passes the detector's critical section
// first decides the outcome. The loser becomes a no-op.
package longpress

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/internal"
	"github.com/wristnav/wristnav/pkg/wristnav/scheduler"
)

// ErrClosed is returned by Press after Close.
var ErrClosed = errors.New("longpress: closed")

// State of the detector.
type State int

const (
	StateIdle     State = iota
	StateArmed          // Pressed, fire task queued
	StateDisarmed       // Released in time, fire cancelled
	StateFired          // Fire task ran while still held
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateDisarmed:
		return "disarmed"
	case StateFired:
		return "fired"
	default:
		return "unknown"
	}
}

// Outcome is what a Release turned out to be.
type Outcome int

const (
	OutcomeNone  Outcome = iota // Release without a matching press
	OutcomeShort                // Released before the delay
	OutcomeLong                 // The long action already fired
)

func (o Outcome) String() string {
	switch o {
	case OutcomeShort:
		return "short"
	case OutcomeLong:
		return "long"
	default:
		return "none"
	}
}

// Config describes one detector.
type Config struct {
	Name      string
	Delay     time.Duration // How long the button must be held
	Tolerance time.Duration // Scheduling slack for the fire task

	// OnLong runs on the scheduler when the button was held long enough.
	OnLong func()

	// OnShort runs in the caller of Release when the press was short. It
	// is typically an edge handler, so OnShort must not block.
	OnShort func()

	Logger *slog.Logger
}

// Detector implements the Idle, Armed, Disarmed/Fired, Idle cycle.
// Every transition happens under mu. The generation counter ties a fire
// task to the press that armed it, so a fire task that lost its race can
// never fire a later press.
type Detector struct {
	cfg   Config
	sched scheduler.Scheduler

	mu         sync.Mutex
	state      State
	handle     scheduler.Handle
	generation uint64
	pressedAt  time.Time
	held       time.Duration
	closed     bool
}

// New creates an idle detector.
func New(sched scheduler.Scheduler, cfg Config) *Detector {
	if cfg.Logger == nil {
		cfg.Logger = internal.Component("longpress").With("detector", cfg.Name)
	}
	return &Detector{
		cfg:   cfg,
		sched: sched,
	}
}

// Press arms the detector. Pressing again while armed restarts the delay.
// A scheduling failure leaves the detector idle and is returned.
func (d *Detector) Press(at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if d.state == StateArmed {
		d.sched.Cancel(d.handle)
		d.handle = scheduler.NoHandle
	}

	d.generation++
	gen := d.generation
	h, err := d.sched.Schedule(func() { d.fire(gen) }, d.cfg.Delay, d.cfg.Tolerance)
	if err != nil {
		d.state = StateIdle
		d.cfg.Logger.Warn("arm failed", "error", err)
		return err
	}

	d.state = StateArmed
	d.handle = h
	d.pressedAt = at
	return nil
}

// Release ends a press.
func (d *Detector) Release(at time.Time) Outcome {
	d.mu.Lock()

	switch d.state {
	case StateArmed:
		d.sched.Cancel(d.handle)
		d.handle = scheduler.NoHandle
		d.state = StateDisarmed
		held := at.Sub(d.pressedAt)
		d.held = held
		d.mu.Unlock()

		d.cfg.Logger.Debug("short press", "held", held)
		if d.cfg.OnShort != nil {
			d.cfg.OnShort()
		}
		return OutcomeShort

	case StateFired:
		d.state = StateIdle
		d.held = at.Sub(d.pressedAt)
		d.mu.Unlock()
		return OutcomeLong

	default:
		d.mu.Unlock()
		return OutcomeNone
	}
}

func (d *Detector) fire(gen uint64) {
	d.mu.Lock()
	if d.state != StateArmed || d.generation != gen {
		// Release (or a newer press) got here first.
		d.mu.Unlock()
		return
	}
	d.handle = scheduler.NoHandle
	d.state = StateFired
	d.mu.Unlock()

	d.cfg.Logger.Debug("long press")
	if d.cfg.OnLong != nil {
		d.cfg.OnLong()
	}
}

// State returns the current state.
func (d *Detector) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Held returns how long the last completed press lasted.
func (d *Detector) Held() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.held
}

// Close cancels a pending fire task. Later presses return ErrClosed.
func (d *Detector) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateArmed {
		d.sched.Cancel(d.handle)
	}
	d.handle = scheduler.NoHandle
	d.generation++
	d.state = StateIdle
	d.closed = true
}
