// Package controller turns button edges into navigation.
//
// The forward button pushes the home menu from the root and otherwise
// performs the visible view's action. Holding it for the reset delay asks
// the Resetter to reset the device. A short back press pops one view;
// holding back for the way-back delay returns straight to the root.
//
// Edge handlers only touch the coalescers and detectors. All navigation
// happens in deferred tasks on the scheduler.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/coalesce"
	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/input"
	"github.com/wristnav/wristnav/pkg/wristnav/internal"
	"github.com/wristnav/wristnav/pkg/wristnav/longpress"
	"github.com/wristnav/wristnav/pkg/wristnav/router"
	"github.com/wristnav/wristnav/pkg/wristnav/scheduler"
	"github.com/wristnav/wristnav/pkg/wristnav/surface"
	"github.com/wristnav/wristnav/pkg/wristnav/view"
	"go.uber.org/atomic"
)

// Resetter persists what must survive and resets the device.
type Resetter interface {
	Reset() error
}

// ResetFunc adapts a function to Resetter.
type ResetFunc func() error

func (f ResetFunc) Reset() error { return f() }

// Config assembles a Controller.
type Config struct {
	Root view.View // permanent bottom view, required
	Home view.View // pushed by forward on the root; reused across pops

	Submenu  router.SubmenuFunc
	Power    router.PowerHook
	Resetter Resetter

	WayBackDelay time.Duration
	ResetDelay   time.Duration
	Tolerance    time.Duration

	StackOptions []router.StackOption
	Logger       *slog.Logger
}

// Stats counts what the controller did.
type Stats struct {
	ForwardRuns  uint64
	BackRuns     uint64
	WayBackFires uint64
	Resets       uint64
	Errors       uint64
}

// Controller owns the navigation stack and the input state machines.
type Controller struct {
	sched    scheduler.Scheduler
	stack    *router.Stack
	router   *router.Router
	home     view.View
	resetter Resetter
	logger   *slog.Logger

	forward *coalesce.Coalescer
	back    *coalesce.Coalescer
	wayBack *longpress.Detector
	reset   *longpress.Detector

	wakeup func()

	wayBackFires atomic.Uint64
	resets       atomic.Uint64
	errs         atomic.Uint64
}

// New creates a controller posting its work to sched. The power hook is
// paused right away since only the root is showing.
func New(sched scheduler.Scheduler, cfg Config) *Controller {
	if cfg.WayBackDelay <= 0 {
		cfg.WayBackDelay = constants.DefaultWayBackDelay
	}
	if cfg.ResetDelay <= 0 {
		cfg.ResetDelay = constants.DefaultResetDelay
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = constants.DefaultTolerance
	}
	if cfg.Logger == nil {
		cfg.Logger = internal.Component("controller")
	}

	c := &Controller{
		sched:    sched,
		home:     cfg.Home,
		resetter: cfg.Resetter,
		logger:   cfg.Logger,
	}

	opts := append([]router.StackOption{}, cfg.StackOptions...)
	if cfg.Power != nil {
		opts = append(opts, router.WithPowerHook(cfg.Power))
		cfg.Power.Pause()
	}
	c.stack = router.NewStack(cfg.Root, opts...)

	c.forward = coalesce.New("forward", sched, c.forwardTask, coalesce.WithTolerance(cfg.Tolerance))
	c.back = coalesce.New("back", sched, c.backTask, coalesce.WithTolerance(cfg.Tolerance))

	c.router = router.New(c.stack).
		OnSubmenu(cfg.Submenu).
		OnBack(c.back.Trigger)

	c.wayBack = longpress.New(sched, longpress.Config{
		Name:      "way-back",
		Delay:     cfg.WayBackDelay,
		Tolerance: cfg.Tolerance,
		OnLong:    c.wayBackTask,
		OnShort:   c.requestBack,
	})
	c.reset = longpress.New(sched, longpress.Config{
		Name:      "reset",
		Delay:     cfg.ResetDelay,
		Tolerance: cfg.Tolerance,
		OnLong:    c.resetTask,
	})
	return c
}

// Attach routes the edges of the two buttons to the controller.
func (c *Controller) Attach(forward, back input.EdgeSource) {
	forward.OnFall(c.ForwardPress)
	forward.OnRise(c.ForwardRelease)
	back.OnFall(c.BackPress)
	back.OnRise(c.BackRelease)
}

// ForwardPress counts a forward press and arms the reset timer.
func (c *Controller) ForwardPress(at time.Time) {
	if err := c.reset.Press(at); err != nil {
		c.fail("arm reset", err)
	}
	if err := c.forward.Trigger(); err != nil {
		c.fail("forward", err)
	}
}

// ForwardRelease disarms the reset timer.
func (c *Controller) ForwardRelease(at time.Time) {
	c.reset.Release(at)
}

// BackPress arms the way-back timer.
func (c *Controller) BackPress(at time.Time) {
	if err := c.wayBack.Press(at); err != nil {
		c.fail("arm way back", err)
	}
}

// BackRelease counts a back press unless the way-back timer already fired.
func (c *Controller) BackRelease(at time.Time) {
	c.wayBack.Release(at)
}

func (c *Controller) requestBack() {
	if err := c.back.Trigger(); err != nil {
		c.fail("back", err)
	}
}

func (c *Controller) forwardTask() {
	if err := c.router.Forward(c.home); err != nil {
		c.fail("forward task", err)
	}
	c.wake()
}

func (c *Controller) backTask() {
	c.stack.Pop()
	c.wake()
}

func (c *Controller) wayBackTask() {
	c.wayBackFires.Inc()
	c.logger.Debug("way back", "size", c.stack.Len())
	c.stack.Reset()
	c.wake()
}

func (c *Controller) resetTask() {
	c.resets.Inc()
	if c.resetter == nil {
		c.logger.Warn("reset requested but no resetter configured")
		return
	}
	c.logger.Info("resetting device")
	if err := c.resetter.Reset(); err != nil {
		c.fail("reset", err)
	}
}

func (c *Controller) fail(op string, err error) {
	c.errs.Inc()
	level := slog.LevelError
	if errors.Is(err, scheduler.ErrFull) || errors.Is(err, coalesce.ErrClosed) ||
		errors.Is(err, longpress.ErrClosed) {
		level = slog.LevelWarn
	}
	c.logger.Log(context.Background(), level, "controller: "+op+" failed", "error", err)
}

func (c *Controller) wake() {
	if c.wakeup != nil {
		c.wakeup()
	}
}

// SetWakeup sets the callback invoked whenever the screen changed. Call it
// before edges are attached.
func (c *Controller) SetWakeup(fn func()) {
	c.wakeup = fn
	c.stack.SetWakeup(fn)
}

// Stack returns the navigation stack. Only touch it from scheduler tasks.
func (c *Controller) Stack() *router.Stack { return c.stack }

// Router returns the action consumer.
func (c *Controller) Router() *router.Router { return c.router }

// RenderInto draws the stack. Call it from the scheduler goroutine.
func (c *Controller) RenderInto(fb *surface.FrameBuffer) time.Duration {
	return c.stack.RenderInto(fb, 0, 0)
}

// Stats returns the counters.
func (c *Controller) Stats() Stats {
	return Stats{
		ForwardRuns:  c.forward.Runs(),
		BackRuns:     c.back.Runs(),
		WayBackFires: c.wayBackFires.Load(),
		Resets:       c.resets.Load(),
		Errors:       c.errs.Load(),
	}
}

// Close cancels every outstanding task. Edges arriving later are dropped.
func (c *Controller) Close() {
	c.forward.Close()
	c.back.Close()
	c.wayBack.Close()
	c.reset.Close()
}
