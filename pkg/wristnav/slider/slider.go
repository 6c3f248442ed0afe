// Package slider provides the touch slider shared by every menu view.
//
// The slider reports a signed speed in the range
// [-constants.SliderResolution, constants.SliderResolution]. Callbacks are
// posted to the scheduler so they run on the executor goroutine, and only
// the callbacks installed at execution time are invoked. A paused slider
// drops its input entirely.
package slider

import (
	"log/slog"
	"sync"
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/scheduler"
	"go.uber.org/atomic"
)

// Slider is the collaborator contract used by the stack (power hook) and
// by menu views (callbacks and speed).
type Slider interface {
	Pause()
	Resume()
	Paused() bool
	SetOnPress(fn func())
	SetOnChange(fn func())
	SetOnRelease(fn func())
	Speed() int
}

type event int

const (
	eventPress event = iota
	eventChange
	eventRelease
)

func (e event) String() string {
	switch e {
	case eventPress:
		return "press"
	case eventChange:
		return "change"
	default:
		return "release"
	}
}

// core holds the callback slots and state shared by every slider.
type core struct {
	sched  scheduler.Scheduler
	logger *slog.Logger

	mu        sync.Mutex
	onPress   func()
	onChange  func()
	onRelease func()

	speed    atomic.Int32
	paused   atomic.Bool
	touching atomic.Bool
}

func (c *core) Pause() {
	if c.paused.CompareAndSwap(false, true) {
		c.touching.Store(false)
		c.speed.Store(0)
		c.logger.Debug("slider paused")
	}
}

func (c *core) Resume() {
	if c.paused.CompareAndSwap(true, false) {
		c.logger.Debug("slider resumed")
	}
}

func (c *core) Paused() bool {
	return c.paused.Load()
}

func (c *core) SetOnPress(fn func()) {
	c.mu.Lock()
	c.onPress = fn
	c.mu.Unlock()
}

func (c *core) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *core) SetOnRelease(fn func()) {
	c.mu.Lock()
	c.onRelease = fn
	c.mu.Unlock()
}

func (c *core) Speed() int {
	return int(c.speed.Load())
}

// Touching reports whether a finger is on the slider.
func (c *core) Touching() bool {
	return c.touching.Load()
}

func (c *core) callback(e event) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch e {
	case eventPress:
		return c.onPress
	case eventChange:
		return c.onChange
	default:
		return c.onRelease
	}
}

func (c *core) press() {
	if c.paused.Load() {
		return
	}
	c.touching.Store(true)
	c.speed.Store(0)
	c.post(eventPress)
}

func (c *core) change(speed int) {
	if c.paused.Load() || !c.touching.Load() {
		return
	}
	c.speed.Store(int32(clampSpeed(speed)))
	c.post(eventChange)
}

func (c *core) release() {
	if c.paused.Load() || !c.touching.CompareAndSwap(true, false) {
		return
	}
	c.post(eventRelease)
}

func (c *core) post(e event) {
	_, err := c.sched.Schedule(func() {
		if fn := c.callback(e); fn != nil {
			fn()
		}
	}, 0, time.Millisecond)
	if err != nil {
		c.logger.Warn("dropping slider event", "event", e.String(), "error", err)
	}
}

func clampSpeed(speed int) int {
	switch {
	case speed > constants.SliderResolution:
		return constants.SliderResolution
	case speed < -constants.SliderResolution:
		return -constants.SliderResolution
	default:
		return speed
	}
}
