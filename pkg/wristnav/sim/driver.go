package sim

import (
	"context"
	"log/slog"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/input"
	"github.com/wristnav/wristnav/pkg/wristnav/internal"
	"github.com/wristnav/wristnav/pkg/wristnav/slider"
	"github.com/wristnav/wristnav/pkg/wristnav/surface"
)

// Screen renders the UI on demand.
type Screen interface {
	Render(ctx context.Context, fb *surface.FrameBuffer) (time.Duration, error)
	Dirty() bool
}

// maxIdle bounds how long the driver sleeps between event polls.
const maxIdle = 10 * time.Millisecond

// Controls are the virtual devices the keyboard drives.
type Controls struct {
	Forward *input.Virtual
	Back    *input.Virtual
	Slider  *slider.Virtual

	// Step is the raw slider speed of one arrow key step.
	Step int

	repeat   *input.Repeater
	touching bool
}

// NewControls creates the virtual buttons around s. One arrow key step
// scrolls cellHeight pixels. A nil s leaves the arrow keys unbound.
func NewControls(s *slider.Virtual, cellHeight int) *Controls {
	return &Controls{
		Forward: input.NewVirtual(nil),
		Back:    input.NewVirtual(nil),
		Slider:  s,
		Step:    (cellHeight*constants.SliderResolution + constants.ScreenHeight - 1) / constants.ScreenHeight,
		repeat:  input.NewRepeaterWithTiming(250*time.Millisecond, 120*time.Millisecond),
	}
}

// Handle applies a key event at time now. It reports false on KeyQuit.
func (c *Controls) Handle(ev KeyEvent, now time.Time) bool {
	switch ev.Key {
	case KeyQuit:
		return false
	case KeyForward:
		if ev.Down {
			c.Forward.Press()
		} else {
			c.Forward.Release()
		}
	case KeyBack:
		if ev.Down {
			c.Back.Press()
		} else {
			c.Back.Release()
		}
	case KeySlideUp, KeySlideDown:
		if c.Slider == nil {
			return true
		}
		dir := input.DirectionUp
		if ev.Key == KeySlideDown {
			dir = input.DirectionDown
		}
		if ev.Down {
			if !c.touching {
				c.Slider.Touch()
				c.touching = true
			}
			c.repeat.SetHeld(dir, true, now)
			return true
		}
		c.Tick(now)
		c.repeat.SetHeld(dir, false, now)
		if !c.repeat.IsHeld() && c.touching {
			c.Slider.Slide(0)
			c.Slider.Lift()
			c.touching = false
		}
	}
	return true
}

// Tick emits due slider steps. Call it once per frame.
func (c *Controls) Tick(now time.Time) {
	if c.Slider == nil {
		return
	}
	if d := c.repeat.Update(now); d != input.DirectionNone {
		c.Slider.Slide(d.Sign() * c.Step)
	}
}

// Driver runs the simulator main loop.
type Driver struct {
	win      *Window
	screen   Screen
	controls *Controls
	fb       *surface.FrameBuffer
	logger   *slog.Logger
}

func NewDriver(win *Window, screen Screen, controls *Controls, width, height int) *Driver {
	return &Driver{
		win:      win,
		screen:   screen,
		controls: controls,
		fb:       surface.New(width, height),
		logger:   internal.Component("sim"),
	}
}

// Run polls the keyboard and redraws when the UI changed or asked for it,
// until the window is closed or ctx is done. It must run on the thread
// that opened the window.
func (d *Driver) Run(ctx context.Context) error {
	redrawAt := time.Now()
	for {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			if kev, ok := Translate(ev); ok {
				d.logger.Debug("key", "key", kev.Key.String(), "down", kev.Down)
				if !d.controls.Handle(kev, time.Now()) {
					return nil
				}
			}
		}
		if ctx.Err() != nil {
			return nil
		}

		now := time.Now()
		d.controls.Tick(now)

		if d.screen.Dirty() || !now.Before(redrawAt) {
			next, err := d.screen.Render(ctx, d.fb)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			d.win.Draw(d.fb)
			d.win.Present()
			if next > time.Hour {
				next = time.Hour
			}
			redrawAt = time.Now().Add(next)
			continue
		}

		idle := time.Until(redrawAt)
		if idle > maxIdle {
			idle = maxIdle
		}
		if idle > 0 {
			sdl.Delay(uint32(idle / time.Millisecond))
		}
	}
}
