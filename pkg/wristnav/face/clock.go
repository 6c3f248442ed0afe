// Package face implements the watch face shown at the bottom of the
// navigation stack.
package face

import (
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/surface"
	"github.com/wristnav/wristnav/pkg/wristnav/view"
)

const digitScale = 3

// Clock shows the time as HH:MM with the date underneath. It asks to be
// redrawn when the minute changes.
type Clock struct {
	view.Base
	now      func() time.Time
	location *time.Location
	seconds  bool
}

// Option configures a Clock.
type Option func(*Clock)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Clock) { c.now = now }
}

// WithLocation shows the time in loc instead of the local zone.
func WithLocation(loc *time.Location) Option {
	return func(c *Clock) { c.location = loc }
}

// WithSeconds adds a seconds line and redraws every second.
func WithSeconds() Option {
	return func(c *Clock) { c.seconds = true }
}

func NewClock(opts ...Option) *Clock {
	c := &Clock{now: time.Now, location: time.Local}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Clock) RenderInto(fb *surface.FrameBuffer, xOffset, yOffset int) time.Duration {
	t := c.now().In(c.location)

	screen := fb.Sub(xOffset, yOffset, constants.ScreenWidth, constants.ScreenHeight)
	screen.Clear()

	hhmm := t.Format("15:04")
	w := surface.TextWidth(hhmm) * digitScale
	h := surface.TextHeight() * digitScale
	y := (constants.ScreenHeight-h)/2 - 8
	screen.DrawTextScaled((constants.ScreenWidth-w)/2, y, hhmm, digitScale, true)

	date := t.Format("Mon 02 Jan")
	y += h + 4
	screen.DrawText((constants.ScreenWidth-surface.TextWidth(date))/2, y, date, true)

	if c.seconds {
		sec := t.Format(":05")
		y += surface.TextHeight()
		screen.DrawText((constants.ScreenWidth-surface.TextWidth(sec))/2, y, sec, true)
		return t.Truncate(time.Second).Add(time.Second).Sub(t)
	}
	return t.Truncate(time.Minute).Add(time.Minute).Sub(t)
}
