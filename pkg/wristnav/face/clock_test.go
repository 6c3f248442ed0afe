package face

import (
	"testing"
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/surface"
	"github.com/wristnav/wristnav/pkg/wristnav/view"
)

func TestClockRedrawsAtNextMinute(t *testing.T) {
	now := time.Date(2016, 3, 14, 10, 41, 30, 0, time.UTC)
	c := NewClock(WithClock(func() time.Time { return now }), WithLocation(time.UTC))
	fb := surface.New(constants.ScreenWidth, constants.ScreenHeight)

	if d := c.RenderInto(fb, 0, 0); d != 30*time.Second {
		t.Errorf("RenderInto = %v, want 30s", d)
	}
	if fb.Lit() == 0 {
		t.Error("nothing drawn")
	}
	if a := c.Action(); a.Kind != view.ActionNone {
		t.Errorf("Action = %v", a.Kind)
	}
}

func TestClockChangesWithTime(t *testing.T) {
	now := time.Date(2016, 3, 14, 10, 41, 0, 0, time.UTC)
	c := NewClock(WithClock(func() time.Time { return now }), WithLocation(time.UTC))

	a := surface.New(constants.ScreenWidth, constants.ScreenHeight)
	c.RenderInto(a, 0, 0)
	now = now.Add(time.Minute)
	b := surface.New(constants.ScreenWidth, constants.ScreenHeight)
	if d := c.RenderInto(b, 0, 0); d != time.Minute {
		t.Errorf("on the minute RenderInto = %v, want 1m", d)
	}
	if a.String() == b.String() {
		t.Error("frame did not change across minutes")
	}
}

func TestClockSeconds(t *testing.T) {
	now := time.Date(2016, 3, 14, 10, 41, 7, 250*int(time.Millisecond), time.UTC)
	c := NewClock(WithClock(func() time.Time { return now }), WithLocation(time.UTC), WithSeconds())
	fb := surface.New(constants.ScreenWidth, constants.ScreenHeight)
	if d := c.RenderInto(fb, 0, 0); d != 750*time.Millisecond {
		t.Errorf("RenderInto = %v, want 750ms", d)
	}
}
