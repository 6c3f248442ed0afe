// Package view defines what a navigable screen is: the capability set the
// navigation stack drives, the Action a screen answers with when the
// forward button is pressed, and the Table protocol menus are built from.
package view

import (
	"math"
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/surface"
)

// NoRedraw is returned by RenderInto when the view does not need to be
// redrawn periodically.
const NoRedraw = time.Duration(math.MaxInt64)

// View is a screen that can live on the navigation stack.
//
// RenderInto draws the view into fb with the view's top-left corner at
// (xOffset, yOffset) and returns how soon it wants to be drawn again.
// Action reports what the forward button should do while the view is on
// top. Suspend and Resume bracket the time the view is visible and
// receiving slider input. SetWakeup hands the view the callback it invokes
// when its content changed and a redraw is warranted.
type View interface {
	RenderInto(fb *surface.FrameBuffer, xOffset, yOffset int) time.Duration
	Action() Action
	Suspend()
	Resume()
	SetWakeup(wakeup func())
}

// Releaser is implemented by views holding resources that must be freed
// once they are popped off the stack for good.
type Releaser interface {
	Release()
}

// Base gives embedding views no-op defaults so a screen implements only
// the capabilities it needs.
type Base struct {
	wakeup func()
}

func (b *Base) RenderInto(*surface.FrameBuffer, int, int) time.Duration { return NoRedraw }
func (b *Base) Action() Action                                          { return None() }
func (b *Base) Suspend()                                                {}
func (b *Base) Resume()                                                 {}

func (b *Base) SetWakeup(wakeup func()) {
	b.wakeup = wakeup
}

// Wakeup signals that the view wants to be redrawn. Safe to call before a
// callback has been set.
func (b *Base) Wakeup() {
	if b.wakeup != nil {
		b.wakeup()
	}
}
