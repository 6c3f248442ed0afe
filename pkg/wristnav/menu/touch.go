package menu

import (
	"strconv"
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/slider"
	"github.com/wristnav/wristnav/pkg/wristnav/surface"
	"github.com/wristnav/wristnav/pkg/wristnav/view"
	"go.uber.org/atomic"
)

// TouchView shows the live slider speed as a number and a bar. It is the
// diagnostic screen of the main menu; forward goes back.
type TouchView struct {
	view.Base
	Title  func() string
	slider slider.Slider

	notSuspended atomic.Bool
	speed        atomic.Int32
	touching     atomic.Bool
}

func NewTouchView(s slider.Slider, title func() string) *TouchView {
	return &TouchView{slider: s, Title: title}
}

func (v *TouchView) Action() view.Action { return view.Back() }

func (v *TouchView) Resume() {
	v.slider.SetOnPress(func() {
		if v.notSuspended.Load() {
			v.touching.Store(true)
			v.Wakeup()
		}
	})
	v.slider.SetOnChange(func() {
		if v.notSuspended.Load() {
			v.speed.Store(int32(v.slider.Speed()))
			v.Wakeup()
		}
	})
	v.slider.SetOnRelease(func() {
		if v.notSuspended.Load() {
			v.touching.Store(false)
			v.Wakeup()
		}
	})
	v.notSuspended.Store(true)
}

func (v *TouchView) Suspend() {
	v.slider.SetOnPress(nil)
	v.slider.SetOnChange(nil)
	v.slider.SetOnRelease(nil)
	v.notSuspended.Store(false)
}

// Speed returns the last speed seen.
func (v *TouchView) Speed() int { return int(v.speed.Load()) }

func (v *TouchView) RenderInto(fb *surface.FrameBuffer, xOffset, yOffset int) time.Duration {
	screen := fb.Sub(xOffset, yOffset, constants.ScreenWidth, constants.ScreenHeight)
	screen.Clear()

	tb := constants.TitleBarHeight
	screen.FillRect(0, constants.ScreenWidth, 0, tb, true)
	if v.Title != nil {
		screen.Sub(constants.LeftMargin, 0, constants.ScreenWidth-constants.LeftMargin, tb).
			DrawText(0, -1, v.Title(), false)
	}

	speed := v.Speed()
	label := strconv.Itoa(speed)
	screen.DrawText((constants.ScreenWidth-surface.TextWidth(label))/2, 40, label, true)

	// bar grows from the centre towards the sign of the speed
	mid := constants.ScreenWidth / 2
	w := speed * mid / constants.SliderResolution
	y := 80
	if w >= 0 {
		screen.FillRect(mid, mid+w, y, y+12, true)
	} else {
		screen.FillRect(mid+w, mid, y, y+12, true)
	}
	screen.FillRect(mid, mid+1, y-3, y+15, true)

	if v.touching.Load() {
		screen.InvertRect(0, constants.ScreenWidth, tb, tb+2)
	}
	return view.NoRedraw
}
