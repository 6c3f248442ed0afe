package menu

import (
	"log/slog"
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/internal"
	"github.com/wristnav/wristnav/pkg/wristnav/slider"
	"github.com/wristnav/wristnav/pkg/wristnav/surface"
	"github.com/wristnav/wristnav/pkg/wristnav/view"
	"go.uber.org/atomic"
)

// TableView is a scrolling menu over a view.Table with a title bar and a
// selection band across the middle of the screen. The slider scrolls it
// while it is resumed; a fling started on release decays over a few
// frames and then snaps to the selected cell.
//
// Slider callbacks and RenderInto must run on the executor goroutine.
// Selected may be read from anywhere.
type TableView struct {
	view.Base

	table  view.Table
	slider slider.Slider
	logger *slog.Logger

	frameInterval time.Duration

	middle       atomic.Int32
	notSuspended atomic.Bool

	tops     []int // top of each cell in table coordinates
	pos      int   // table coordinate shown on the band centre line
	velocity int
	touching bool
}

// TableViewOption configures a TableView.
type TableViewOption func(*TableView)

// WithFrameInterval sets how often a fling is animated.
func WithFrameInterval(d time.Duration) TableViewOption {
	return func(t *TableView) { t.frameInterval = d }
}

// NewTableView creates a suspended view over table driven by s.
func NewTableView(table view.Table, s slider.Slider, opts ...TableViewOption) *TableView {
	t := &TableView{
		table:         table,
		slider:        s,
		frameInterval: constants.DefaultFrameInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = internal.Component("menu").With("table", table.Title())

	t.tops = make([]int, table.Size()+1)
	for i := 0; i < table.Size(); i++ {
		t.tops[i+1] = t.tops[i] + table.HeightAt(i)
	}
	t.selectIndex(table.DefaultIndex())
	return t
}

// Table returns the table the view shows.
func (t *TableView) Table() view.Table { return t.table }

// Selected returns the index in the selection band.
func (t *TableView) Selected() int { return int(t.middle.Load()) }

// Scrolling reports whether a fling is in progress.
func (t *TableView) Scrolling() bool { return t.velocity != 0 }

func (t *TableView) Resume() {
	t.logger.Debug("resume")
	t.slider.SetOnPress(t.onPress)
	t.slider.SetOnChange(t.onChange)
	t.slider.SetOnRelease(t.onRelease)
	t.notSuspended.Store(true)
}

func (t *TableView) Suspend() {
	t.logger.Debug("suspend")
	t.slider.SetOnPress(nil)
	t.slider.SetOnChange(nil)
	t.slider.SetOnRelease(nil)
	t.notSuspended.Store(false)

	t.touching = false
	t.velocity = 0
	t.snap()
}

// Action returns what the selected cell does.
func (t *TableView) Action() view.Action {
	i := t.Selected()
	if i < t.table.FirstIndex() || i > t.table.LastIndex() {
		return view.None()
	}
	return t.table.ActionAt(i)
}

func (t *TableView) onPress() {
	if !t.notSuspended.Load() {
		return
	}
	t.touching = true
	t.velocity = 0
}

func (t *TableView) onChange() {
	if !t.notSuspended.Load() {
		return
	}
	t.scrollBy(scaleSpeed(t.slider.Speed()))
	t.Wakeup()
}

func (t *TableView) onRelease() {
	if !t.notSuspended.Load() {
		return
	}
	t.touching = false
	t.velocity = scaleSpeed(t.slider.Speed())
	if t.velocity == 0 {
		t.snap()
	}
	t.Wakeup()
}

// scaleSpeed converts raw slider speed to pixels.
func scaleSpeed(speed int) int {
	return speed * constants.ScreenHeight / constants.SliderResolution
}

func (t *TableView) center(i int) int {
	return t.tops[i] + t.table.HeightAt(i)/2
}

// scrollBy moves the centre line by d pixels, clamped to the centres of
// the first and last selectable cells. Hitting a bound stops a fling.
func (t *TableView) scrollBy(d int) {
	first, last := t.table.FirstIndex(), t.table.LastIndex()
	if last < first {
		return
	}
	lo, hi := t.center(first), t.center(last)

	t.pos += d
	if t.pos <= lo {
		t.pos = lo
		t.velocity = 0
	} else if t.pos >= hi {
		t.pos = hi
		t.velocity = 0
	}

	i := first
	for i < last && t.tops[i+1] <= t.pos {
		i++
	}
	if int(t.middle.Load()) != i {
		t.middle.Store(int32(i))
		t.logger.Debug("selection moved", "index", i)
	}
}

func (t *TableView) selectIndex(i int) {
	first, last := t.table.FirstIndex(), t.table.LastIndex()
	if i > last {
		i = last
	}
	if i < first {
		i = first
	}
	t.middle.Store(int32(i))
	if i >= 0 && i < t.table.Size() {
		t.pos = t.center(i)
	}
}

func (t *TableView) snap() {
	t.selectIndex(t.Selected())
}

// step advances a fling by one frame.
func (t *TableView) step() {
	if t.velocity == 0 {
		return
	}
	t.scrollBy(t.velocity)
	t.velocity = t.velocity * 3 / 4
	if t.velocity == 0 && !t.touching {
		t.snap()
	}
}

func (t *TableView) RenderInto(fb *surface.FrameBuffer, xOffset, yOffset int) time.Duration {
	t.step()

	screen := fb.Sub(xOffset, yOffset, constants.ScreenWidth, constants.ScreenHeight)
	screen.Clear()

	content := screen.Sub(constants.LeftMargin, constants.TitleBarHeight,
		constants.ScreenWidth-constants.LeftMargin, constants.ScreenHeight-constants.TitleBarHeight)
	centerLine := constants.ScreenHeight/2 - constants.TitleBarHeight

	next := view.NoRedraw
	for i := 0; i < t.table.Size(); i++ {
		top := centerLine + t.tops[i] - t.pos
		h := t.table.HeightAt(i)
		if top+h <= 0 || top >= content.Height() {
			continue
		}
		cell := t.table.CellAt(i)
		if cell == nil {
			continue
		}
		if d := cell.RenderInto(content.Sub(0, top, content.Width(), h), 0, 0); d < next {
			next = d
		}
	}

	// selection band
	hm := t.table.HeightAt(t.Selected())
	bandTop := constants.ScreenHeight/2 - (hm+1)/2
	screen.InvertRect(0, constants.ScreenWidth, bandTop, bandTop+hm)

	t.renderTitle(screen)

	if t.velocity != 0 && t.frameInterval < next {
		next = t.frameInterval
	}
	return next
}

func (t *TableView) renderTitle(screen *surface.FrameBuffer) {
	tb := constants.TitleBarHeight
	triX := constants.ScreenWidth - 32 - tb
	screen.FillRect(0, constants.ScreenWidth, 0, tb, false)
	screen.FillRect(0, triX, 0, tb, true)

	// slanted edge between the white and the black part
	for y := 0; y < tb; y++ {
		for x := 0; x < tb; x++ {
			if tb-x > y {
				screen.SetPixel(triX+x, y, true)
			}
		}
	}

	title := screen.Sub(constants.LeftMargin, 0, triX-constants.LeftMargin, tb)
	title.DrawText(0, -1, t.table.Title(), false)
}
