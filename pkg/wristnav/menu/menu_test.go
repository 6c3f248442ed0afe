package menu

import (
	"testing"

	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/locale"
	"github.com/wristnav/wristnav/pkg/wristnav/scheduler"
	"github.com/wristnav/wristnav/pkg/wristnav/slider"
	"github.com/wristnav/wristnav/pkg/wristnav/surface"
	"github.com/wristnav/wristnav/pkg/wristnav/view"
)

// speedFor returns the raw slider speed that scrolls px pixels.
func speedFor(px int) int {
	return (px*constants.SliderResolution + constants.ScreenHeight - 1) / constants.ScreenHeight
}

func threeItems() *StaticTable {
	return NewStaticTable("test", []Item{
		{Label: "one", Action: GoBack},
		{Label: "two", Action: Open(func() view.View { return NewMessageView("t", "x") })},
		{Label: "three"},
	})
}

func newTestView(t *testing.T, table view.Table) (*TableView, *slider.Virtual, *scheduler.Manual) {
	t.Helper()
	sched := scheduler.NewManual()
	s := slider.NewVirtual(sched)
	tv := NewTableView(table, s)
	tv.Resume()
	return tv, s, sched
}

func TestStaticTableLayout(t *testing.T) {
	table := threeItems()
	if table.Size() != 5 {
		t.Fatalf("Size = %d", table.Size())
	}
	if table.FirstIndex() != 1 || table.LastIndex() != 3 || table.DefaultIndex() != 1 {
		t.Fatalf("first=%d last=%d default=%d", table.FirstIndex(), table.LastIndex(), table.DefaultIndex())
	}
	if table.HeightAt(0) != DefaultFillerHeight || table.HeightAt(4) != DefaultFillerHeight {
		t.Error("fillers have the wrong height")
	}
	if table.HeightAt(2) != DefaultCellHeight {
		t.Errorf("HeightAt(2) = %d", table.HeightAt(2))
	}
	if _, ok := table.CellAt(0).(*Filler); !ok {
		t.Errorf("CellAt(0) = %T", table.CellAt(0))
	}
	if table.CellAt(9) != nil {
		t.Error("CellAt out of range returned a cell")
	}

	for _, i := range []int{0, 3, 4, -1} {
		if a := table.ActionAt(i); a.Kind != view.ActionNone {
			t.Errorf("ActionAt(%d) = %v, want none", i, a.Kind)
		}
	}
	if a := table.ActionAt(1); a.Kind != view.ActionBack {
		t.Errorf("ActionAt(1) = %v", a.Kind)
	}
	if a := table.ActionAt(2); a.Kind != view.ActionView || a.View == nil {
		t.Errorf("ActionAt(2) = %+v", a)
	}
}

func TestStaticTablePanicsWithoutItems(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewStaticTable("empty", nil)
}

func TestTableViewStartsAtDefault(t *testing.T) {
	table := NewStaticTable("t", []Item{{Label: "a"}, {Label: "b"}, {Label: "c"}}, WithDefaultItem(2))
	tv, _, _ := newTestView(t, table)
	if tv.Selected() != 3 {
		t.Errorf("Selected = %d, want 3", tv.Selected())
	}
}

func TestTableViewScrollsOneCell(t *testing.T) {
	tv, s, sched := newTestView(t, threeItems())

	s.Touch()
	s.Slide(speedFor(DefaultCellHeight))
	sched.RunPending()
	if tv.Selected() != 2 {
		t.Fatalf("Selected = %d, want 2", tv.Selected())
	}
	if a := tv.Action(); a.Kind != view.ActionView {
		t.Errorf("Action = %v, want view", a.Kind)
	}

	s.Slide(-speedFor(DefaultCellHeight))
	sched.RunPending()
	if tv.Selected() != 1 {
		t.Fatalf("Selected = %d, want 1", tv.Selected())
	}
}

func TestTableViewClampsToSelectableRange(t *testing.T) {
	tv, s, sched := newTestView(t, threeItems())

	s.Touch()
	for i := 0; i < 5; i++ {
		s.Slide(constants.SliderResolution)
	}
	sched.RunPending()
	if tv.Selected() != 3 {
		t.Fatalf("Selected = %d, want last", tv.Selected())
	}

	for i := 0; i < 5; i++ {
		s.Slide(-constants.SliderResolution)
	}
	sched.RunPending()
	if tv.Selected() != 1 {
		t.Fatalf("Selected = %d, want first", tv.Selected())
	}
}

func TestTableViewSuspendedIgnoresSlider(t *testing.T) {
	tv, s, sched := newTestView(t, threeItems())
	tv.Suspend()

	s.Touch()
	s.Slide(speedFor(DefaultCellHeight))
	sched.RunPending()

	// direct callback invocation, as a stale posted callback would
	tv.onChange()
	if tv.Selected() != 1 {
		t.Errorf("suspended view moved to %d", tv.Selected())
	}
}

func TestTableViewFlingSettles(t *testing.T) {
	tv, s, sched := newTestView(t, threeItems())
	woken := 0
	tv.SetWakeup(func() { woken++ })

	s.Touch()
	s.Slide(speedFor(20))
	s.Lift()
	sched.RunPending()
	if woken == 0 {
		t.Fatal("no wakeup")
	}
	if !tv.Scrolling() {
		t.Fatal("release with speed did not start a fling")
	}

	fb := surface.New(constants.ScreenWidth, constants.ScreenHeight)
	frames := 0
	for tv.RenderInto(fb, 0, 0) != view.NoRedraw {
		frames++
		if frames > 100 {
			t.Fatal("fling never settled")
		}
	}
	if tv.Scrolling() {
		t.Error("still scrolling after NoRedraw")
	}
	if sel := tv.Selected(); sel != 2 && sel != 3 {
		t.Errorf("Selected = %d after fling", sel)
	}
	if tv.pos != tv.center(tv.Selected()) {
		t.Errorf("pos %d not snapped to centre %d", tv.pos, tv.center(tv.Selected()))
	}
}

func TestTableViewRender(t *testing.T) {
	tv, _, _ := newTestView(t, threeItems())
	fb := surface.New(constants.ScreenWidth, constants.ScreenHeight)

	if d := tv.RenderInto(fb, 0, 0); d != view.NoRedraw {
		t.Errorf("idle view asked for redraw in %v", d)
	}
	if !fb.Pixel(0, 0) {
		t.Error("title bar not drawn")
	}
	if fb.Pixel(constants.ScreenWidth-1, 0) {
		t.Error("right end of the title bar should be dark")
	}
	if !fb.Pixel(0, constants.ScreenHeight/2) {
		t.Error("selection band not inverted")
	}
	if fb.Pixel(0, constants.ScreenHeight-1) {
		t.Error("margin below the band should be dark")
	}

	// offscreen rendering only touches the visible part
	fb.Clear()
	tv.RenderInto(fb, constants.ScreenWidth, 0)
	if fb.Lit() != 0 {
		t.Error("offscreen render lit pixels")
	}
}

func TestLanguageTableSwitches(t *testing.T) {
	loc, err := locale.New("en")
	if err != nil {
		t.Fatal(err)
	}
	table := NewLanguageTable(loc)
	if a := table.ActionAt(2); a.Kind != view.ActionBack {
		t.Fatalf("ActionAt = %v", a.Kind)
	}
	if got := loc.T("settings"); got != "Optionen" {
		t.Errorf("settings = %q after switching", got)
	}
	if table.Title() != "Sprache" {
		t.Errorf("Title = %q", table.Title())
	}
}

func TestMainTable(t *testing.T) {
	loc, err := locale.New("en")
	if err != nil {
		t.Fatal(err)
	}
	s := slider.NewVirtual(scheduler.NewManual())
	main := NewMainTable(loc, NewIconCache(), s)

	if main.Title() != "menu" {
		t.Errorf("Title = %q", main.Title())
	}
	if a := main.ActionAt(main.DefaultIndex()); a.Kind != view.ActionSubmenu || a.Table == nil {
		t.Fatalf("default action = %+v", a)
	}
	a := main.ActionAt(2)
	if _, ok := a.View.(*TouchView); !ok {
		t.Fatalf("touch item opened %T", a.View)
	}

	fb := surface.New(constants.ScreenWidth, constants.ScreenHeight)
	NewTableView(main, s).RenderInto(fb, 0, 0)
	if fb.Lit() == 0 {
		t.Error("main menu rendered nothing")
	}
}
