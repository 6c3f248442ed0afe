package menu

import (
	"strings"
	"testing"

	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/scheduler"
	"github.com/wristnav/wristnav/pkg/wristnav/slider"
	"github.com/wristnav/wristnav/pkg/wristnav/surface"
	"github.com/wristnav/wristnav/pkg/wristnav/view"
)

func TestMessageView(t *testing.T) {
	m := NewMessageView("about", "a fairly long message that needs wrapping")
	if a := m.Action(); a.Kind != view.ActionBack {
		t.Errorf("Action = %v", a.Kind)
	}
	fb := surface.New(constants.ScreenWidth, constants.ScreenHeight)
	if d := m.RenderInto(fb, 0, 0); d != view.NoRedraw {
		t.Errorf("RenderInto = %v", d)
	}
	if fb.Lit() == 0 {
		t.Error("nothing drawn")
	}
}

func TestWrap(t *testing.T) {
	width := surface.TextWidth("hello world")
	lines := wrap("hello world again\nnext", width)
	want := []string{"hello world", "again", "next"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("wrap = %q, want %q", lines, want)
	}
	if got := wrap("", 10); len(got) != 1 || got[0] != "" {
		t.Errorf("wrap empty = %q", got)
	}
}

func TestTouchViewFollowsSlider(t *testing.T) {
	sched := scheduler.NewManual()
	s := slider.NewVirtual(sched)
	v := NewTouchView(s, func() string { return "touch" })
	woken := 0
	v.SetWakeup(func() { woken++ })

	v.Resume()
	s.Touch()
	s.Slide(-1200)
	sched.RunPending()
	if v.Speed() != -1200 {
		t.Errorf("Speed = %d", v.Speed())
	}
	if woken != 2 {
		t.Errorf("woken = %d, want 2", woken)
	}

	v.Suspend()
	s.Slide(500)
	sched.RunPending()
	if v.Speed() != -1200 {
		t.Errorf("suspended view updated to %d", v.Speed())
	}

	fb := surface.New(constants.ScreenWidth, constants.ScreenHeight)
	v.RenderInto(fb, 0, 0)
	if !fb.Pixel(constants.ScreenWidth/2-1, 85) {
		t.Error("negative bar not drawn left of centre")
	}
	if a := v.Action(); a.Kind != view.ActionBack {
		t.Errorf("Action = %v", a.Kind)
	}
}

func TestRasterizeIcon(t *testing.T) {
	for _, name := range []string{IconSettings, IconTouch, IconLanguage, IconAbout} {
		bits, err := RasterizeIcon(name, 16)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if bits.Width() != 16 || bits.Lit() == 0 {
			t.Errorf("%s: width=%d lit=%d", name, bits.Width(), bits.Lit())
		}
	}
	if _, err := RasterizeIcon("missing", 16); err == nil {
		t.Error("expected error for missing icon")
	}
}

func TestIconCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewIconCacheWithSize(2)
	a, err := c.Get(IconAbout, 16)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(IconTouch, 16); err != nil {
		t.Fatal(err)
	}
	again, _ := c.Get(IconAbout, 16)
	if again != a {
		t.Error("cache miss on a cached icon")
	}
	if _, err := c.Get(IconSettings, 16); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d", c.Len())
	}
	if again, _ := c.Get(IconAbout, 16); again != a {
		t.Error("most recently used icon was evicted")
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len after Purge = %d", c.Len())
	}
}
