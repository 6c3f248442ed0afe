// Package sim shows the watch UI in an SDL window on a desktop.
//
// The panel is drawn scaled up, one filled rectangle per lit pixel. The
// keyboard stands in for the hardware: Enter is the forward button,
// Backspace the back button and the arrow keys drag the slider.
package sim

import (
	"github.com/veandco/go-sdl2/sdl"
	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/internal"
	"github.com/wristnav/wristnav/pkg/wristnav/surface"
)

const bezel = 8

// Window wraps the SDL window and renderer of the simulator.
type Window struct {
	Window   *sdl.Window
	Renderer *sdl.Renderer
	Title    string

	width, height int32
	scale         int32
	theme         Theme
	rects         []sdl.Rect

	hasVSync        bool
	lastPresentTime uint64
}

// Open initializes SDL video and creates a window showing a panel of the
// given size magnified by scale. SDL calls must stay on the thread that
// called Open.
func Open(title string, width, height, scale int, opts WindowOptions, theme Theme) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, err
	}

	x, y := int32(sdl.WINDOWPOS_CENTERED), int32(sdl.WINDOWPOS_CENTERED)
	if constants.IsDevMode() {
		opts.Borderless = false
		x, y = 50, 50
	}

	s := int32(scale)
	w := int32(width)*s + 2*bezel
	h := int32(height)*s + 2*bezel

	internal.Component("sim").Debug("Initializing SDL Window", "width", w, "height", h, "scale", scale)

	window, err := sdl.CreateWindow(title, x, y, w, h, opts.ToSDLFlags())
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
	}
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, err
	}

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	return &Window{
		Window:   window,
		Renderer: renderer,
		Title:    title,
		width:    int32(width),
		height:   int32(height),
		scale:    s,
		theme:    theme,
		hasVSync: vsync,
	}, nil
}

// Draw paints fb onto the back buffer. Call Present to show it.
func (w *Window) Draw(fb *surface.FrameBuffer) {
	r := w.Renderer
	setColor(r, w.theme.Bezel)
	r.Clear()

	setColor(r, w.theme.Unlit)
	r.FillRect(&sdl.Rect{X: bezel, Y: bezel, W: w.width * w.scale, H: w.height * w.scale})

	w.rects = w.rects[:0]
	for y := int32(0); y < w.height; y++ {
		for x := int32(0); x < w.width; x++ {
			if fb.Pixel(int(x), int(y)) {
				w.rects = append(w.rects, sdl.Rect{
					X: bezel + x*w.scale,
					Y: bezel + y*w.scale,
					W: w.scale,
					H: w.scale,
				})
			}
		}
	}
	if len(w.rects) > 0 {
		setColor(r, w.theme.Lit)
		r.FillRects(w.rects)
	}
}

// Present swaps the render buffer and enforces ~60fps frame timing
// when VSync is not available.
func (w *Window) Present() {
	w.Renderer.Present()
	if !w.hasVSync {
		now := sdl.GetTicks64()
		if elapsed := now - w.lastPresentTime; elapsed < 16 {
			sdl.Delay(uint32(16 - elapsed))
		}
		w.lastPresentTime = sdl.GetTicks64()
	}
}

// Close destroys the window and shuts SDL down.
func (w *Window) Close() {
	w.Renderer.Destroy()
	w.Window.Destroy()
	sdl.Quit()
}

func setColor(r *sdl.Renderer, c sdl.Color) {
	r.SetDrawColor(c.R, c.G, c.B, c.A)
}
