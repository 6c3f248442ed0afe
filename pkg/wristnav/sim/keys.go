package sim

import "github.com/veandco/go-sdl2/sdl"

// Key is a simulator control.
type Key int

const (
	KeyNone Key = iota
	KeyForward
	KeyBack
	KeySlideUp
	KeySlideDown
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyForward:
		return "forward"
	case KeyBack:
		return "back"
	case KeySlideUp:
		return "slide_up"
	case KeySlideDown:
		return "slide_down"
	case KeyQuit:
		return "quit"
	default:
		return "none"
	}
}

// KeyFor maps a keyboard key to a control.
func KeyFor(sym sdl.Keycode) Key {
	switch sym {
	case sdl.K_RETURN, sdl.K_KP_ENTER, sdl.K_RIGHT:
		return KeyForward
	case sdl.K_BACKSPACE, sdl.K_LEFT:
		return KeyBack
	case sdl.K_UP:
		return KeySlideUp
	case sdl.K_DOWN:
		return KeySlideDown
	case sdl.K_ESCAPE, sdl.K_q:
		return KeyQuit
	default:
		return KeyNone
	}
}

// KeyEvent is a key going down or up. Autorepeat is not reported.
type KeyEvent struct {
	Key  Key
	Down bool
}

// Translate converts an SDL event. ok is false for events the simulator
// does not care about. Closing the window is reported as KeyQuit.
func Translate(ev sdl.Event) (KeyEvent, bool) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return KeyEvent{Key: KeyQuit, Down: true}, true
	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return KeyEvent{}, false
		}
		k := KeyFor(e.Keysym.Sym)
		if k == KeyNone {
			return KeyEvent{}, false
		}
		return KeyEvent{Key: k, Down: e.State == sdl.PRESSED}, true
	default:
		return KeyEvent{}, false
	}
}
