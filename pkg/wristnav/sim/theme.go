package sim

import (
	"fmt"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
)

// Theme colors the simulated monochrome panel.
type Theme struct {
	Lit   sdl.Color // Pixel on
	Unlit sdl.Color // Pixel off
	Bezel sdl.Color // Area around the panel
}

// OLEDTheme looks like the reference hardware: white on black.
func OLEDTheme() Theme {
	return Theme{
		Lit:   HexToColor(0xFFFFFF),
		Unlit: HexToColor(0x000000),
		Bezel: HexToColor(0x202020),
	}
}

// PaperTheme mimics a reflective memory LCD.
func PaperTheme() Theme {
	return Theme{
		Lit:   HexToColor(0x1A1A1A),
		Unlit: HexToColor(0xC8C8B4),
		Bezel: HexToColor(0x404040),
	}
}

// ThemeByName returns a built-in theme.
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(name) {
	case "", "oled":
		return OLEDTheme(), nil
	case "paper":
		return PaperTheme(), nil
	default:
		return Theme{}, fmt.Errorf("sim: unknown theme %q", name)
	}
}

// HexToColor converts 0xRRGGBB to an opaque sdl.Color.
func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 0xFF,
	}
}
