package menu

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/wristnav/wristnav/pkg/wristnav/surface"
)

//go:embed icons/*.svg
var iconFS embed.FS

// Icon names bundled with the package.
const (
	IconSettings = "settings"
	IconTouch    = "touch"
	IconLanguage = "language"
	IconAbout    = "about"
)

const defaultIconCacheSize = 8

// RasterizeIcon renders the bundled SVG icon name into a size x size
// monochrome bitmap. Pixels at least half opaque and light are lit.
func RasterizeIcon(name string, size int) (*surface.FrameBuffer, error) {
	data, err := iconFS.ReadFile("icons/" + name + ".svg")
	if err != nil {
		return nil, fmt.Errorf("menu: unknown icon %q: %w", name, err)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("menu: parse icon %q: %w", name, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)

	bits := surface.New(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := rgba.RGBAAt(x, y)
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
			bits.SetPixel(x, y, c.A >= 0x80 && lum >= 0x80)
		}
	}
	return bits, nil
}

// IconCache keeps recently used icon bitmaps, evicting the least recently
// used one when full.
type IconCache struct {
	mu      sync.Mutex
	bitmaps map[string]*surface.FrameBuffer
	order   []string // least recently used first
	maxSize int
}

func NewIconCache() *IconCache {
	return NewIconCacheWithSize(defaultIconCacheSize)
}

func NewIconCacheWithSize(maxSize int) *IconCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &IconCache{
		bitmaps: make(map[string]*surface.FrameBuffer),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// Get returns the bitmap of icon name at size, rasterizing it on a miss.
func (c *IconCache) Get(name string, size int) (*surface.FrameBuffer, error) {
	key := fmt.Sprintf("%s@%d", name, size)

	c.mu.Lock()
	if bits, ok := c.bitmaps[key]; ok {
		c.moveToEnd(key)
		c.mu.Unlock()
		return bits, nil
	}
	c.mu.Unlock()

	bits, err := RasterizeIcon(name, size)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.bitmaps[key]; ok {
		c.bitmaps[key] = bits
		c.moveToEnd(key)
		return bits, nil
	}
	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}
	c.bitmaps[key] = bits
	c.order = append(c.order, key)
	return bits, nil
}

// Len returns the number of cached bitmaps.
func (c *IconCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

func (c *IconCache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *IconCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.bitmaps, oldest)
}

// Purge drops every cached bitmap.
func (c *IconCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bitmaps = make(map[string]*surface.FrameBuffer)
	c.order = c.order[:0]
}
