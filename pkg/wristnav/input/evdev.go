package input

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	evdev "github.com/holoplot/go-evdev"
	"github.com/wristnav/wristnav/pkg/wristnav/internal"
)

// Key values reported by EV_KEY events.
const (
	keyReleased = 0
	keyPressed  = 1
	keyRepeat   = 2
)

// KeyCode resolves a key name such as "KEY_ENTER" or a numeric code.
func KeyCode(name string) (evdev.EvCode, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if code, ok := evdev.KEYFromString[name]; ok {
		return code, nil
	}
	if n, err := strconv.ParseUint(name, 0, 16); err == nil {
		return evdev.EvCode(n), nil
	}
	return 0, fmt.Errorf("input: unknown key %q", name)
}

// EvdevButton is a button backed by a Linux input device. Key down is
// reported as a falling edge and key up as a rising edge; autorepeat is
// ignored.
type EvdevButton struct {
	handlers
	dev    *evdev.InputDevice
	path   string
	code   evdev.EvCode
	logger *slog.Logger
}

// OpenEvdevButton opens the device at path and watches key code.
func OpenEvdevButton(path string, code evdev.EvCode) (*EvdevButton, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: open %s: %w", path, err)
	}
	b := &EvdevButton{
		dev:    dev,
		path:   path,
		code:   code,
		logger: internal.Component("input").With("device", path),
	}
	if name, err := dev.Name(); err == nil {
		b.logger.Debug("opened button device", "name", name, "code", code)
	}
	return b, nil
}

// Run reads events until ctx is cancelled or the device fails. It closes
// the device on return.
func (b *EvdevButton) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { b.dev.Close() })
	defer stop()
	defer b.dev.Close()

	for {
		ev, err := b.dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("input: read %s: %w", b.path, err)
		}
		if ev.Type != evdev.EV_KEY || ev.Code != b.code {
			continue
		}
		switch ev.Value {
		case keyPressed:
			b.edge(true, time.Now())
		case keyReleased:
			b.edge(false, time.Now())
		case keyRepeat:
		}
	}
}

// Close releases the device, unblocking Run.
func (b *EvdevButton) Close() error {
	if err := b.dev.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}
