package slider

import (
	"context"
	"errors"
	"fmt"
	"os"

	evdev "github.com/holoplot/go-evdev"
	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/internal"
	"github.com/wristnav/wristnav/pkg/wristnav/scheduler"
)

// EvdevSlider reads an absolute touch axis from a Linux input device.
// BTN_TOUCH starts and ends a gesture; ABS_X movement while touched is
// converted to a speed relative to the axis range per event.
type EvdevSlider struct {
	core
	dev  *evdev.InputDevice
	path string
	axis evdev.EvCode

	min, max int32
	last     int32
	seen     bool
}

// OpenEvdevSlider opens the device at path and reads its ABS_X range.
func OpenEvdevSlider(path string, sched scheduler.Scheduler) (*EvdevSlider, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("slider: open %s: %w", path, err)
	}

	s := &EvdevSlider{dev: dev, path: path, axis: evdev.ABS_X}
	s.sched = sched
	s.logger = internal.Component("slider").With("device", path)

	infos, err := dev.AbsInfos()
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("slider: abs info %s: %w", path, err)
	}
	info, ok := infos[s.axis]
	if !ok || info.Maximum <= info.Minimum {
		dev.Close()
		return nil, fmt.Errorf("slider: %s has no usable ABS_X axis", path)
	}
	s.min, s.max = info.Minimum, info.Maximum
	s.logger.Debug("opened slider device", "min", s.min, "max", s.max)
	return s, nil
}

// Run reads events until ctx is cancelled or the device fails.
func (s *EvdevSlider) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { s.dev.Close() })
	defer stop()
	defer s.dev.Close()

	for {
		ev, err := s.dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("slider: read %s: %w", s.path, err)
		}
		s.handle(ev)
	}
}

func (s *EvdevSlider) handle(ev *evdev.InputEvent) {
	switch {
	case ev.Type == evdev.EV_KEY && ev.Code == evdev.BTN_TOUCH:
		if ev.Value == 1 {
			s.seen = false
			s.press()
		} else if ev.Value == 0 {
			s.release()
		}
	case ev.Type == evdev.EV_ABS && ev.Code == s.axis:
		if !s.seen {
			s.last, s.seen = ev.Value, true
			return
		}
		delta := ev.Value - s.last
		s.last = ev.Value
		s.change(s.speedFor(delta))
	}
}

// speedFor scales an axis delta to slider resolution.
func (s *EvdevSlider) speedFor(delta int32) int {
	span := int64(s.max - s.min)
	return int(int64(delta) * constants.SliderResolution / span)
}

// Close releases the device, unblocking Run.
func (s *EvdevSlider) Close() error {
	if err := s.dev.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}
