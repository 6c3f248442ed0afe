// Package config loads the TOML configuration of the watch UI.
//
// Every setting has a default, so an absent file is valid. Durations are
// written as strings ("300ms", "5s"). Unknown keys are rejected to catch
// typos early.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/wristnav/wristnav/pkg/wristnav/constants"
)

var (
	// ErrUnknownKey is returned when the file contains keys no setting uses.
	ErrUnknownKey = errors.New("config: unknown key")

	// ErrInvalid is returned when a setting is out of range.
	ErrInvalid = errors.New("config: invalid value")
)

type Config struct {
	Locale  string  `toml:"locale"`
	Display Display `toml:"display"`
	Timing  Timing  `toml:"timing"`
	Input   Input   `toml:"input"`
	Log     Log     `toml:"log"`
}

type Display struct {
	Width         int           `toml:"width"`
	Height        int           `toml:"height"`
	Transition    time.Duration `toml:"transition"`
	FrameInterval time.Duration `toml:"frame_interval"`
	Scale         int           `toml:"scale"` // simulator window zoom
}

type Timing struct {
	WayBack   time.Duration `toml:"way_back"`
	Reset     time.Duration `toml:"reset"`
	Tolerance time.Duration `toml:"tolerance"`
	Capacity  int           `toml:"capacity"`
}

// Button names an evdev device and the key on it.
type Button struct {
	Device string `toml:"device"`
	Key    string `toml:"key"`
}

type Input struct {
	Forward Button `toml:"forward"`
	Back    Button `toml:"back"`
	Slider  string `toml:"slider"` // evdev device with an ABS_X axis
}

type Log struct {
	Level         string `toml:"level"`
	InternalLevel string `toml:"internal_level"`
	Path          string `toml:"path"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Display: Display{
			Width:         constants.ScreenWidth,
			Height:        constants.ScreenHeight,
			Transition:    constants.DefaultTransitionTime,
			FrameInterval: constants.DefaultFrameInterval,
			Scale:         4,
		},
		Timing: Timing{
			WayBack:   constants.DefaultWayBackDelay,
			Reset:     constants.DefaultResetDelay,
			Tolerance: constants.DefaultTolerance,
			Capacity:  constants.DefaultSchedulerCapacity,
		},
		Input: Input{
			Forward: Button{Key: "KEY_ENTER"},
			Back:    Button{Key: "KEY_BACKSPACE"},
		},
		Log: Log{
			Level:         "info",
			InternalLevel: "error",
		},
	}
}

// Load reads the file at path over the defaults and applies environment
// overrides. An empty path loads the defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
		if err := checkUndecoded(md); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes data over the defaults without consulting the environment.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	sort.Strings(keys)
	return fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
}

func (c *Config) applyEnv() {
	if v := os.Getenv(constants.LogLevelEnvVar); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(constants.LocaleEnvVar); v != "" {
		c.Locale = v
	}
	if constants.IsDevMode() {
		c.Log.InternalLevel = "debug"
	}
}

// Validate checks ranges.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, d time.Duration) {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, name, d))
		}
	}
	positive("timing.way_back", c.Timing.WayBack)
	positive("timing.reset", c.Timing.Reset)
	positive("display.frame_interval", c.Display.FrameInterval)

	if c.Timing.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("%w: timing.tolerance must not be negative", ErrInvalid))
	}
	if c.Display.Transition < 0 {
		errs = append(errs, fmt.Errorf("%w: display.transition must not be negative", ErrInvalid))
	}
	if c.Timing.Capacity < 4 {
		// two coalescers and two detectors each hold a slot
		errs = append(errs, fmt.Errorf("%w: timing.capacity must be at least 4, got %d", ErrInvalid, c.Timing.Capacity))
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.Width, c.Display.Height))
	}
	if c.Display.Scale < 1 {
		errs = append(errs, fmt.Errorf("%w: display.scale must be at least 1", ErrInvalid))
	}
	return errors.Join(errs...)
}
