package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/constants"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timing.WayBack != 300*time.Millisecond || cfg.Timing.Reset != 5*time.Second {
		t.Errorf("timing = %+v", cfg.Timing)
	}
	if cfg.Display.Transition != constants.DefaultTransitionTime {
		t.Errorf("transition = %v", cfg.Display.Transition)
	}
	if cfg.Input.Forward.Key != "KEY_ENTER" {
		t.Errorf("forward key = %q", cfg.Input.Forward.Key)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse(`
locale = "de"

[timing]
way_back = "450ms"
capacity = 16

[input.back]
device = "/dev/input/event1"
key = "KEY_ESC"

[log]
level = "debug"
`)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Locale != "de" {
		t.Errorf("locale = %q", cfg.Locale)
	}
	if cfg.Timing.WayBack != 450*time.Millisecond {
		t.Errorf("way_back = %v", cfg.Timing.WayBack)
	}
	if cfg.Timing.Reset != constants.DefaultResetDelay {
		t.Errorf("reset lost its default: %v", cfg.Timing.Reset)
	}
	if cfg.Timing.Capacity != 16 {
		t.Errorf("capacity = %d", cfg.Timing.Capacity)
	}
	if cfg.Input.Back != (Button{Device: "/dev/input/event1", Key: "KEY_ESC"}) {
		t.Errorf("back = %+v", cfg.Input.Back)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(`
[timing]
wayback = "450ms"
`)
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("err = %v, want ErrUnknownKey", err)
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero way back", "[timing]\nway_back = \"0s\"\n"},
		{"negative tolerance", "[timing]\ntolerance = \"-1ms\"\n"},
		{"tiny capacity", "[timing]\ncapacity = 2\n"},
		{"zero width", "[display]\nwidth = 0\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.data); !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestParseRejectsBadDuration(t *testing.T) {
	if _, err := Parse("[timing]\nreset = \"soon\"\n"); err == nil {
		t.Error("expected error")
	}
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wristnav.toml")
	if err := os.WriteFile(path, []byte("locale = \"en\"\n[display]\nscale = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(constants.LocaleEnvVar, "de")
	t.Setenv(constants.LogLevelEnvVar, "warn")
	t.Setenv("ENVIRONMENT", constants.Development)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Locale != "de" || cfg.Log.Level != "warn" || cfg.Log.InternalLevel != "debug" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Display.Scale != 2 {
		t.Errorf("scale = %d", cfg.Display.Scale)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error")
	}
}
