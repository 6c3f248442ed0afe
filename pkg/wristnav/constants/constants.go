// Package constants defines shared constants, types, and configuration values
// used throughout wristnav.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read at startup.
const (
	LogLevelEnvVar = "WRISTNAV_LOG_LEVEL"
	LocaleEnvVar   = "WRISTNAV_LOCALE"
	ConfigEnvVar   = "WRISTNAV_CONFIG"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// Display geometry of the reference hardware.
const (
	ScreenWidth  = 128
	ScreenHeight = 128

	TitleBarHeight = 11
	LeftMargin     = 8

	// SliderResolution is the raw speed range reported by the slider.
	SliderResolution = 4000
)

// Default timing. All of them can be overridden through the config file.
const (
	DefaultTransitionTime = 200 * time.Millisecond  // Push/pop slide animation
	DefaultWayBackDelay   = 300 * time.Millisecond  // Back held this long returns to the root
	DefaultResetDelay     = 5000 * time.Millisecond // Forward held this long resets the device
	DefaultTolerance      = 1 * time.Millisecond    // Scheduling slack for deferred tasks
	DefaultFrameInterval  = 20 * time.Millisecond   // Redraw interval while a transition runs

	// DefaultSchedulerCapacity bounds the number of outstanding deferred tasks.
	DefaultSchedulerCapacity = 32
)
