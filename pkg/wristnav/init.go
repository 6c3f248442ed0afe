// Package wristnav assembles the navigation core of a two button watch UI:
// button edges are coalesced into deferred tasks that drive a stack of
// views, from the watch face at the bottom through the menus above it.
//
// Init configures logging. NewApp wires configuration, the scheduler, the
// slider, the buttons and the controller together.
package wristnav

import (
	"log/slog"

	"github.com/wristnav/wristnav/pkg/wristnav/config"
	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/internal"
)

// Options configures logging before anything else runs.
type Options struct {
	LogPath       string // Full path for the log file; empty logs to stdout only
	LogLevel      string // Application log level ("debug", "info", ...)
	InternalLevel string // Level of the navigation core's own logger
}

// OptionsFromConfig takes the logging settings of cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		LogPath:       cfg.Log.Path,
		LogLevel:      cfg.Log.Level,
		InternalLevel: cfg.Log.InternalLevel,
	}
}

// Init sets up logging. Call it once before NewApp.
func Init(options Options) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	internal.SetRawLogLevel(options.LogLevel)

	if constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else if level, ok := internal.ParseLevel(options.InternalLevel); ok && options.InternalLevel != "" {
		internal.SetInternalLogLevel(level)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}
}

// Close flushes and closes the log file.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// SetInternalLogLevel sets the level of the navigation core's logger.
func SetInternalLogLevel(level slog.Level) {
	internal.SetInternalLogLevel(level)
}
