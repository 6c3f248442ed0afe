// Command wristsim runs the watch UI in a desktop window.
//
// Enter (or Right) is the forward button, Backspace (or Left) the back
// button, and the Up and Down arrows drag the slider. Holding a button
// behaves as on the watch: a long back returns to the watch face and a
// long forward requests a reset.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wristnav/wristnav/pkg/wristnav"
	"github.com/wristnav/wristnav/pkg/wristnav/config"
	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/controller"
	"github.com/wristnav/wristnav/pkg/wristnav/menu"
	"github.com/wristnav/wristnav/pkg/wristnav/sim"
	"github.com/wristnav/wristnav/pkg/wristnav/slider"
)

type options struct {
	configPath  string
	theme       string
	scale       int
	borderless  bool
	alwaysOnTop bool
}

func init() {
	// SDL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:          "wristsim",
		Short:        "Run the watch UI in a window",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o)
		},
	}
	cmd.Flags().StringVarP(&o.configPath, "config", "c", os.Getenv(constants.ConfigEnvVar), "TOML configuration file")
	cmd.Flags().StringVar(&o.theme, "theme", "oled", "panel colors: oled or paper")
	cmd.Flags().IntVar(&o.scale, "scale", 0, "window zoom, overrides display.scale")
	cmd.Flags().BoolVar(&o.borderless, "borderless", false, "open a window without decorations")
	cmd.Flags().BoolVar(&o.alwaysOnTop, "on-top", false, "keep the window above others")
	return cmd
}

func run(ctx context.Context, o *options) error {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}
	if o.scale > 0 {
		cfg.Display.Scale = o.scale
	}
	theme, err := sim.ThemeByName(o.theme)
	if err != nil {
		return err
	}

	wristnav.Init(wristnav.OptionsFromConfig(cfg))
	defer wristnav.Close()
	logger := wristnav.GetLogger()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	controls := sim.NewControls(nil, menu.DefaultCellHeight)
	app, err := wristnav.NewApp(cfg,
		wristnav.WithButtons(controls.Forward, controls.Back),
		wristnav.WithResetter(controller.ResetFunc(func() error {
			logger.Info("reset requested")
			return nil
		})),
	)
	if err != nil {
		return err
	}
	if v, ok := app.Slider().(*slider.Virtual); ok {
		controls.Slider = v
	} else {
		logger.Info("slider device configured, arrow keys disabled")
	}

	win, err := sim.Open("wristnav", cfg.Display.Width, cfg.Display.Height, cfg.Display.Scale,
		sim.WindowOptions{Borderless: o.borderless, AlwaysOnTop: o.alwaysOnTop}, theme)
	if err != nil {
		app.Close()
		return err
	}
	defer win.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	driver := sim.NewDriver(win, app, controls, cfg.Display.Width, cfg.Display.Height)
	derr := driver.Run(ctx)
	cancel()
	rerr := <-done

	if err := errors.Join(derr, rerr); err != nil {
		logger.Error("simulator stopped", "error", err)
		return fmt.Errorf("wristsim: %w", err)
	}
	return nil
}
