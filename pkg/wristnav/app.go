package wristnav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/config"
	"github.com/wristnav/wristnav/pkg/wristnav/controller"
	"github.com/wristnav/wristnav/pkg/wristnav/face"
	"github.com/wristnav/wristnav/pkg/wristnav/input"
	"github.com/wristnav/wristnav/pkg/wristnav/internal"
	"github.com/wristnav/wristnav/pkg/wristnav/locale"
	"github.com/wristnav/wristnav/pkg/wristnav/menu"
	"github.com/wristnav/wristnav/pkg/wristnav/router"
	"github.com/wristnav/wristnav/pkg/wristnav/scheduler"
	"github.com/wristnav/wristnav/pkg/wristnav/slider"
	"github.com/wristnav/wristnav/pkg/wristnav/surface"
	"github.com/wristnav/wristnav/pkg/wristnav/view"
	"go.uber.org/atomic"
)

// device is an input device read by its own goroutine.
type device interface {
	Run(ctx context.Context) error
	Close() error
}

type appOptions struct {
	slider   slider.Slider
	forward  input.EdgeSource
	back     input.EdgeSource
	resetter controller.Resetter
	root     view.View
	onWake   func()
}

// AppOption customizes NewApp.
type AppOption func(*appOptions)

// WithSlider uses s instead of the configured slider device.
func WithSlider(s slider.Slider) AppOption {
	return func(o *appOptions) { o.slider = s }
}

// WithButtons uses the given edge sources instead of evdev devices.
func WithButtons(forward, back input.EdgeSource) AppOption {
	return func(o *appOptions) {
		o.forward = forward
		o.back = back
	}
}

// WithResetter handles long forward presses.
func WithResetter(r controller.Resetter) AppOption {
	return func(o *appOptions) { o.resetter = r }
}

// WithRoot replaces the clock face at the bottom of the stack.
func WithRoot(v view.View) AppOption {
	return func(o *appOptions) { o.root = v }
}

// WithWakeup is called, on the scheduler goroutine, whenever the screen
// content changed.
func WithWakeup(fn func()) AppOption {
	return func(o *appOptions) { o.onWake = fn }
}

// App is an assembled watch UI.
type App struct {
	cfg    config.Config
	loop   *scheduler.Loop
	slider slider.Slider
	loc    *locale.Localizer
	icons  *menu.IconCache
	home   *menu.TableView
	ctrl   *controller.Controller
	logger *slog.Logger

	devices []device
	onWake  func()

	running atomic.Bool
	dirty   atomic.Bool
}

// NewApp builds the app described by cfg. Devices named in cfg are opened
// unless replaced through options.
func NewApp(cfg config.Config, opts ...AppOption) (*App, error) {
	o := appOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		cfg:    cfg,
		loop:   scheduler.NewLoop(scheduler.WithCapacity(cfg.Timing.Capacity)),
		icons:  menu.NewIconCache(),
		logger: internal.Component("app"),
		onWake: o.onWake,
	}
	a.dirty.Store(true)

	loc, err := locale.New(cfg.Locale)
	if err != nil {
		return nil, NewInfrastructureError("load_messages", err)
	}
	a.loc = loc

	if err := a.openSlider(o.slider); err != nil {
		a.closeDevices()
		return nil, err
	}
	forward, back, err := a.openButtons(o.forward, o.back)
	if err != nil {
		a.closeDevices()
		return nil, err
	}

	root := o.root
	if root == nil {
		root = face.NewClock()
	}
	resetter := o.resetter
	if resetter == nil {
		resetter = controller.ResetFunc(func() error {
			a.logger.Warn("reset requested, nothing to reset")
			return nil
		})
	}

	tableOpts := []menu.TableViewOption{menu.WithFrameInterval(cfg.Display.FrameInterval)}
	a.home = menu.NewTableView(menu.NewMainTable(a.loc, a.icons, a.slider), a.slider, tableOpts...)

	a.ctrl = controller.New(a.loop, controller.Config{
		Root:     root,
		Home:     a.home,
		Power:    a.slider,
		Resetter: resetter,
		Submenu: func(t view.Table) view.View {
			return menu.NewTableView(t, a.slider, tableOpts...)
		},
		WayBackDelay: cfg.Timing.WayBack,
		ResetDelay:   cfg.Timing.Reset,
		Tolerance:    cfg.Timing.Tolerance,
		StackOptions: []router.StackOption{
			router.WithTransitionTime(cfg.Display.Transition),
			router.WithFrameInterval(cfg.Display.FrameInterval),
			router.WithWidth(cfg.Display.Width),
		},
	})
	a.ctrl.SetWakeup(a.wake)
	a.ctrl.Attach(forward, back)

	a.logger.Info("app ready", "language", a.loc.Language().String(), "devices", len(a.devices))
	return a, nil
}

func (a *App) openSlider(s slider.Slider) error {
	switch {
	case s != nil:
		a.slider = s
	case a.cfg.Input.Slider != "":
		dev, err := slider.OpenEvdevSlider(a.cfg.Input.Slider, a.loop)
		if err != nil {
			return NewInfrastructureError("open_slider", err)
		}
		a.slider = dev
		a.devices = append(a.devices, dev)
	default:
		a.slider = slider.NewVirtual(a.loop)
	}
	return nil
}

func (a *App) openButtons(forward, back input.EdgeSource) (input.EdgeSource, input.EdgeSource, error) {
	if forward != nil && back != nil {
		return forward, back, nil
	}

	open := func(name string, b config.Button) (input.EdgeSource, error) {
		if b.Device == "" {
			return nil, NewInfrastructureError("open_"+name, ErrNoInput)
		}
		code, err := input.KeyCode(b.Key)
		if err != nil {
			return nil, NewInfrastructureError("open_"+name, err)
		}
		dev, err := input.OpenEvdevButton(b.Device, code)
		if err != nil {
			return nil, NewInfrastructureError("open_"+name, err)
		}
		a.devices = append(a.devices, dev)
		return dev, nil
	}

	var err error
	if forward == nil {
		if forward, err = open("forward", a.cfg.Input.Forward); err != nil {
			return nil, nil, err
		}
	}
	if back == nil {
		if back, err = open("back", a.cfg.Input.Back); err != nil {
			return nil, nil, err
		}
	}
	return forward, back, nil
}

func (a *App) wake() {
	a.dirty.Store(true)
	if a.onWake != nil {
		a.onWake()
	}
}

// Run executes the scheduler and reads the input devices until ctx is
// cancelled or a device fails. Everything is closed when it returns.
func (a *App) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return scheduler.ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, len(a.devices)+1)
	go func() { errc <- a.loop.Run(ctx) }()
	for _, d := range a.devices {
		d := d
		go func() { errc <- d.Run(ctx) }()
	}

	first := <-errc
	cancel()
	for i := 0; i < len(a.devices); i++ {
		if err := <-errc; err != nil && !errors.Is(err, context.Canceled) && first == nil {
			first = err
		}
	}
	a.ctrl.Close()

	if first == nil || errors.Is(first, context.Canceled) {
		return nil
	}
	a.logger.Error("stopped", "error", first)
	return NewInfrastructureError("run", first)
}

// Do runs fn on the scheduler goroutine and waits for it. Use it to touch
// the stack from outside a task.
func (a *App) Do(ctx context.Context, fn func()) error {
	if err := a.loop.Do(ctx, fn); err != nil {
		return fmt.Errorf("wristnav: %w", err)
	}
	return nil
}

// Render draws the current screen into fb and returns how soon it should
// be drawn again.
func (a *App) Render(ctx context.Context, fb *surface.FrameBuffer) (time.Duration, error) {
	next := view.NoRedraw
	a.dirty.Store(false)
	err := a.Do(ctx, func() { next = a.ctrl.RenderInto(fb) })
	return next, err
}

// Dirty reports whether the screen changed since the last Render.
func (a *App) Dirty() bool { return a.dirty.Load() }

// Controller returns the input controller.
func (a *App) Controller() *controller.Controller { return a.ctrl }

// Localizer returns the localizer used by the menus.
func (a *App) Localizer() *locale.Localizer { return a.loc }

// Slider returns the slider shared by the menus.
func (a *App) Slider() slider.Slider { return a.slider }

// Config returns the configuration the app was built with.
func (a *App) Config() config.Config { return a.cfg }

// Close stops the scheduler and releases the devices. It is only needed
// when Run was never called.
func (a *App) Close() {
	a.ctrl.Close()
	a.loop.Close()
	a.closeDevices()
}

func (a *App) closeDevices() {
	for _, d := range a.devices {
		if err := d.Close(); err != nil {
			a.logger.Warn("closing device", "error", err)
		}
	}
}
