package router

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/wristnav/wristnav/pkg/wristnav/internal"
	"github.com/wristnav/wristnav/pkg/wristnav/view"
)

// ErrNoSubmenuFactory is returned when a view asks for a submenu but the
// router has no way to build one.
var ErrNoSubmenuFactory = errors.New("router: no submenu factory configured")

// SubmenuFunc wraps a table into a navigable view.
type SubmenuFunc func(table view.Table) view.View

// BackFunc requests one step of back navigation. It usually feeds the same
// coalescer as the physical back button.
type BackFunc func() error

// Router consumes view actions and turns them into stack mutations.
// Submenu construction and back navigation are delegated to the functions
// registered with OnSubmenu and OnBack so the router stays free of menu
// and input details.
type Router struct {
	stack   *Stack
	submenu SubmenuFunc
	back    BackFunc
	logger  *slog.Logger
}

// New creates a Router driving stack.
func New(stack *Stack) *Router {
	return &Router{
		stack:  stack,
		logger: internal.Component("router"),
	}
}

// OnSubmenu sets the function that turns submenu tables into views.
func (r *Router) OnSubmenu(fn SubmenuFunc) *Router {
	r.submenu = fn
	return r
}

// OnBack sets how Back actions are carried out. Without one, Back pops the
// stack directly.
func (r *Router) OnBack(fn BackFunc) *Router {
	r.back = fn
	return r
}

// Stack returns the stack the router drives.
func (r *Router) Stack() *Stack {
	return r.stack
}

// Dispatch carries out a single action.
func (r *Router) Dispatch(action view.Action) error {
	r.logger.Debug("dispatch", "action", action.Kind.String(), "size", r.stack.Len())

	switch action.Kind {
	case view.ActionNone:
		return nil
	case view.ActionView:
		r.stack.Push(action.View)
		return nil
	case view.ActionSubmenu:
		if r.submenu == nil {
			return ErrNoSubmenuFactory
		}
		r.stack.Push(r.submenu(action.Table))
		return nil
	case view.ActionBack:
		if r.back == nil {
			r.stack.Pop()
			return nil
		}
		if err := r.back(); err != nil {
			return fmt.Errorf("router: back: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("router: unknown action kind %d", action.Kind)
	}
}

// Forward handles one forward-button press. On the root, home is pushed;
// anywhere else the visible view decides.
func (r *Router) Forward(home view.View) error {
	if r.stack.Len() == 1 && home != nil {
		r.stack.Push(home)
		return nil
	}
	return r.Dispatch(r.stack.Action())
}
