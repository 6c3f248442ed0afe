// Package router provides the navigation state machine of the watch UI.
//
// A Stack holds the views that have been navigated into, bottom first. The
// first view (usually the watch face) is permanent: Pop and Reset never
// remove it. The last view is the one rendered and asked for actions.
//
// A Router interprets the view.Action returned by the visible view when the
// forward button is pressed:
//
//	stack := router.NewStack(face,
//	    router.WithPowerHook(slider),
//	    router.WithTransitionTime(200*time.Millisecond))
//
//	r := router.New(stack).
//	    OnSubmenu(func(t view.Table) view.View { return menu.NewTableView(t, slider) }).
//	    OnBack(backCoalescer.Trigger)
//
//	// from the forward button task
//	err := r.Forward(mainMenu)
//
// # Power hook
//
// Whenever the stack shrinks to the root the PowerHook is paused, and when
// a view is pushed above the root it is resumed. Idle watch faces do not
// need the slider.
//
// # Transitions
//
// Push, Pop and Reset start a slide animation of the configured length.
// While it runs RenderInto draws both the outgoing and the incoming view
// and asks to be redrawn at the frame interval. Popped views are released
// (view.Releaser) once the animation no longer needs them.
package router
