package router

import (
	"errors"
	"testing"

	"github.com/wristnav/wristnav/pkg/wristnav/view"
)

type table struct{ title string }

func (t table) Size() int                { return 1 }
func (t table) Title() string            { return t.title }
func (t table) CellAt(int) view.View     { return nil }
func (t table) HeightAt(int) int         { return 1 }
func (t table) FirstIndex() int          { return 0 }
func (t table) LastIndex() int           { return 0 }
func (t table) DefaultIndex() int        { return 0 }
func (t table) ActionAt(int) view.Action { return view.None() }

func TestRouterForwardFromRootPushesHome(t *testing.T) {
	root, home := newTestView("R"), newTestView("menu")
	r := New(NewStack(root, WithTransitionTime(0)))

	if err := r.Forward(home); err != nil {
		t.Fatal(err)
	}
	if r.Stack().Top() != home {
		t.Fatalf("top = %v, want home", r.Stack().Top())
	}
}

func TestRouterDispatch(t *testing.T) {
	root, home, child := newTestView("R"), newTestView("menu"), newTestView("child")
	stack := NewStack(root, WithTransitionTime(0))
	backs := 0
	var built view.Table

	r := New(stack).
		OnSubmenu(func(tbl view.Table) view.View {
			built = tbl
			return newTestView("sub:" + tbl.Title())
		}).
		OnBack(func() error {
			backs++
			return nil
		})
	stack.Push(home)

	home.action = view.None()
	if err := r.Forward(home); err != nil || stack.Len() != 2 {
		t.Fatalf("None: err=%v len=%d", err, stack.Len())
	}

	home.action = view.NavigateTo(child)
	if err := r.Forward(home); err != nil || stack.Top() != child {
		t.Fatalf("NavigateTo: err=%v top=%v", err, stack.Top())
	}

	child.action = view.NavigateToSubmenu(table{title: "settings"})
	if err := r.Forward(home); err != nil {
		t.Fatal(err)
	}
	if built == nil || stack.Top().(*testView).name != "sub:settings" {
		t.Fatalf("submenu not built around the table: top=%v", stack.Top())
	}

	stack.Top().(*testView).action = view.Back()
	before := stack.Len()
	if err := r.Forward(home); err != nil {
		t.Fatal(err)
	}
	if backs != 1 || stack.Len() != before {
		t.Fatalf("Back: backs=%d len=%d (back must go through OnBack, not pop directly)", backs, stack.Len())
	}
}

func TestRouterBackWithoutHandlerPops(t *testing.T) {
	root, a := newTestView("R"), newTestView("A")
	stack := NewStack(root, WithTransitionTime(0))
	stack.Push(a)

	if err := New(stack).Dispatch(view.Back()); err != nil {
		t.Fatal(err)
	}
	if stack.Len() != 1 {
		t.Fatalf("len = %d, want 1", stack.Len())
	}
}

func TestRouterErrors(t *testing.T) {
	stack := NewStack(newTestView("R"), WithTransitionTime(0))
	r := New(stack)

	if err := r.Dispatch(view.NavigateToSubmenu(table{})); !errors.Is(err, ErrNoSubmenuFactory) {
		t.Fatalf("err = %v, want ErrNoSubmenuFactory", err)
	}

	boom := errors.New("boom")
	r.OnBack(func() error { return boom })
	if err := r.Dispatch(view.Back()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}
