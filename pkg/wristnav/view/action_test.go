package view

import "testing"

type stubTable struct{}

func (stubTable) Size() int           { return 1 }
func (stubTable) Title() string       { return "stub" }
func (stubTable) CellAt(int) View     { return nil }
func (stubTable) HeightAt(int) int    { return 1 }
func (stubTable) FirstIndex() int     { return 0 }
func (stubTable) LastIndex() int      { return 0 }
func (stubTable) DefaultIndex() int   { return 0 }
func (stubTable) ActionAt(int) Action { return None() }

func TestActionConstructors(t *testing.T) {
	v := &Base{}
	tests := []struct {
		name string
		got  Action
		want ActionKind
	}{
		{"none", None(), ActionNone},
		{"back", Back(), ActionBack},
		{"view", NavigateTo(v), ActionView},
		{"nil view", NavigateTo(nil), ActionNone},
		{"submenu", NavigateToSubmenu(stubTable{}), ActionSubmenu},
		{"nil table", NavigateToSubmenu(nil), ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Kind != tt.want {
				t.Fatalf("kind = %v, want %v", tt.got.Kind, tt.want)
			}
		})
	}
}

func TestBaseDefaults(t *testing.T) {
	var b Base
	if got := b.RenderInto(nil, 0, 0); got != NoRedraw {
		t.Fatalf("RenderInto = %v, want NoRedraw", got)
	}
	if b.Action().Kind != ActionNone {
		t.Fatal("default action is not None")
	}
	b.Wakeup() // no callback yet, must not panic

	woke := 0
	b.SetWakeup(func() { woke++ })
	b.Wakeup()
	if woke != 1 {
		t.Fatalf("woke = %d, want 1", woke)
	}
}
