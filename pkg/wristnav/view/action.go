package view

// ActionKind tags the variant held by an Action.
type ActionKind int

const (
	ActionNone    ActionKind = iota // Nothing happens
	ActionView                      // Push Action.View
	ActionSubmenu                   // Wrap Action.Table into a menu and push it
	ActionBack                      // Go back one screen
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionView:
		return "view"
	case ActionSubmenu:
		return "submenu"
	case ActionBack:
		return "back"
	default:
		return "unknown"
	}
}

// Action is the answer a view gives when the forward button is pressed.
// Exactly one of View or Table is set, matching Kind.
type Action struct {
	Kind  ActionKind
	View  View
	Table Table
}

func None() Action { return Action{Kind: ActionNone} }

func Back() Action { return Action{Kind: ActionBack} }

// NavigateTo pushes v. A nil view degrades to None.
func NavigateTo(v View) Action {
	if v == nil {
		return None()
	}
	return Action{Kind: ActionView, View: v}
}

// NavigateToSubmenu asks the consumer to build a menu around t. The
// producer never builds the menu view itself, so submenus inherit whatever
// collaborators the consumer wires into its menus.
func NavigateToSubmenu(t Table) Action {
	if t == nil {
		return None()
	}
	return Action{Kind: ActionSubmenu, Table: t}
}
