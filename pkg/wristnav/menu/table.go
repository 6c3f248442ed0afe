package menu

import (
	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/locale"
	"github.com/wristnav/wristnav/pkg/wristnav/view"
)

// Default cell geometry.
const (
	DefaultCellHeight   = 35
	DefaultFillerHeight = constants.ScreenHeight
)

// Item is one selectable row of a StaticTable.
type Item struct {
	Label  string             // message ID, translated when a localizer is set
	Icon   string             // bundled icon name, empty for none
	Action func() view.Action // nil selects nothing
}

// Submenu returns an item action opening t as a submenu.
func Submenu(t view.Table) func() view.Action {
	return func() view.Action { return view.NavigateToSubmenu(t) }
}

// Open returns an item action pushing a freshly built view.
func Open(build func() view.View) func() view.Action {
	return func() view.Action { return view.NavigateTo(build()) }
}

// GoBack is an item action requesting a pop.
func GoBack() view.Action { return view.Back() }

// StaticTable is a Table over a fixed list of items with a filler cell at
// each end, so the first and last items can reach the selection band.
type StaticTable struct {
	title        string
	items        []Item
	cells        []view.View
	loc          *locale.Localizer
	icons        *IconCache
	cellHeight   int
	fillerHeight int
	defaultItem  int
}

// TableOption configures a StaticTable.
type TableOption func(*StaticTable)

// WithLocalizer translates the title and labels through loc.
func WithLocalizer(loc *locale.Localizer) TableOption {
	return func(t *StaticTable) { t.loc = loc }
}

// WithIcons draws item icons from cache.
func WithIcons(cache *IconCache) TableOption {
	return func(t *StaticTable) { t.icons = cache }
}

// WithDefaultItem selects item i (0 based, fillers excluded) initially.
func WithDefaultItem(i int) TableOption {
	return func(t *StaticTable) { t.defaultItem = i }
}

// WithCellHeight overrides the item and filler heights.
func WithCellHeight(cell, filler int) TableOption {
	return func(t *StaticTable) {
		t.cellHeight = cell
		t.fillerHeight = filler
	}
}

// NewStaticTable creates a table titled title. It panics without items.
func NewStaticTable(title string, items []Item, opts ...TableOption) *StaticTable {
	if len(items) == 0 {
		panic("menu: static table " + title + " has no items")
	}
	t := &StaticTable{
		title:        title,
		items:        items,
		cellHeight:   DefaultCellHeight,
		fillerHeight: DefaultFillerHeight,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.defaultItem < 0 || t.defaultItem >= len(items) {
		t.defaultItem = 0
	}

	t.cells = make([]view.View, 0, len(items)+2)
	t.cells = append(t.cells, &Filler{})
	for _, it := range items {
		label := it.Label
		t.cells = append(t.cells, &TextCell{
			Label: func() string { return t.loc.T(label) },
			Icon:  it.Icon,
			Icons: t.icons,
		})
	}
	t.cells = append(t.cells, &Filler{})
	return t
}

func (t *StaticTable) Size() int     { return len(t.items) + 2 }
func (t *StaticTable) Title() string { return t.loc.T(t.title) }

func (t *StaticTable) CellAt(index int) view.View {
	if index < 0 || index >= len(t.cells) {
		return nil
	}
	return t.cells[index]
}

func (t *StaticTable) HeightAt(index int) int {
	if index == 0 || index == len(t.items)+1 {
		return t.fillerHeight
	}
	return t.cellHeight
}

func (t *StaticTable) FirstIndex() int   { return 1 }
func (t *StaticTable) LastIndex() int    { return len(t.items) }
func (t *StaticTable) DefaultIndex() int { return t.defaultItem + 1 }

func (t *StaticTable) ActionAt(index int) view.Action {
	if index < t.FirstIndex() || index > t.LastIndex() {
		return view.None()
	}
	if act := t.items[index-1].Action; act != nil {
		return act()
	}
	return view.None()
}
