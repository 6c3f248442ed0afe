package view

// Table is an ordered, indexable menu source. Indexes outside
// [FirstIndex, LastIndex] are fillers that can be shown but not selected.
type Table interface {
	Size() int
	Title() string
	CellAt(index int) View
	HeightAt(index int) int
	FirstIndex() int
	LastIndex() int
	DefaultIndex() int

	// ActionAt returns what selecting index does. Side effects in the table
	// are allowed.
	ActionAt(index int) Action
}
