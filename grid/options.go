package grid

// SelectionMode defines how many cells or rows can be selected.
type SelectionMode int

const (
	// ExtendedSelection allows any number of selected cells.
	ExtendedSelection SelectionMode = iota
	// SingleSelection allows only one selected cell or row.
	SingleSelection
)

func (m SelectionMode) String() string {
	switch m {
	case ExtendedSelection:
		return "Extended"
	case SingleSelection:
		return "Single"
	}
	return "SelectionMode(?)"
}

// ParseSelectionMode returns the SelectionMode for the result of its String method.
func ParseSelectionMode(s string) (SelectionMode, bool) {
	for _, m := range []SelectionMode{ExtendedSelection, SingleSelection} {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

// SelectionUnit defines if cells or full rows are selected.
type SelectionUnit int

const (
	CellUnit SelectionUnit = iota
	FullRowUnit
)

func (u SelectionUnit) String() string {
	switch u {
	case CellUnit:
		return "Cell"
	case FullRowUnit:
		return "FullRow"
	}
	return "SelectionUnit(?)"
}

// ParseSelectionUnit returns the SelectionUnit for the result of its String method.
func ParseSelectionUnit(s string) (SelectionUnit, bool) {
	for _, u := range []SelectionUnit{CellUnit, FullRowUnit} {
		if u.String() == s {
			return u, true
		}
	}
	return 0, false
}
