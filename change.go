package cellset

// ChangeAction tells if the cells of a Change were added or removed.
type ChangeAction int

const (
	ChangeAdded ChangeAction = iota
	ChangeRemoved
)

func (a ChangeAction) String() string {
	switch a {
	case ChangeAdded:
		return "Added"
	case ChangeRemoved:
		return "Removed"
	}
	return "ChangeAction(?)"
}

// ChangeFunc is called by a Set with every Change
// of its cells that is not just a re-indexing.
type ChangeFunc func(Change)

// Resolver translates row and column indices
// into the items and columns of the table that owns a Set.
type Resolver interface {
	Item(row int) any
	Column(col int) any
}

// ResolverFuncs implements Resolver with two functions.
// A nil function resolves to nil.
type ResolverFuncs struct {
	ItemFunc   func(row int) any
	ColumnFunc func(col int) any
}

func (r ResolverFuncs) Item(row int) any {
	if r.ItemFunc == nil {
		return nil
	}
	return r.ItemFunc(row)
}

func (r ResolverFuncs) Column(col int) any {
	if r.ColumnFunc == nil {
		return nil
	}
	return r.ColumnFunc(col)
}

// RemovedItemsResolver resolves rows that were removed from the
// owning table starting at Offset to the captured Items
// and delegates column lookups to Columns.
//
// It is passed to OnRowRemoved and OnRowReplaced because after
// the change the owner can no longer resolve the removed rows.
type RemovedItemsResolver struct {
	Offset  int
	Items   []any
	Columns Resolver
}

func (r RemovedItemsResolver) Item(row int) any {
	i := row - r.Offset
	if i < 0 || i >= len(r.Items) {
		return nil
	}
	return r.Items[i]
}

func (r RemovedItemsResolver) Column(col int) any {
	if r.Columns == nil {
		return nil
	}
	return r.Columns.Column(col)
}

// RemovedColumnsResolver is the column equivalent of RemovedItemsResolver.
type RemovedColumnsResolver struct {
	Offset int
	Cols   []any
	Items  Resolver
}

func (r RemovedColumnsResolver) Item(row int) any {
	if r.Items == nil {
		return nil
	}
	return r.Items.Item(row)
}

func (r RemovedColumnsResolver) Column(col int) any {
	i := col - r.Offset
	if i < 0 || i >= len(r.Cols) {
		return nil
	}
	return r.Cols[i]
}

// CellInfo is a Cell together with the item and column
// it was resolved to when the Change was delivered.
type CellInfo struct {
	Cell
	Item   any
	Column any
}

// Change describes cells that were added to or removed from a Set.
// Regions don't overlap.
type Change struct {
	Action   ChangeAction
	Regions  []Region
	Resolver Resolver
}

// Count returns the number of changed cells.
func (c Change) Count() int {
	n := 0
	for _, r := range c.Regions {
		n += r.Size()
	}
	return n
}

// Cells returns the changed cells in region order.
func (c Change) Cells() []Cell {
	cells := make([]Cell, 0, c.Count())
	for _, r := range c.Regions {
		cells = appendRegionCells(cells, r)
	}
	return cells
}

// CellInfos resolves every changed cell using the Resolver of the Change.
func (c Change) CellInfos() []CellInfo {
	return resolveCells(c.Cells(), c.Resolver)
}

// Set returns the changed cells as a new Set
// using the Resolver of the Change.
func (c Change) Set() *Set {
	s := &Set{resolver: c.Resolver}
	for _, r := range c.Regions {
		s.addRegion(r, false)
	}
	return s
}

func appendRegionCells(cells []Cell, r Region) []Cell {
	for row := r.Top; row <= r.Bottom(); row++ {
		for col := r.Left; col <= r.Right(); col++ {
			cells = append(cells, Cell{Row: row, Col: col})
		}
	}
	return cells
}

func resolveCells(cells []Cell, resolver Resolver) []CellInfo {
	infos := make([]CellInfo, len(cells))
	for i, cell := range cells {
		infos[i].Cell = cell
		if resolver != nil {
			infos[i].Item = resolver.Item(cell.Row)
			infos[i].Column = resolver.Column(cell.Col)
		}
	}
	return infos
}
