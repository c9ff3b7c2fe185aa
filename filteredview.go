package cellset

var _ View = new(FilteredView)

// FilteredView is a View of a window of the rows
// and a subset of the columns of Source.
type FilteredView struct {
	Source View
	// Offset index of the first row from Source, must be positive.
	RowOffset int
	// Limits the number of rows, only used if > 0.
	RowLimit int
	// If not nil then the view has as many
	// columns as ColumnMapping has elements and
	// every element is a column index into the Source view.
	// If nil then the view has as many columns as the Source view.
	ColumnMapping []int
	// If not nil then cells of Source that are not
	// in Selection are returned as nil.
	Selection *Set
}

// SelectionBoundsView returns a FilteredView of the rows between the
// first and last selected row and the columns with selected cells.
// Unselected cells within those rows and columns are nil.
func SelectionBoundsView(source View, set *Set) *FilteredView {
	bounds := set.Bounds()
	if bounds.IsEmpty() {
		return &FilteredView{
			Source:        source,
			RowOffset:     source.NumRows(),
			ColumnMapping: []int{},
			Selection:     set,
		}
	}
	return &FilteredView{
		Source:        source,
		RowOffset:     bounds.Top,
		RowLimit:      bounds.Height,
		ColumnMapping: set.Columns(),
		Selection:     set,
	}
}

func (view *FilteredView) Title() string {
	return view.Source.Title()
}

func (view *FilteredView) Columns() []string {
	sourceCols := view.Source.Columns()
	if view.ColumnMapping == nil {
		return sourceCols
	}
	mappedCols := make([]string, len(view.ColumnMapping))
	for i, iSource := range view.ColumnMapping {
		if iSource < len(sourceCols) {
			mappedCols[i] = sourceCols[iSource]
		}
	}
	return mappedCols
}

func (view *FilteredView) NumCols() int {
	if view.ColumnMapping != nil {
		return len(view.ColumnMapping)
	}
	return len(view.Source.Columns())
}

func (view *FilteredView) NumRows() int {
	n := view.Source.NumRows() - max(view.RowOffset, 0)
	if n < 0 {
		return 0
	}
	if view.RowLimit > 0 && n > view.RowLimit {
		return view.RowLimit
	}
	return n
}

func (view *FilteredView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= view.NumRows() || col >= view.NumCols() {
		return nil
	}
	row += max(view.RowOffset, 0)
	if view.ColumnMapping != nil {
		col = view.ColumnMapping[col]
	}
	if view.Selection != nil && !view.Selection.Contains(row, col) {
		return nil
	}
	return view.Source.Cell(row, col)
}
