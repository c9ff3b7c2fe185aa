package cellset

import "slices"

// SelectedCellsView returns a View with one row per cell of set
// in the iteration order of the set.
// The columns are "Row", "Column" and "Value" where Column is the
// column title of source and Value the cell value of source.
func SelectedCellsView(source View, set *Set) View {
	return &selectedCellsView{source: source, set: set}
}

type selectedCellsView struct {
	source View
	set    *Set
}

var selectedCellsColumns = []string{"Row", "Column", "Value"}

func (v *selectedCellsView) Title() string     { return v.source.Title() }
func (v *selectedCellsView) Columns() []string { return selectedCellsColumns }
func (v *selectedCellsView) NumRows() int      { return v.set.Count() }

func (v *selectedCellsView) Cell(row, col int) any {
	cell, err := v.set.At(row)
	if err != nil {
		return nil
	}
	switch col {
	case 0:
		return cell.Row
	case 1:
		cols := v.source.Columns()
		if cell.Col >= len(cols) {
			return nil
		}
		return cols[cell.Col]
	case 2:
		return v.source.Cell(cell.Row, cell.Col)
	}
	return nil
}

// SelectedRowsView returns a View of the rows of source that have
// at least one cell in set, in ascending row order.
// Cells of those rows that are not in set are nil.
//
// The rows are collected when the view is created,
// later changes of set don't change the rows of the view.
func SelectedRowsView(source View, set *Set) View {
	var spans []Span
	for _, r := range set.regions {
		spans = append(spans, Span{Start: r.Top, Count: r.Height})
	}
	return &selectedRowsView{source: source, set: set, rows: joinSpans(spans)}
}

type selectedRowsView struct {
	source View
	set    *Set
	rows   []Span
}

func (v *selectedRowsView) Title() string     { return v.source.Title() }
func (v *selectedRowsView) Columns() []string { return v.source.Columns() }

func (v *selectedRowsView) NumRows() int {
	n := 0
	for _, span := range v.rows {
		n += span.Count
	}
	return n
}

func (v *selectedRowsView) Cell(row, col int) any {
	if row < 0 {
		return nil
	}
	for _, span := range v.rows {
		if row < span.Count {
			sourceRow := span.Start + row
			if !v.set.Contains(sourceRow, col) {
				return nil
			}
			return v.source.Cell(sourceRow, col)
		}
		row -= span.Count
	}
	return nil
}

// joinSpans sorts spans and joins overlapping or touching ones.
func joinSpans(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	slices.SortFunc(spans, func(a, b Span) int { return a.Start - b.Start })
	joined := spans[:1]
	for _, span := range spans[1:] {
		last := &joined[len(joined)-1]
		if span.Start <= last.End() {
			last.Count = max(last.End(), span.End()) - last.Start
			continue
		}
		joined = append(joined, span)
	}
	return joined
}
