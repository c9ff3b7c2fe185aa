package grid

import (
	"fmt"
	"slices"

	"github.com/domonda/go-cellset"
)

// changeCollection reports pending selection changes, runs fn
// and reports the selection changes caused by fn right away,
// also within BeginUpdate and EndUpdate, because pending
// cells are stored by index and fn changes indices.
func (g *Grid) changeCollection(fn func() error) error {
	g.flush()
	defer g.flush()
	return fn()
}

func (g *Grid) checkInsertIndex(what string, index, size int) error {
	if index < 0 || index > size {
		return fmt.Errorf("%w: %s index %d not in [0, %d]", cellset.ErrInvalidArgument, what, index, size)
	}
	return nil
}

func (g *Grid) checkRange(what string, index, count, size int) error {
	if index < 0 || count < 0 || index+count > size {
		return fmt.Errorf("%w: %s range [%d, %d) not in [0, %d)", cellset.ErrInvalidArgument, what, index, index+count, size)
	}
	return nil
}

// InsertRows inserts rows at index.
// If all cells were selected in ExtendedSelection mode
// then the inserted rows get selected too.
func (g *Grid) InsertRows(index int, rows ...[]any) error {
	if err := g.checkInsertIndex("row", index, len(g.rows)); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	selectNew := g.mode == ExtendedSelection && g.allSelected()
	return g.changeCollection(func() error {
		g.rows = slices.Insert(g.rows, index, rows...)
		g.logger.Debug("rows inserted", "index", index, "count", len(rows), "selectNew", selectNew)
		return g.selection.OnRowInserted(index, len(rows), len(g.rows), len(g.columns), selectNew)
	})
}

// RemoveRows removes count rows starting at index.
// Selected cells of the removed rows are reported
// as removed and resolve to the removed row items.
func (g *Grid) RemoveRows(index, count int) error {
	if err := g.checkRange("row", index, count, len(g.rows)); err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	return g.changeCollection(func() error {
		removed := cellset.RemovedItemsResolver{Offset: index, Items: rowItems(g.rows[index : index+count]), Columns: g}
		g.rows = slices.Delete(g.rows, index, index+count)
		g.logger.Debug("rows removed", "index", index, "count", count)
		return g.selection.OnRowRemoved(index, count, len(g.rows), len(g.columns), removed)
	})
}

// ReplaceRow replaces the row at index.
// Selected cells of the replaced row are unselected.
func (g *Grid) ReplaceRow(index int, row []any) error {
	if err := g.checkRow(index); err != nil {
		return err
	}
	return g.changeCollection(func() error {
		removed := cellset.RemovedItemsResolver{Offset: index, Items: []any{g.rows[index]}, Columns: g}
		g.rows[index] = row
		g.logger.Debug("row replaced", "index", index)
		return g.selection.OnRowReplaced(index, 1, len(g.columns), removed)
	})
}

// MoveRow moves the row at from to index to.
// The selection moves with the row.
func (g *Grid) MoveRow(from, to int) error {
	if err := g.checkRow(from); err != nil {
		return err
	}
	if err := g.checkRow(to); err != nil {
		return err
	}
	return g.changeCollection(func() error {
		g.rows = moveElem(g.rows, from, to)
		g.logger.Debug("row moved", "from", from, "to", to)
		return g.selection.OnRowMoved(from, to, 1, len(g.rows), len(g.columns))
	})
}

// ResetRows replaces all rows.
// All selected cells are reported as removed
// and resolve to the previous row items.
func (g *Grid) ResetRows(rows [][]any) error {
	return g.changeCollection(func() error {
		removed := cellset.RemovedItemsResolver{Items: rowItems(g.rows), Columns: g}
		numRemoved := len(g.rows)
		g.rows = rows
		g.logger.Debug("rows reset", "removed", numRemoved, "count", len(rows))
		err := g.selection.OnRowRemoved(0, numRemoved, 0, len(g.columns), removed)
		if err != nil {
			return err
		}
		return g.selection.OnRowInserted(0, len(rows), len(rows), len(g.columns), false)
	})
}

// InsertColumn inserts a column at index with values
// as cell values of the rows. Missing values are nil.
// If all cells were selected in ExtendedSelection mode
// then the inserted column gets selected too.
func (g *Grid) InsertColumn(index int, title string, values ...any) error {
	if err := g.checkInsertIndex("column", index, len(g.columns)); err != nil {
		return err
	}
	selectNew := g.mode == ExtendedSelection && g.unit == CellUnit && g.allSelected()
	return g.changeCollection(func() error {
		g.columns = slices.Insert(g.columns, index, title)
		for i, row := range g.rows {
			var value any
			if i < len(values) {
				value = values[i]
			}
			g.rows[i] = slices.Insert(padRow(row, index), index, value)
		}
		g.logger.Debug("column inserted", "index", index, "title", title, "selectNew", selectNew)
		err := g.selection.OnColumnInserted(index, 1, len(g.rows), len(g.columns), selectNew)
		if err != nil {
			return err
		}
		if g.unit == FullRowUnit {
			// Selected rows stay fully selected
			for _, r := range g.selection.Regions() {
				err = g.selection.AddRegion(r.Top, index, r.Height, 1)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// RemoveColumn removes the column at index.
// Selected cells of the column are reported as removed
// and resolve to the removed column title.
func (g *Grid) RemoveColumn(index int) error {
	if err := g.checkRange("column", index, 1, len(g.columns)); err != nil {
		return err
	}
	return g.changeCollection(func() error {
		removed := cellset.RemovedColumnsResolver{Offset: index, Cols: []any{g.columns[index]}, Items: g}
		g.columns = slices.Delete(g.columns, index, index+1)
		for i, row := range g.rows {
			if index < len(row) {
				g.rows[i] = slices.Delete(row, index, index+1)
			}
		}
		g.logger.Debug("column removed", "index", index)
		return g.selection.OnColumnRemoved(index, 1, len(g.rows), len(g.columns), removed)
	})
}

// MoveColumn moves the column at from to index to
// together with its cell values and selection.
func (g *Grid) MoveColumn(from, to int) error {
	if err := g.checkRange("column", from, 1, len(g.columns)); err != nil {
		return err
	}
	if err := g.checkRange("column", to, 1, len(g.columns)); err != nil {
		return err
	}
	return g.changeCollection(func() error {
		g.columns = moveElem(g.columns, from, to)
		for i, row := range g.rows {
			g.rows[i] = moveElem(padRow(row, len(g.columns)), from, to)
		}
		g.logger.Debug("column moved", "from", from, "to", to)
		return g.selection.OnColumnMoved(from, to, 1, len(g.rows), len(g.columns))
	})
}

func rowItems(rows [][]any) []any {
	items := make([]any, len(rows))
	for i, row := range rows {
		items[i] = row
	}
	return items
}

// padRow appends nil values to row until it has at least n values.
func padRow(row []any, n int) []any {
	if len(row) >= n {
		return row
	}
	return append(row, make([]any, n-len(row))...)
}

func moveElem[T any](s []T, from, to int) []T {
	elem := s[from]
	return slices.Insert(slices.Delete(s, from, from+1), to, elem)
}
