// Package grid implements the table that owns a cell selection:
// it holds row items and column titles, applies selection rules
// and keeps the selection in sync when rows or columns change.
package grid

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/domonda/go-cellset"
)

// SelectedCellsChanged is passed to the handlers registered with
// Grid.OnSelectedCellsChanged. Added and Removed are frozen and
// never share a cell. Their resolvers are valid after the event,
// cells of removed rows or columns resolve to the removed values.
type SelectedCellsChanged struct {
	Added   *cellset.Set
	Removed *cellset.Set
}

var (
	_ cellset.View     = new(Grid)
	_ cellset.Resolver = new(Grid)
)

// Grid is a table of row items with titled columns
// and a selection of its cells.
//
// A Grid is not safe for concurrent use, wrap it with an Actor
// to use it from multiple goroutines.
type Grid struct {
	title   string
	columns []string
	rows    [][]any

	mode      SelectionMode
	unit      SelectionUnit
	selection *cellset.Set

	updateDepth    int
	pendingAdded   *cellset.Set
	pendingRemoved *cellset.Set
	handlers       []func(SelectedCellsChanged)

	logger *slog.Logger
}

// New returns a Grid with an empty selection.
// The rows are used without copying.
func New(title string, columns []string, rows [][]any) *Grid {
	g := &Grid{
		title:   title,
		columns: slices.Clone(columns),
		rows:    rows,
		mode:    ExtendedSelection,
		unit:    CellUnit,
		logger:  slog.New(slog.DiscardHandler),
	}
	g.selection = cellset.NewSet().WithResolver(g).WithListener(g.onChange)
	return g
}

// NewFromView returns a Grid with the title, columns and cell values of view.
func NewFromView(view cellset.View) *Grid {
	rows := make([][]any, view.NumRows())
	for row := range rows {
		rows[row] = make([]any, len(view.Columns()))
		for col := range rows[row] {
			rows[row][col] = view.Cell(row, col)
		}
	}
	return New(view.Title(), view.Columns(), rows)
}

// WithLogger sets the logger for debug output and returns the grid.
func (g *Grid) WithLogger(logger *slog.Logger) *Grid {
	g.logger = logger
	return g
}

// OnSelectedCellsChanged registers a handler
// that is called for every change of the selection.
func (g *Grid) OnSelectedCellsChanged(handler func(SelectedCellsChanged)) {
	g.handlers = append(g.handlers, handler)
}

func (g *Grid) Title() string     { return g.title }
func (g *Grid) Columns() []string { return g.columns }
func (g *Grid) NumRows() int      { return len(g.rows) }
func (g *Grid) NumColumns() int   { return len(g.columns) }

func (g *Grid) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= len(g.rows) || col >= len(g.columns) || col >= len(g.rows[row]) {
		return nil
	}
	return g.rows[row][col]
}

// Item returns the item of a row, which is the slice of its cell values.
func (g *Grid) Item(row int) any {
	if row < 0 || row >= len(g.rows) {
		return nil
	}
	return g.rows[row]
}

// Column returns the title of a column.
func (g *Grid) Column(col int) any {
	if col < 0 || col >= len(g.columns) {
		return nil
	}
	return g.columns[col]
}

// Selection returns a frozen copy of the selected cells.
func (g *Grid) Selection() *cellset.Set {
	s := g.selection.Clone()
	s.Freeze()
	return s
}

// IsSelected returns true if the cell is selected.
func (g *Grid) IsSelected(row, col int) bool {
	return g.selection.Contains(row, col)
}

func (g *Grid) SelectionMode() SelectionMode { return g.mode }
func (g *Grid) SelectionUnit() SelectionUnit { return g.unit }

// BeginUpdate starts collecting selection changes
// until the matching EndUpdate call.
// Changes that cancel each other out are not reported.
func (g *Grid) BeginUpdate() {
	g.updateDepth++
}

// EndUpdate reports the collected selection changes
// if it matches the outermost BeginUpdate call.
func (g *Grid) EndUpdate() {
	if g.updateDepth == 0 {
		return
	}
	g.updateDepth--
	if g.updateDepth == 0 {
		g.flush()
	}
}

func (g *Grid) update(fn func() error) error {
	g.BeginUpdate()
	defer g.EndUpdate()
	return fn()
}

func (g *Grid) onChange(c cellset.Change) {
	changed := c.Set()
	pending, opposite := &g.pendingAdded, &g.pendingRemoved
	if c.Action == cellset.ChangeRemoved {
		pending, opposite = opposite, pending
	}
	if *opposite != nil {
		// Cells removed and added again within the same
		// update cancel each other out, and vice versa
		if err := cellset.Xor(changed, *opposite); err != nil {
			g.logger.Error("can't cancel pending selection changes", "err", err)
		}
	}
	if *pending == nil {
		*pending = cellset.NewSet().WithResolver(c.Resolver)
	}
	if err := (*pending).Union(changed); err != nil {
		g.logger.Error("can't collect selection change", "err", err)
	}
}

func (g *Grid) flush() {
	added, removed := g.pendingAdded, g.pendingRemoved
	g.pendingAdded, g.pendingRemoved = nil, nil
	if added == nil {
		added = cellset.NewSet().WithResolver(g)
	}
	if removed == nil {
		removed = cellset.NewSet().WithResolver(g)
	}
	if added.IsEmpty() && removed.IsEmpty() {
		return
	}
	added.Freeze()
	removed.Freeze()
	g.logger.Debug("selected cells changed", "added", added.Count(), "removed", removed.Count())
	event := SelectedCellsChanged{Added: added, Removed: removed}
	for _, handler := range g.handlers {
		handler(event)
	}
}

func (g *Grid) checkRow(row int) error {
	if row < 0 || row >= len(g.rows) {
		return fmt.Errorf("%w: row %d not in [0, %d)", cellset.ErrInvalidArgument, row, len(g.rows))
	}
	return nil
}

func (g *Grid) checkRegion(r cellset.Region) error {
	if r.Left < 0 || r.Top < 0 || r.Width < 0 || r.Height < 0 ||
		r.Left+r.Width > len(g.columns) || r.Top+r.Height > len(g.rows) {
		return fmt.Errorf("%w: region %s outside of %dx%d grid", cellset.ErrInvalidArgument, r, len(g.rows), len(g.columns))
	}
	return nil
}

// unitRegion expands r to full rows for FullRowUnit.
func (g *Grid) unitRegion(r cellset.Region) cellset.Region {
	if g.unit == FullRowUnit {
		r.Left, r.Width = 0, len(g.columns)
	}
	return r
}

func (g *Grid) allSelected() bool {
	all := cellset.Region{Width: len(g.columns), Height: len(g.rows)}
	return !all.IsEmpty() && g.selection.ContainsRegion(all)
}

// SelectCell selects a cell, or its row for FullRowUnit.
// In SingleSelection mode every other selected cell is unselected.
func (g *Grid) SelectCell(row, col int) error {
	return g.SelectRegion(row, col, 1, 1)
}

// SelectRow selects all cells of a row.
func (g *Grid) SelectRow(row int) error {
	if err := g.checkRow(row); err != nil {
		return err
	}
	return g.selectRegion(cellset.Region{Left: 0, Top: row, Width: len(g.columns), Height: 1})
}

// SelectRegion selects rowCount rows times colCount columns
// starting at row and col. In SingleSelection mode only
// a single cell or row can be selected.
func (g *Grid) SelectRegion(row, col, rowCount, colCount int) error {
	r := cellset.Region{Left: col, Top: row, Width: colCount, Height: rowCount}
	if err := g.checkRegion(r); err != nil {
		return err
	}
	return g.selectRegion(g.unitRegion(r))
}

func (g *Grid) selectRegion(r cellset.Region) error {
	if r.IsEmpty() {
		return nil
	}
	return g.update(func() error {
		if g.mode == SingleSelection {
			if r.Height > 1 || (g.unit == CellUnit && r.Width > 1) {
				return fmt.Errorf("%w: can't select %s in %s selection mode", cellset.ErrInvalidArgument, r, g.mode)
			}
			if !g.selection.ContainsRegion(r) {
				if err := g.selection.Clear(); err != nil {
					return err
				}
			} else if g.unit == FullRowUnit {
				return g.selection.RemoveAllButOneRow(r.Top, len(g.columns))
			} else {
				return g.selection.RemoveAllButOne(cellset.Cell{Row: r.Top, Col: r.Left})
			}
		}
		return g.selection.AddRegion(r.Top, r.Left, r.Height, r.Width)
	})
}

// UnselectCell unselects a cell, or its row for FullRowUnit.
func (g *Grid) UnselectCell(row, col int) error {
	return g.UnselectRegion(row, col, 1, 1)
}

// UnselectRegion unselects rowCount rows times colCount columns
// starting at row and col.
func (g *Grid) UnselectRegion(row, col, rowCount, colCount int) error {
	r := cellset.Region{Left: col, Top: row, Width: colCount, Height: rowCount}
	if err := g.checkRegion(r); err != nil {
		return err
	}
	r = g.unitRegion(r)
	return g.update(func() error {
		return g.selection.RemoveRegion(r.Top, r.Left, r.Height, r.Width)
	})
}

// SelectAll selects all cells.
// It returns an error in SingleSelection mode.
func (g *Grid) SelectAll() error {
	if g.mode == SingleSelection {
		return fmt.Errorf("%w: can't select all in %s selection mode", cellset.ErrInvalidArgument, g.mode)
	}
	return g.update(func() error {
		return g.selection.AddRegion(0, 0, len(g.rows), len(g.columns))
	})
}

// UnselectAll clears the selection.
func (g *Grid) UnselectAll() error {
	return g.update(g.selection.Clear)
}

// UnselectAllBut unselects all cells except the cell at row and col.
// If that cell is not selected the selection is cleared.
func (g *Grid) UnselectAllBut(row, col int) error {
	if err := g.checkRegion(cellset.Region{Left: col, Top: row, Width: 1, Height: 1}); err != nil {
		return err
	}
	return g.update(func() error {
		return g.selection.RemoveAllButOne(cellset.Cell{Row: row, Col: col})
	})
}

// UnselectAllButRow unselects all cells that are not in row.
func (g *Grid) UnselectAllButRow(row int) error {
	if err := g.checkRow(row); err != nil {
		return err
	}
	return g.update(func() error {
		return g.selection.RemoveAllButOneRow(row, len(g.columns))
	})
}

// SetSelectionMode changes the selection mode.
// Switching to SingleSelection keeps only the first
// selected cell or the row of it for FullRowUnit.
func (g *Grid) SetSelectionMode(mode SelectionMode) error {
	return g.update(func() error {
		g.mode = mode
		if mode != SingleSelection || g.selection.IsEmpty() {
			return nil
		}
		first, err := g.selection.At(0)
		if err != nil {
			return err
		}
		if g.unit == FullRowUnit {
			return g.selection.RemoveAllButOneRow(first.Row, len(g.columns))
		}
		return g.selection.RemoveAllButOne(first)
	})
}

// SetSelectionUnit changes the selection unit.
// Switching to FullRowUnit extends the selection to the full
// rows of all selected cells.
func (g *Grid) SetSelectionUnit(unit SelectionUnit) error {
	return g.update(func() error {
		g.unit = unit
		if unit != FullRowUnit || g.selection.IsEmpty() {
			return nil
		}
		for _, r := range g.selection.Regions() {
			err := g.selection.AddRegion(r.Top, 0, r.Height, len(g.columns))
			if err != nil {
				return err
			}
		}
		if g.mode == SingleSelection {
			first, err := g.selection.At(0)
			if err != nil {
				return err
			}
			return g.selection.RemoveAllButOneRow(first.Row, len(g.columns))
		}
		return nil
	})
}
