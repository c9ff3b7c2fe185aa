package cellset

import "fmt"

// The On* methods keep the set in sync with the indices of the owning
// table after rows or columns were inserted, removed, replaced or moved.
// Dimensions are passed as they are after the change.
// Cells that only change their index are re-indexed silently,
// cells of removed or replaced rows and columns are reported as removed.

type axis int

const (
	rowAxis axis = iota
	columnAxis
)

func (a axis) String() string {
	if a == rowAxis {
		return "row"
	}
	return "column"
}

// band returns the region of count indices starting at start
// on the axis and the first crossCount indices of the other axis.
func (a axis) band(start, count, crossCount int) Region {
	if a == rowAxis {
		return Region{Left: 0, Top: start, Width: crossCount, Height: count}
	}
	return Region{Left: start, Top: 0, Width: count, Height: crossCount}
}

func (a axis) shift(r Region, delta int) Region {
	if a == rowAxis {
		r.Top += delta
	} else {
		r.Left += delta
	}
	return r
}

// OnRowInserted re-indexes the set after count rows were inserted at index.
// If selectNew is true the inserted rows are added to the set.
func (s *Set) OnRowInserted(index, count, numRows, numColumns int, selectNew bool) error {
	return s.inserted(rowAxis, index, count, numRows, numColumns, selectNew)
}

// OnColumnInserted re-indexes the set after count columns were inserted at index.
// If selectNew is true the inserted columns are added to the set.
func (s *Set) OnColumnInserted(index, count, numRows, numColumns int, selectNew bool) error {
	return s.inserted(columnAxis, index, count, numColumns, numRows, selectNew)
}

// OnRowRemoved removes the cells of the count rows that were removed
// at index and re-indexes the rows after them.
// The removed resolver is passed with the Change of the removed cells,
// if nil the resolver of the set is used.
func (s *Set) OnRowRemoved(index, count, numRows, numColumns int, removed Resolver) error {
	return s.removed(rowAxis, index, count, numRows, numColumns, removed)
}

// OnColumnRemoved is the column equivalent of OnRowRemoved.
func (s *Set) OnColumnRemoved(index, count, numRows, numColumns int, removed Resolver) error {
	return s.removed(columnAxis, index, count, numColumns, numRows, removed)
}

// OnRowReplaced removes the cells of the count rows
// that were replaced starting at index.
func (s *Set) OnRowReplaced(index, count, numColumns int, removed Resolver) error {
	return s.replaced(rowAxis, index, count, numColumns, removed)
}

// OnColumnReplaced removes the cells of the count columns
// that were replaced starting at index.
func (s *Set) OnColumnReplaced(index, count, numRows int, removed Resolver) error {
	return s.replaced(columnAxis, index, count, numRows, removed)
}

// OnRowMoved re-indexes the set after count rows were moved
// from index from to index to. Nothing is reported to the listener.
func (s *Set) OnRowMoved(from, to, count, numRows, numColumns int) error {
	return s.moved(rowAxis, from, to, count, numRows, numColumns)
}

// OnColumnMoved is the column equivalent of OnRowMoved.
func (s *Set) OnColumnMoved(from, to, count, numRows, numColumns int) error {
	return s.moved(columnAxis, from, to, count, numColumns, numRows)
}

// OnRowsReset clears the set after all rows were replaced.
func (s *Set) OnRowsReset() error { return s.Clear() }

// OnColumnsReset clears the set after all columns were replaced.
func (s *Set) OnColumnsReset() error { return s.Clear() }

func checkDims(a axis, index, count, size, crossCount int) error {
	if index < 0 || count < 0 || size < 0 || crossCount < 0 {
		return fmt.Errorf("%w: %s index=%d count=%d size=%d cross=%d", ErrInvalidArgument, a, index, count, size, crossCount)
	}
	if index+count > size {
		return fmt.Errorf("%w: %s range [%d, %d) exceeds %d", ErrInvalidArgument, a, index, index+count, size)
	}
	return nil
}

// slide silently moves the cells of count indices starting at start by delta.
func (s *Set) slide(a axis, start, count, crossCount, delta int) {
	if count <= 0 || crossCount <= 0 || delta == 0 {
		return
	}
	sliding := s.removeRegion(a.band(start, count, crossCount), false, nil)
	for _, r := range sliding {
		s.addRegion(a.shift(r, delta), false)
	}
}

func (s *Set) inserted(a axis, index, count, size, crossCount int, selectNew bool) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	if err := checkDims(a, index, count, size, crossCount); err != nil {
		return err
	}
	oldSize := size - count
	s.slide(a, index, oldSize-index, crossCount, count)
	if selectNew {
		s.addRegion(a.band(index, count, crossCount), true)
	}
	return nil
}

func (s *Set) removed(a axis, index, count, size, crossCount int, removed Resolver) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	oldSize := size + count
	if err := checkDims(a, index, count, oldSize, crossCount); err != nil {
		return err
	}
	s.removeRegion(a.band(index, count, crossCount), true, removed)
	s.slide(a, index+count, oldSize-index-count, crossCount, -count)
	return nil
}

func (s *Set) replaced(a axis, index, count, crossCount int, removed Resolver) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	if err := checkDims(a, index, count, index+count, crossCount); err != nil {
		return err
	}
	s.removeRegion(a.band(index, count, crossCount), true, removed)
	return nil
}

func (s *Set) moved(a axis, from, to, count, size, crossCount int) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	if err := checkDims(a, from, count, size, crossCount); err != nil {
		return err
	}
	if err := checkDims(a, to, count, size, crossCount); err != nil {
		return err
	}
	if from == to || count == 0 || crossCount == 0 {
		return nil
	}
	moving := s.removeRegion(a.band(from, count, crossCount), false, nil)
	if from < to {
		s.slide(a, from+count, to-from, crossCount, -count)
	} else {
		s.slide(a, to, from-to, crossCount, count)
	}
	for _, r := range moving {
		s.addRegion(a.shift(r, to-from), false)
	}
	return nil
}
