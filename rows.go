package cellset

import "fmt"

// IntersectsRow returns true if any cell of row is in the set.
func (s *Set) IntersectsRow(row int) bool {
	for _, r := range s.regions {
		if row >= r.Top && row <= r.Bottom() {
			return true
		}
	}
	return false
}

// RowColumnRanges returns the column spans of row that are in the set,
// sorted by start column with touching spans joined.
// The result is nil if the row doesn't intersect the set.
func (s *Set) RowColumnRanges(row int) []Span {
	var spans []Span
	for _, r := range s.regions {
		if row >= r.Top && row <= r.Bottom() {
			spans = append(spans, Span{Start: r.Left, Count: r.Width})
		}
	}
	return joinSpans(spans)
}

// RemoveAllButOne removes every cell except keep.
// If keep is not in the set then all cells are removed.
func (s *Set) RemoveAllButOne(keep Cell) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	if keep.Row < 0 || keep.Col < 0 {
		return fmt.Errorf("%w: negative cell %s", ErrInvalidArgument, keep)
	}
	s.removeAllBut(Region{Left: keep.Col, Top: keep.Row, Width: 1, Height: 1})
	return nil
}

// RemoveAllButOneRow removes every cell that is not
// within the first numColumns columns of row.
func (s *Set) RemoveAllButOneRow(row, numColumns int) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	keep, err := NewRegion(0, row, numColumns, 1)
	if err != nil {
		return err
	}
	s.removeAllBut(keep)
	return nil
}

func (s *Set) removeAllBut(keep Region) {
	var kept, removed []Region
	for _, region := range s.regions {
		intersection := region.Intersection(keep)
		if intersection.IsEmpty() {
			removed = append(removed, region)
			continue
		}
		kept = append(kept, intersection)
		pieces, _ := region.Remainder(intersection)
		removed = append(removed, pieces...)
	}
	s.regions = nil
	for _, r := range kept {
		s.addRegion(r, false)
	}
	if len(removed) > 0 {
		s.notify(ChangeRemoved, removed, nil)
	}
}

// Bounds returns the smallest region that contains all cells of the set.
func (s *Set) Bounds() Region {
	if len(s.regions) == 0 {
		return Region{}
	}
	left, top := s.regions[0].Left, s.regions[0].Top
	right, bottom := s.regions[0].Right(), s.regions[0].Bottom()
	for _, r := range s.regions[1:] {
		left, top = min(left, r.Left), min(top, r.Top)
		right, bottom = max(right, r.Right()), max(bottom, r.Bottom())
	}
	return Region{Left: left, Top: top, Width: right - left + 1, Height: bottom - top + 1}
}

// Columns returns the ascending indices of the columns
// that have at least one cell in the set.
func (s *Set) Columns() []int {
	var spans []Span
	for _, r := range s.regions {
		spans = append(spans, Span{Start: r.Left, Count: r.Width})
	}
	var cols []int
	for _, span := range joinSpans(spans) {
		for col := span.Start; col < span.End(); col++ {
			cols = append(cols, col)
		}
	}
	return cols
}
