package cellset

import "fmt"

// Region is an axis-aligned rectangle of cells.
// Left and Width span columns, Top and Height span rows.
// A Region with a Width or Height of zero is empty.
type Region struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// NewRegion returns a Region or a wrapped ErrInvalidArgument
// if any of the passed values is negative.
func NewRegion(left, top, width, height int) (Region, error) {
	if left < 0 || top < 0 || width < 0 || height < 0 {
		return Region{}, fmt.Errorf("%w: region left=%d top=%d width=%d height=%d", ErrInvalidArgument, left, top, width, height)
	}
	return Region{Left: left, Top: top, Width: width, Height: height}, nil
}

// Right returns the index of the last column of the region.
func (r Region) Right() int { return r.Left + r.Width - 1 }

// Bottom returns the index of the last row of the region.
func (r Region) Bottom() int { return r.Top + r.Height - 1 }

// Size returns the number of cells in the region.
func (r Region) Size() int { return r.Width * r.Height }

// IsEmpty returns true if the region contains no cells.
func (r Region) IsEmpty() bool { return r.Width == 0 || r.Height == 0 }

// ContainsCell returns true if the cell at row and col
// lies within the region.
func (r Region) ContainsCell(row, col int) bool {
	return col >= r.Left && col <= r.Right() && row >= r.Top && row <= r.Bottom()
}

// Contains returns true if other lies entirely inside of r.
func (r Region) Contains(other Region) bool {
	return other.Left >= r.Left &&
		other.Top >= r.Top &&
		other.Right() <= r.Right() &&
		other.Bottom() <= r.Bottom()
}

// Intersects returns true if r and other share at least one cell.
func (r Region) Intersects(other Region) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return rangesIntersect(r.Left, r.Width, other.Left, other.Width) &&
		rangesIntersect(r.Top, r.Height, other.Top, other.Height)
}

func rangesIntersect(start1, length1, start2, length2 int) bool {
	end1 := start1 + length1 - 1
	end2 := start2 + length2 - 1
	return start1 <= end2 && end1 >= start2
}

// Intersection returns the cells shared by r and other
// or an empty Region if they don't intersect.
func (r Region) Intersection(other Region) Region {
	if !r.Intersects(other) {
		return Region{}
	}
	left := max(r.Left, other.Left)
	top := max(r.Top, other.Top)
	return Region{
		Left:   left,
		Top:    top,
		Width:  min(r.Right(), other.Right()) - left + 1,
		Height: min(r.Bottom(), other.Bottom()) - top + 1,
	}
}

// Union merges other into r if the result is still a rectangle
// and returns true, or returns false and leaves r unchanged.
//
// Two regions merge if one contains the other, or if they have
// the same extent on one axis and their ranges on the other axis
// overlap or touch.
func (r *Region) Union(other Region) bool {
	if other.IsEmpty() || r.Contains(other) {
		return true
	}
	if r.IsEmpty() || other.Contains(*r) {
		*r = other
		return true
	}

	xMatch := other.Left == r.Left && other.Width == r.Width
	yMatch := other.Top == r.Top && other.Height == r.Height
	if !xMatch && !yMatch {
		return false
	}

	var start, end, otherStart, otherEnd int
	if xMatch {
		start, end, otherStart, otherEnd = r.Top, r.Bottom(), other.Top, other.Bottom()
	} else {
		start, end, otherStart, otherEnd = r.Left, r.Right(), other.Left, other.Right()
	}

	var unite bool
	if otherStart < start {
		unite = otherEnd >= start-1
	} else {
		unite = end >= otherStart-1
	}
	if !unite {
		return false
	}

	newStart := min(start, otherStart)
	newLength := max(end, otherEnd) - newStart + 1
	if xMatch {
		r.Top, r.Height = newStart, newLength
	} else {
		r.Left, r.Width = newStart, newLength
	}
	return true
}

// Remainder returns the parts of r that are not covered by other.
//
// If r and other don't intersect then (nil, false) is returned
// and r is unchanged. If other contains all of r then (nil, true)
// is returned. Otherwise the remainder is decomposed in the order
// top, left, right, bottom where the left and right strips
// only span the rows both regions share.
func (r Region) Remainder(other Region) (pieces []Region, intersects bool) {
	if !r.Intersects(other) {
		return nil, false
	}
	if other.Contains(r) {
		return nil, true
	}

	if r.Top < other.Top {
		pieces = append(pieces, Region{Left: r.Left, Top: r.Top, Width: r.Width, Height: other.Top - r.Top})
	}

	bandTop := max(r.Top, other.Top)
	bandHeight := min(r.Bottom(), other.Bottom()) - bandTop + 1
	if r.Left < other.Left {
		pieces = append(pieces, Region{Left: r.Left, Top: bandTop, Width: other.Left - r.Left, Height: bandHeight})
	}
	if r.Right() > other.Right() {
		pieces = append(pieces, Region{Left: other.Right() + 1, Top: bandTop, Width: r.Right() - other.Right(), Height: bandHeight})
	}

	if r.Bottom() > other.Bottom() {
		pieces = append(pieces, Region{Left: r.Left, Top: other.Bottom() + 1, Width: r.Width, Height: r.Bottom() - other.Bottom()})
	}
	return pieces, true
}

func (r Region) String() string {
	return fmt.Sprintf("{%d %d %dx%d}", r.Left, r.Top, r.Width, r.Height)
}

// Cell is the coordinate of a single cell.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Span is a contiguous range of column or row indices.
type Span struct {
	Start int
	Count int
}

// End returns the index after the last index of the span.
func (s Span) End() int { return s.Start + s.Count }
