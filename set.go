package cellset

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Set is a set of cells stored as a list of non-overlapping regions,
// so selecting whole rows or columns of a large table costs
// one region instead of one entry per cell.
//
// Regions keep insertion order, iteration visits regions in that
// order and the cells of every region row by row.
//
// A Set is not safe for concurrent use, callers have to serialize
// all calls, see grid.Actor for a way to do that.
type Set struct {
	regions  []Region
	listener ChangeFunc
	resolver Resolver
	readOnly bool
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return new(Set)
}

// WithListener sets the function that is called for every
// Change of the cells of the set and returns the set.
func (s *Set) WithListener(listener ChangeFunc) *Set {
	s.listener = listener
	return s
}

// WithResolver sets the Resolver passed with every Change
// and returns the set.
func (s *Set) WithResolver(resolver Resolver) *Set {
	s.resolver = resolver
	return s
}

// Resolver returns the Resolver of the set, might be nil.
func (s *Set) Resolver() Resolver { return s.resolver }

// Freeze makes the set read-only.
// All following mutations return ErrReadOnly.
func (s *Set) Freeze() { s.readOnly = true }

// IsReadOnly returns true if the set was frozen.
func (s *Set) IsReadOnly() bool { return s.readOnly }

func (s *Set) checkWritable() error {
	if s.readOnly {
		return ErrReadOnly
	}
	return nil
}

// Count returns the number of cells in the set.
func (s *Set) Count() int {
	n := 0
	for _, r := range s.regions {
		n += r.Size()
	}
	return n
}

// IsEmpty returns true if the set contains no cells.
func (s *Set) IsEmpty() bool { return len(s.regions) == 0 }

// Regions returns a copy of the regions of the set.
func (s *Set) Regions() []Region { return slices.Clone(s.regions) }

// Clone returns a writable copy of the set using the same Resolver
// but without a listener.
func (s *Set) Clone() *Set {
	return &Set{regions: slices.Clone(s.regions), resolver: s.resolver}
}

// Contains returns true if the cell at row and col is in the set.
func (s *Set) Contains(row, col int) bool {
	for _, r := range s.regions {
		if r.ContainsCell(row, col) {
			return true
		}
	}
	return false
}

// ContainsCell returns true if cell is in the set.
func (s *Set) ContainsCell(cell Cell) bool {
	return s.Contains(cell.Row, cell.Col)
}

// ContainsRegion returns true if every cell of r is in the set.
func (s *Set) ContainsRegion(r Region) bool {
	if r.IsEmpty() {
		return true
	}
	return len(s.clip([]Region{r})) == 0
}

// Equal returns true if both sets contain the same cells,
// independent of how the cells are split into regions.
// A nil set equals an empty set.
func (s *Set) Equal(other *Set) bool {
	if s == nil || other == nil {
		return (s == nil || s.IsEmpty()) && (other == nil || other.IsEmpty())
	}
	if s.Count() != other.Count() {
		return false
	}
	for _, r := range other.regions {
		if !s.ContainsRegion(r) {
			return false
		}
	}
	return true
}

// Add adds a single cell. It returns a wrapped ErrInvalidArgument
// for negative coordinates or if the cell is already in the set.
func (s *Set) Add(cell Cell) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	if cell.Row < 0 || cell.Col < 0 {
		return fmt.Errorf("%w: negative cell %s", ErrInvalidArgument, cell)
	}
	if s.ContainsCell(cell) {
		return fmt.Errorf("%w: duplicate cell %s", ErrInvalidArgument, cell)
	}
	s.addRegion(Region{Left: cell.Col, Top: cell.Row, Width: 1, Height: 1}, true)
	return nil
}

// Remove removes a single cell and returns if it was in the set.
func (s *Set) Remove(cell Cell) (bool, error) {
	if err := s.checkWritable(); err != nil {
		return false, err
	}
	if cell.Row < 0 || cell.Col < 0 {
		return false, fmt.Errorf("%w: negative cell %s", ErrInvalidArgument, cell)
	}
	if !s.ContainsCell(cell) {
		return false, nil
	}
	s.removeRegion(Region{Left: cell.Col, Top: cell.Row, Width: 1, Height: 1}, true, nil)
	return true, nil
}

// AddRegion adds rowCount rows times colCount columns of cells
// starting at row and col. Only cells that were not already
// in the set are reported as added to the listener.
func (s *Set) AddRegion(row, col, rowCount, colCount int) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	r, err := NewRegion(col, row, colCount, rowCount)
	if err != nil {
		return err
	}
	s.addRegion(r, true)
	return nil
}

// RemoveRegion removes rowCount rows times colCount columns of cells
// starting at row and col. Only cells that were in the set
// are reported as removed to the listener.
func (s *Set) RemoveRegion(row, col, rowCount, colCount int) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	r, err := NewRegion(col, row, colCount, rowCount)
	if err != nil {
		return err
	}
	s.removeRegion(r, true, nil)
	return nil
}

// Clear removes all cells and reports them as removed.
func (s *Set) Clear() error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	if len(s.regions) == 0 {
		return nil
	}
	removed := s.regions
	s.regions = nil
	s.notify(ChangeRemoved, removed, nil)
	return nil
}

// Union adds all cells of other without notifying the listener.
func (s *Set) Union(other *Set) error {
	if err := s.checkWritable(); err != nil {
		return err
	}
	for _, r := range other.regions {
		s.addRegion(r, false)
	}
	return nil
}

// Xor removes the cells that a and b have in common from both sets
// without notifying any listener, so that afterwards each set only
// holds the cells unique to it.
func Xor(a, b *Set) error {
	if err := a.checkWritable(); err != nil {
		return err
	}
	if err := b.checkWritable(); err != nil {
		return err
	}
	snapshot := slices.Clone(b.regions)
	for _, r := range a.regions {
		b.removeRegion(r, false, nil)
	}
	for _, r := range snapshot {
		a.removeRegion(r, false, nil)
	}
	return nil
}

// All iterates the cells region by region,
// and row by row within a region.
func (s *Set) All() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, r := range s.regions {
			for row := r.Top; row <= r.Bottom(); row++ {
				for col := r.Left; col <= r.Right(); col++ {
					if !yield(Cell{Row: row, Col: col}) {
						return
					}
				}
			}
		}
	}
}

// Cells returns all cells in iteration order.
func (s *Set) Cells() []Cell {
	cells := make([]Cell, 0, s.Count())
	for _, r := range s.regions {
		cells = appendRegionCells(cells, r)
	}
	return cells
}

// CellInfos returns all cells in iteration order
// resolved with the Resolver of the set.
func (s *Set) CellInfos() []CellInfo {
	return resolveCells(s.Cells(), s.resolver)
}

// At returns the cell at index in iteration order.
func (s *Set) At(index int) (Cell, error) {
	if index < 0 {
		return Cell{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	i := index
	for _, r := range s.regions {
		if i < r.Size() {
			return Cell{Row: r.Top + i/r.Width, Col: r.Left + i%r.Width}, nil
		}
		i -= r.Size()
	}
	return Cell{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, s.Count())
}

// IndexOf returns the index of cell in iteration order or -1.
func (s *Set) IndexOf(cell Cell) int {
	index := 0
	for _, r := range s.regions {
		if r.ContainsCell(cell.Row, cell.Col) {
			return index + (cell.Row-r.Top)*r.Width + (cell.Col - r.Left)
		}
		index += r.Size()
	}
	return -1
}

// Insert always returns ErrUnsupported.
func (s *Set) Insert(index int, cell Cell) error {
	return fmt.Errorf("inserting cell %s at index %d: %w", cell, index, ErrUnsupported)
}

// SetAt always returns ErrUnsupported.
func (s *Set) SetAt(index int, cell Cell) error {
	return fmt.Errorf("setting cell %s at index %d: %w", cell, index, ErrUnsupported)
}

func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, r := range s.regions {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.String())
	}
	b.WriteByte(']')
	return b.String()
}

// clip returns the parts of the candidates
// that are not covered by any region of the set.
func (s *Set) clip(candidates []Region) []Region {
	for _, existing := range s.regions {
		for j := 0; j < len(candidates); {
			pieces, intersects := candidates[j].Remainder(existing)
			if !intersects {
				j++
				continue
			}
			candidates = slices.Replace(candidates, j, j+1, pieces...)
			j += len(pieces)
		}
		if len(candidates) == 0 {
			break
		}
	}
	return candidates
}

// addRegion adds r and returns the pieces of it
// that were not already in the set.
func (s *Set) addRegion(r Region, notify bool) []Region {
	if r.IsEmpty() {
		return nil
	}
	added := s.clip([]Region{r})
	for _, piece := range added {
		merged := false
		for i := range s.regions {
			if s.regions[i].Union(piece) {
				merged = true
				break
			}
		}
		if !merged {
			s.regions = append(s.regions, piece)
		}
	}
	if notify && len(added) > 0 {
		s.notify(ChangeAdded, added, nil)
	}
	return added
}

// removeRegion removes r and returns the removed intersections.
// A nil resolver means the resolver of the set.
func (s *Set) removeRegion(r Region, notify bool, resolver Resolver) []Region {
	var removed []Region
	for i := 0; i < len(s.regions); {
		region := s.regions[i]
		intersection := region.Intersection(r)
		if intersection.IsEmpty() {
			i++
			continue
		}
		removed = append(removed, intersection)
		pieces, _ := region.Remainder(intersection)
		s.regions = slices.Replace(s.regions, i, i+1, pieces...)
		i += len(pieces)
	}
	if notify && len(removed) > 0 {
		s.notify(ChangeRemoved, removed, resolver)
	}
	return removed
}

func (s *Set) notify(action ChangeAction, regions []Region, resolver Resolver) {
	if s.listener == nil {
		return
	}
	if resolver == nil {
		resolver = s.resolver
	}
	s.listener(Change{Action: action, Regions: slices.Clone(regions), Resolver: resolver})
}
