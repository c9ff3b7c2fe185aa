package cellset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilteredView(t *testing.T) {
	source := NewStringsView("T", [][]string{
		{"a0", "b0", "c0"},
		{"a1", "b1", "c1"},
		{"a2", "b2", "c2"},
	}, "A", "B", "C")

	view := &FilteredView{Source: source, RowOffset: 1, RowLimit: 5, ColumnMapping: []int{2, 0}}
	require.Equal(t, "T", view.Title())
	require.Equal(t, []string{"C", "A"}, view.Columns())
	require.Equal(t, 2, view.NumRows())
	require.Equal(t, "c1", view.Cell(0, 0))
	require.Equal(t, "a2", view.Cell(1, 1))
	require.Nil(t, view.Cell(2, 0))
	require.Nil(t, view.Cell(0, 2))

	view = &FilteredView{Source: source, RowOffset: 4}
	require.Equal(t, 0, view.NumRows())
}

func TestSelectionBoundsView(t *testing.T) {
	source := NewStringsView("", [][]string{
		{"a0", "b0", "c0", "d0"},
		{"a1", "b1", "c1", "d1"},
		{"a2", "b2", "c2", "d2"},
		{"a3", "b3", "c3", "d3"},
	}, "A", "B", "C", "D")
	s := NewSet()
	require.NoError(t, s.Add(Cell{Row: 1, Col: 1}))
	require.NoError(t, s.Add(Cell{Row: 2, Col: 3}))

	require.Equal(t, Region{Left: 1, Top: 1, Width: 3, Height: 2}, s.Bounds())
	require.Equal(t, []int{1, 3}, s.Columns())

	view := SelectionBoundsView(source, s)
	require.Equal(t, []string{"B", "D"}, view.Columns())
	require.Equal(t, 2, view.NumRows())
	require.Equal(t, "b1", view.Cell(0, 0))
	require.Nil(t, view.Cell(0, 1))
	require.Nil(t, view.Cell(1, 0))
	require.Equal(t, "d2", view.Cell(1, 1))

	empty := SelectionBoundsView(source, NewSet())
	require.Equal(t, 0, empty.NumRows())
	require.Empty(t, empty.Columns())
	require.Equal(t, Region{}, NewSet().Bounds())
}
