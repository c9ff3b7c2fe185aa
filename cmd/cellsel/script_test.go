package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/domonda/go-cellset"
	"github.com/domonda/go-cellset/grid"
)

func newScriptTestGrid() *grid.Grid {
	return grid.New(
		"Invoices",
		[]string{"ID", "Amount", "AmountNet", "Customer"},
		[][]any{
			{"1", "10", "8", "ACME"},
			{"2", "20", "16", "Globex"},
			{"3", "30", "24", "Initech"},
		},
	)
}

func applyScript(t *testing.T, g *grid.Grid, script string) error {
	t.Helper()
	s, err := ParseScript([]byte(script))
	require.NoError(t, err)
	return s.Apply(g, slog.New(slog.DiscardHandler))
}

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(`
mode = "Single"
unit = "FullRow"

[[op]]
kind = "select-row"
row = 2

[[op]]
kind = "insert-column"
col = 1
title = "Note"
values = ["a", "b"]
`))
	require.NoError(t, err)
	require.Equal(t, &Script{
		Mode: "Single",
		Unit: "FullRow",
		Ops: []Op{
			{Kind: "select-row", Row: 2},
			{Kind: "insert-column", Col: 1, Title: "Note", Values: []string{"a", "b"}},
		},
	}, s)

	_, err = ParseScript([]byte("[[op]]\nkind = \"select\"\nrow_count = 2\n"))
	require.Error(t, err)

	_, err = ParseScript([]byte("mode = "))
	require.Error(t, err)
}

func TestMatchColumns(t *testing.T) {
	titles := []string{"ID", "Amount", "AmountNet", "Customer"}

	cols, err := matchColumns(titles, []string{"Amount*", "ID"})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, cols)

	cols, err = matchColumns(titles, []string{"{Customer,ID}"})
	require.NoError(t, err)
	require.Equal(t, []int{0, 3}, cols)

	_, err = matchColumns(titles, []string{"Tax*"})
	require.Error(t, err)

	_, err = matchColumns(titles, []string{"[Amount"})
	require.Error(t, err)
}

func TestScript_Apply(t *testing.T) {
	g := newScriptTestGrid()
	var events []grid.SelectedCellsChanged
	g.OnSelectedCellsChanged(func(e grid.SelectedCellsChanged) { events = append(events, e) })

	err := applyScript(t, g, `
[[op]]
kind = "select"
row = 0
col = 0
rows = 3
cols = 2

[[op]]
kind = "unselect"
row = 1
columns = ["ID"]
`)
	require.NoError(t, err)
	require.Len(t, events, 1, "one event for the whole script")
	require.Equal(t, 5, events[0].Added.Count())
	require.False(t, g.IsSelected(1, 0))

	err = applyScript(t, g, `
[[op]]
kind = "move-row"
row = 0
to = 2

[[op]]
kind = "insert-column"
col = 0
title = "Flag"

[[op]]
kind = "remove-column"
columns = ["Amount*"]
`)
	require.NoError(t, err)
	require.Equal(t, []string{"Flag", "ID", "Customer"}, g.Columns())
	require.Equal(t, "1", g.Cell(2, 1))
	require.ElementsMatch(t,
		[]cellset.Cell{{Row: 1, Col: 1}, {Row: 2, Col: 1}},
		g.Selection().Cells(),
	)

	err = applyScript(t, g, `
[[op]]
kind = "keep-one"
row = 2
col = 1
`)
	require.NoError(t, err)
	require.Equal(t, []cellset.Cell{{Row: 2, Col: 1}}, g.Selection().Cells())

	err = applyScript(t, g, `
[[op]]
kind = "insert-rows"
row = 0
rows = 2
values = ["x", "0"]

[[op]]
kind = "select-all"

[[op]]
kind = "keep-row"
row = 1
`)
	require.NoError(t, err)
	require.Equal(t, 5, g.NumRows())
	require.Equal(t, "x", g.Cell(1, 0))
	require.Equal(t, []cellset.Span{{Start: 0, Count: 3}}, g.Selection().RowColumnRanges(1))
	require.Equal(t, 3, g.Selection().Count())

	err = applyScript(t, g, `
unit = "FullRow"

[[op]]
kind = "unselect-all"

[[op]]
kind = "select"
row = 4
col = 2
`)
	require.NoError(t, err)
	require.Equal(t, 3, g.Selection().Count())
	require.Equal(t, grid.FullRowUnit, g.SelectionUnit())

	require.Error(t, applyScript(t, g, `mode = "Multiple"`))
	require.Error(t, applyScript(t, g, `unit = "Column"`))
}
