package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/domonda/go-cellset"
	"github.com/domonda/go-cellset/grid"
	"github.com/domonda/go-cellset/htmltable"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)

// selectionView returns the selection of g as View in one of the outputFormats.
func selectionView(g *grid.Grid, format string) cellset.View {
	selection := g.Selection()
	switch format {
	case "rows":
		return cellset.SelectedRowsView(g, selection)
	case "bounds":
		return cellset.SelectionBoundsView(g, selection)
	case "regions":
		return regionsView(g.Title(), selection)
	}
	return cellset.SelectedCellsView(g, selection)
}

func regionsView(title string, set *cellset.Set) *cellset.StringsView {
	var rows [][]string
	for _, r := range set.Regions() {
		rows = append(rows, []string{
			strconv.Itoa(r.Top),
			strconv.Itoa(r.Left),
			strconv.Itoa(r.Height),
			strconv.Itoa(r.Width),
		})
	}
	return cellset.NewStringsView(title, rows, "Row", "Column", "Rows", "Columns")
}

// renderGrid returns the cells of g as aligned text lines
// with the selected cells highlighted.
func renderGrid(g *grid.Grid) string {
	var (
		columns = g.Columns()
		texts   = make([][]string, g.NumRows())
		widths  = make([]int, len(columns))
	)
	for col, title := range columns {
		widths[col] = runewidth.StringWidth(title)
	}
	for row := range texts {
		texts[row] = make([]string, len(columns))
		for col := range columns {
			text := cellText(g.Cell(row, col))
			texts[row][col] = text
			widths[col] = max(widths[col], runewidth.StringWidth(text))
		}
	}

	var b strings.Builder
	if title := g.Title(); title != "" {
		b.WriteString(title)
		b.WriteByte('\n')
	}
	for col, title := range columns {
		if col > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(headerStyle.Render(runewidth.FillRight(title, widths[col])))
	}
	b.WriteByte('\n')
	for row, rowTexts := range texts {
		for col, text := range rowTexts {
			if col > 0 {
				b.WriteString(" | ")
			}
			text = runewidth.FillRight(text, widths[col])
			if g.IsSelected(row, col) {
				text = selectedStyle.Render(text)
			}
			b.WriteString(text)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cellText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	return fmt.Sprint(value)
}

func writeHTML(ctx context.Context, w io.Writer, g *grid.Grid, selectedClass string) error {
	return htmltable.NewWriter().
		WithHeaderRow(true).
		WithSelectedClass(selectedClass).
		WriteView(ctx, w, g, g.Selection())
}
