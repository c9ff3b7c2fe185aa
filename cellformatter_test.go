package cellset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCellFormatters(t *testing.T) {
	ctx := context.Background()
	view := NewStringsView("", [][]string{{"1.5", "<b>"}}, "A", "B")
	empty := &FilteredView{Source: view, RowOffset: 1}

	str, raw, err := PrintfCellFormatter("[%s]").FormatCell(ctx, view, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "[1.5]", str)
	require.False(t, raw)

	_, _, err = PrintfCellFormatter("[%s]").FormatCell(ctx, empty, 0, 0)
	require.ErrorIs(t, err, ErrUnsupported)

	str, raw, err = SprintCellFormatter(true).FormatCell(ctx, view, 0, 1)
	require.NoError(t, err)
	require.Equal(t, "<b>", str)
	require.True(t, raw)

	str, raw, err = RawCellString("&nbsp;").FormatCell(ctx, empty, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "&nbsp;", str)
	require.True(t, raw)

	f := CellFormatterFunc(func(ctx context.Context, view View, row, col int) (string, bool, error) {
		return view.Columns()[col], false, nil
	})
	str, _, err = f.FormatCell(ctx, view, 0, 1)
	require.NoError(t, err)
	require.Equal(t, "B", str)
}
