package cellset

import (
	"context"
	"fmt"
)

// CellFormatter formats cells of a View as strings.
type CellFormatter interface {
	// FormatCell formats the cell at row and col of view as string
	// or returns a wrapped ErrUnsupported error if
	// it doesn't support formatting the value of the cell.
	// The raw result indicates if the returned string
	// is in the raw format of the table format and can be
	// used as is or if it has to be escaped.
	FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error)
}

// CellFormatterFunc implements CellFormatter for a function.
type CellFormatterFunc func(ctx context.Context, view View, row, col int) (str string, raw bool, err error)

func (f CellFormatterFunc) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return f(ctx, view, row, col)
}

// PrintfCellFormatter implements CellFormatter by calling
// fmt.Sprintf with this type's string value as format.
// Nil cells are not supported.
type PrintfCellFormatter string

func (format PrintfCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	value := view.Cell(row, col)
	if value == nil {
		return "", false, fmt.Errorf("%w: nil cell (%d,%d)", ErrUnsupported, row, col)
	}
	return fmt.Sprintf(string(format), value), false, nil
}

// RawCellString implements CellFormatter by returning
// the underlying string as raw value.
type RawCellString string

func (rawStr RawCellString) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	return string(rawStr), true, nil
}

// SprintCellFormatter implements CellFormatter by calling
// fmt.Sprint for non nil cells. The raw result is this type's value.
type SprintCellFormatter bool

func (rawResult SprintCellFormatter) FormatCell(ctx context.Context, view View, row, col int) (str string, raw bool, err error) {
	value := view.Cell(row, col)
	if value == nil {
		return "", false, fmt.Errorf("%w: nil cell (%d,%d)", ErrUnsupported, row, col)
	}
	return fmt.Sprint(value), bool(rawResult), nil
}
