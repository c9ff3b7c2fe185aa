package csvtable

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/domonda/go-cellset"
)

// Padding aligns the fields of a column
// to the display width of its widest field.
type Padding int

const (
	NoPadding Padding = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// Writer writes views as CSV.
// The With methods return a modified copy of the Writer.
type Writer struct {
	headerRow      bool
	quoteAllFields bool
	padding        Padding
	delimiter      rune
	newLine        string
	nilValue       string

	columnFormatters map[int]cellset.CellFormatter
}

// NewWriter returns a Writer for semicolon separated values
// with "\r\n" line endings and without header row.
func NewWriter() *Writer {
	return &Writer{
		delimiter: ';',
		newLine:   "\r\n",
	}
}

func (w *Writer) clone() *Writer {
	c := *w
	return &c
}

// WithHeaderRow sets if the column titles are written as first row.
func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

func (w *Writer) WithQuoteAllFields(quoteAllFields bool) *Writer {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

func (w *Writer) WithPadding(padding Padding) *Writer {
	mod := w.clone()
	mod.padding = padding
	return mod
}

func (w *Writer) WithDelimiter(delimiter rune) *Writer {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *Writer) WithNewLine(newLine string) *Writer {
	mod := w.clone()
	mod.newLine = newLine
	return mod
}

// WithNilValue sets the string written for nil cells.
func (w *Writer) WithNilValue(nilValue string) *Writer {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

// WithColumnFormatter sets the formatter for the cells of the column
// with index col. A nil formatter removes the formatter of the column.
// Cells the formatter returns ErrUnsupported for are formatted
// like cells of columns without formatter.
// Raw results are written without escaping.
func (w *Writer) WithColumnFormatter(col int, formatter cellset.CellFormatter) *Writer {
	mod := w.clone()
	mod.columnFormatters = maps.Clone(w.columnFormatters)
	if formatter == nil {
		delete(mod.columnFormatters, col)
		return mod
	}
	if mod.columnFormatters == nil {
		mod.columnFormatters = make(map[int]cellset.CellFormatter)
	}
	mod.columnFormatters[col] = formatter
	return mod
}

func (w *Writer) WithColumnFormatterFunc(col int, formatter cellset.CellFormatterFunc) *Writer {
	return w.WithColumnFormatter(col, formatter)
}

func (w *Writer) Delimiter() rune { return w.delimiter }
func (w *Writer) NewLine() string { return w.newLine }

// WriteView writes all rows of view to dest.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view cellset.View) error {
	rows, err := w.ViewStrings(ctx, view)
	if err != nil {
		return err
	}
	var widths []int
	if w.padding != NoPadding {
		widths = columnWidths(rows, len(view.Columns()))
	}
	var buf bytes.Buffer
	for _, row := range rows {
		for col, str := range row {
			if col > 0 {
				buf.WriteRune(w.delimiter)
			}
			if widths == nil {
				buf.WriteString(str)
				continue
			}
			pad := widths[col] - runewidth.StringWidth(str)
			left, right := 0, pad
			switch w.padding {
			case AlignRight:
				left, right = pad, 0
			case AlignCenter:
				left, right = pad/2, (pad+1)/2
			}
			buf.WriteString(strings.Repeat(" ", left))
			buf.WriteString(str)
			buf.WriteString(strings.Repeat(" ", right))
		}
		buf.WriteString(w.newLine)
		if _, err := dest.Write(buf.Bytes()); err != nil {
			return err
		}
		buf.Reset()
	}
	return nil
}

// ViewStrings returns the escaped fields of all rows of view
// including the header row if enabled.
func (w *Writer) ViewStrings(ctx context.Context, view cellset.View) ([][]string, error) {
	numRows := view.NumRows()
	rows := make([][]string, 0, numRows+1)
	if w.headerRow {
		header := make([]string, len(view.Columns()))
		for col, title := range view.Columns() {
			header[col] = w.escapeString(title)
		}
		rows = append(rows, header)
	}
	for row := range numRows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		strs, err := w.rowStrings(ctx, view, row)
		if err != nil {
			return nil, err
		}
		rows = append(rows, strs)
	}
	return rows, nil
}

func (w *Writer) rowStrings(ctx context.Context, view cellset.View, row int) ([]string, error) {
	strs := make([]string, len(view.Columns()))
	for col := range strs {
		if formatter, ok := w.columnFormatters[col]; ok {
			str, raw, err := formatter.FormatCell(ctx, view, row, col)
			switch {
			case err == nil && raw:
				strs[col] = str
				continue
			case err == nil:
				strs[col] = w.escapeString(str)
				continue
			case !errors.Is(err, cellset.ErrUnsupported):
				return nil, fmt.Errorf("can't format cell (%d,%d): %w", row, col, err)
			}
		}
		strs[col] = w.escapeString(w.cellString(view.Cell(row, col)))
	}
	return strs, nil
}

func (w *Writer) cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return w.nilValue
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

func (w *Writer) escapeString(str string) string {
	str = strings.ReplaceAll(str, "\r", "")
	if w.quoteAllFields || strings.ContainsRune(str, w.delimiter) || strings.ContainsAny(str, "\n\"") {
		return `"` + strings.ReplaceAll(str, `"`, `""`) + `"`
	}
	return str
}

func columnWidths(rows [][]string, numCols int) []int {
	widths := make([]int, numCols)
	for _, row := range rows {
		for col, str := range row {
			widths[col] = max(widths[col], runewidth.StringWidth(str))
		}
	}
	return widths
}
