// Package htmltable writes a cellset.View as HTML table
// with the cells of a cellset.Set marked as selected.
package htmltable

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"maps"

	"github.com/domonda/go-cellset"
)

// Writer writes views as HTML tables.
// The With methods return a modified copy of the Writer.
type Writer struct {
	tableClass     string
	selectedClass  string
	nilValue       string
	headerRow      bool
	headerTemplate *template.Template
	rowTemplate    *template.Template
	footerTemplate *template.Template

	columnFormatters map[int]cellset.CellFormatter
}

// NewWriter returns a Writer that marks selected cells
// with the class "selected".
func NewWriter() *Writer {
	return &Writer{
		selectedClass:  "selected",
		headerTemplate: HeaderTemplate,
		rowTemplate:    RowTemplate,
		footerTemplate: FooterTemplate,
	}
}

func (w *Writer) clone() *Writer {
	c := *w
	return &c
}

func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

func (w *Writer) WithTableClass(tableClass string) *Writer {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithSelectedClass sets the class of selected cells
// and of rows where all cells are selected.
func (w *Writer) WithSelectedClass(selectedClass string) *Writer {
	mod := w.clone()
	mod.selectedClass = selectedClass
	return mod
}

func (w *Writer) WithNilValue(nilValue string) *Writer {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

// WithColumnFormatter sets the formatter for the cells of the column
// with index col. A nil formatter removes the formatter of the column.
// Formatters can return raw HTML by setting the raw result to true,
// all other results are HTML escaped.
//
// Example:
//
//	writer := htmltable.NewWriter().
//	    WithColumnFormatter(1, cellset.PrintfCellFormatter("%.2f %%"))
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

// WithRawColumn interprets the values of the column
// with index col as raw HTML.
func (w *Writer) WithRawColumn(col int) *Writer {
	return w.WithColumnFormatter(col, cellset.SprintCellFormatter(true))
}

// WithTemplates replaces the templates used for the table header,
// the rows and the table footer. Nil templates are not replaced.
func (w *Writer) WithTemplates(header, row, footer *template.Template) *Writer {
	mod := w.clone()
	if header != nil {
		mod.headerTemplate = header
	}
	if row != nil {
		mod.rowTemplate = row
	}
	if footer != nil {
		mod.footerTemplate = footer
	}
	return mod
}

// WriteView writes view as HTML table to dest.
// The title of the view is used as caption.
// Cells contained in selection get the selected class,
// selection may be nil.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view cellset.View, selection *cellset.Set) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if selection == nil {
		selection = cellset.NewSet()
	}

	var (
		columns   = view.Columns()
		templData = &RowTemplateContext{
			TemplateContext: TemplateContext{
				TableClass:    w.tableClass,
				SelectedClass: w.selectedClass,
				Caption:       view.Title(),
			},
			Cells: make([]CellContext, len(columns)),
		}
	)

	err := w.headerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}

	if w.headerRow {
		templData.IsHeaderRow = true
		for col, title := range columns {
			templData.Cells[col] = CellContext{Text: template.HTML(template.HTMLEscapeString(title))} //#nosec G203
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.IsHeaderRow = false
		templData.RowIndex++
	}

	for row := range view.NumRows() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		for col := range templData.Cells {
			text, err := w.cellHTML(ctx, view, row, col)
			if err != nil {
				return err
			}
			templData.Cells[col] = CellContext{Text: text}
		}
		templData.Selected = false
		for _, span := range selection.RowColumnRanges(row) {
			for col := span.Start; col < min(span.End(), len(columns)); col++ {
				templData.Cells[col].Selected = true
			}
			if span.Start == 0 && span.Count >= len(columns) && len(columns) > 0 {
				templData.Selected = true
			}
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
		templData.RowIndex++
	}

	return w.footerTemplate.Execute(dest, templData.TemplateContext)
}

func (w *Writer) cellHTML(ctx context.Context, view cellset.View, row, col int) (template.HTML, error) {
	if formatter, ok := w.columnFormatters[col]; ok {
		str, raw, err := formatter.FormatCell(ctx, view, row, col)
		switch {
		case err == nil && raw:
			return template.HTML(str), nil //#nosec G203
		case err == nil:
			return template.HTML(template.HTMLEscapeString(str)), nil //#nosec G203
		case !errors.Is(err, cellset.ErrUnsupported):
			return "", fmt.Errorf("can't format cell (%d,%d): %w", row, col, err)
		}
	}
	return template.HTML(template.HTMLEscapeString(w.cellText(view.Cell(row, col)))), nil //#nosec G203
}

func (w *Writer) cellText(value any) string {
	switch v := value.(type) {
	case nil:
		return w.nilValue
	case string:
		return v
	}
	return fmt.Sprint(value)
}
