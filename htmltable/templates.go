package htmltable

import "html/template"

var (
	HeaderTemplate = template.Must(template.New("header").Parse(
		"<table{{if .TableClass}} class='{{.TableClass}}'{{end}}>\n" +
			"{{if .Caption}}  <caption>{{.Caption}}</caption>\n{{end}}",
	))

	RowTemplate = template.Must(template.New("row").Parse("" +
		"{{if .IsHeaderRow}}" +
		"  <tr>{{range $cell := .Cells}}<th>{{$cell.Text}}</th>{{end}}</tr>\n" +
		"{{else}}" +
		"  <tr{{if .Selected}} class='{{.SelectedClass}}'{{end}}>" +
		"{{range $cell := .Cells}}<td{{if $cell.Selected}} class='{{$.SelectedClass}}'{{end}}>{{$cell.Text}}</td>{{end}}" +
		"</tr>\n" +
		"{{end}}",
	))

	FooterTemplate = template.Must(template.New("footer").Parse(
		"</table>\n",
	))
)

type TemplateContext struct {
	TableClass    string
	SelectedClass string
	Caption       string
}

// RowTemplateContext is passed to RowTemplate for every row.
// Selected is true if all cells of the row are selected.
type RowTemplateContext struct {
	TemplateContext

	IsHeaderRow bool
	RowIndex    int
	Selected    bool
	Cells       []CellContext
}

// CellContext holds the HTML of a table cell.
// Text is escaped by the Writer unless a column
// formatter returned it as raw HTML.
type CellContext struct {
	Text     template.HTML
	Selected bool
}
