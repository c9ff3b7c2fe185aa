package csvtable

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/domonda/go-cellset"
)

func TestFormat_Validate(t *testing.T) {
	require.NoError(t, NewFormat(",").Validate())
	require.Error(t, (*Format)(nil).Validate())
	require.Error(t, NewFormat("").Validate())
	require.Error(t, NewFormat(";;").Validate())
	require.Error(t, NewFormat(`"`).Validate())
	require.Error(t, (&Format{Encoding: "UTF-8", Separator: ",", Newline: "\r"}).Validate())
	require.Error(t, (&Format{Separator: ",", Newline: "\n"}).Validate())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		sep  byte
		want [][]string
	}{
		{name: "empty", csv: "", sep: ',', want: nil},
		{
			name: "simple",
			csv:  "a,b,c\n1,2,3\n",
			sep:  ',',
			want: [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name: "no trailing newline and CRLF",
			csv:  "a;b\r\n1;2",
			sep:  ';',
			want: [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name: "empty line and empty fields",
			csv:  "a,,c\n\n,b,\n",
			sep:  ',',
			want: [][]string{{"a", "", "c"}, nil, {"", "b", ""}},
		},
		{
			name: "quoted",
			csv:  `"a,b","say ""hi""",""` + "\n",
			sep:  ',',
			want: [][]string{{"a,b", `say "hi"`, ""}},
		},
		{
			name: "quoted empty field line",
			csv:  "A\n\"\"\nx\n\n",
			sep:  ',',
			want: [][]string{{"A"}, {""}, {"x"}, nil},
		},
		{
			name: "multi line field",
			csv:  "name,address\r\nJohn,\"Main St\r\nApt 4\"\r\n",
			sep:  ',',
			want: [][]string{{"name", "address"}, {"John", "Main St\nApt 4"}},
		},
		{
			name: "quote inside unquoted field",
			csv:  `5" disk,x`,
			sep:  ',',
			want: [][]string{{`5" disk`, "x"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse([]byte(tt.csv), tt.sep)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := parse([]byte(`a,"b`), ',')
	require.Error(t, err)
}

func TestParseDetectFormat(t *testing.T) {
	rows, format, err := ParseDetectFormat([]byte("Name;Age\r\nJohn;30\r\nJane;25"), nil)
	require.NoError(t, err)
	require.Equal(t, &Format{Encoding: "UTF-8", Separator: ";", Newline: "\r\n"}, format)
	require.Equal(t, [][]string{{"Name", "Age"}, {"John", "30"}, {"Jane", "25"}}, rows)

	rows, format, err = ParseDetectFormat([]byte("sep=,\nA;B,C\n"), nil)
	require.NoError(t, err)
	require.Equal(t, ",", format.Separator)
	require.Equal(t, [][]string{{"A;B", "C"}}, rows)

	rows, format, err = ParseDetectFormat([]byte("a\tb\t\"x,y,z\"\n"), nil)
	require.NoError(t, err)
	require.Equal(t, "\t", format.Separator)
	require.Equal(t, "\n", format.Newline)
	require.Equal(t, [][]string{{"a", "b", "x,y,z"}}, rows)
}

func TestParseWithFormat(t *testing.T) {
	rows, err := ParseWithFormat([]byte("\xEF\xBB\xBFa,b\r\n1,2\r\n"), NewFormat(","))
	require.NoError(t, err)
	require.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, rows)

	_, err = ParseWithFormat([]byte("sep=;\na;b\n"), NewFormat(","))
	require.Error(t, err)

	_, err = ParseWithFormat(nil, &Format{Encoding: "UTF-8", Separator: ","})
	require.Error(t, err)
}

func TestRead(t *testing.T) {
	view, format, err := Read([]byte("\n Name , Age\n\nJohn,30\n,\nJane\n"), "People")
	require.NoError(t, err)
	require.Equal(t, ",", format.Separator)
	require.Equal(t, "People", view.Title())
	require.Equal(t, []string{"Name", "Age"}, view.Columns())
	require.Equal(t, 2, view.NumRows())
	require.Equal(t, "30", view.Cell(0, 1))
	require.Equal(t, "", view.Cell(1, 1))
}

func TestWriter_WriteView(t *testing.T) {
	ctx := context.Background()
	view := cellset.NewStringsView(
		"",
		[][]string{
			{"1", "Hello", ""},
			{"123", "a;b", `say "hi"`},
		},
		"A", "B", "Blah",
	)
	tests := []struct {
		name   string
		writer *Writer
		view   cellset.View
		want   string
	}{
		{
			name:   "empty view",
			writer: NewWriter(),
			view:   &cellset.StringsView{},
			want:   "",
		},
		{
			name:   "header row",
			writer: NewWriter().WithHeaderRow(true),
			view:   view,
			want: "" +
				`A;B;Blah` + "\r\n" +
				`1;Hello;` + "\r\n" +
				`123;"a;b";"say ""hi"""` + "\r\n",
		},
		{
			name:   "header row switched off again",
			writer: NewWriter().WithHeaderRow(true).WithHeaderRow(false).WithNewLine("\n"),
			view:   view,
			want: "" +
				`1;Hello;` + "\n" +
				`123;"a;b";"say ""hi"""` + "\n",
		},
		{
			name:   "padded align right",
			writer: NewWriter().WithHeaderRow(true).WithDelimiter('|').WithPadding(AlignRight).WithNewLine("\n"),
			view:   cellset.NewStringsView("", [][]string{{"1", "Hello"}, {"123", "ä"}}, "A", "B"),
			want: "" +
				`  A|    B` + "\n" +
				`  1|Hello` + "\n" +
				`123|    ä` + "\n",
		},
		{
			name: "column formatters",
			writer: NewWriter().WithHeaderRow(true).WithNewLine("\n").
				WithColumnFormatter(0, cellset.PrintfCellFormatter("#%s")).
				WithColumnFormatter(1, cellset.SprintCellFormatter(true)).
				WithColumnFormatter(2, cellset.RawCellString("x")).
				WithColumnFormatter(2, nil),
			view: view,
			want: "" +
				`A;B;Blah` + "\n" +
				`#1;Hello;` + "\n" +
				`#123;a;b;"say ""hi"""` + "\n",
		},
		{
			name:   "quote all fields",
			writer: NewWriter().WithDelimiter(',').WithQuoteAllFields(true).WithNewLine("\n"),
			view:   &cellset.HeaderView{Cols: []string{"A", "B"}},
			want:   `"A","B"` + "\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := tt.writer.WriteView(ctx, &buf, tt.view)
			require.NoError(t, err)
			require.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriter_WriteSelectedCells(t *testing.T) {
	source := cellset.NewStringsView("", [][]string{{"a", "b"}, {"c", "d"}}, "X", "Y")
	set := cellset.NewSet()
	require.NoError(t, set.Add(cellset.Cell{Row: 1, Col: 0}))

	var buf bytes.Buffer
	err := NewWriter().WithDelimiter(',').WithNewLine("\n").WithNilValue("-").WriteView(context.Background(), &buf, cellset.SelectedRowsView(source, set))
	require.NoError(t, err)
	require.Equal(t, "c,-\n", buf.String())

	buf.Reset()
	err = NewWriter().WithDelimiter(',').WithNewLine("\n").WithNilValue("-").
		WithColumnFormatter(1, cellset.PrintfCellFormatter("<%s>")).
		WriteView(context.Background(), &buf, cellset.SelectedRowsView(source, set))
	require.NoError(t, err)
	require.Equal(t, "c,-\n", buf.String(), "nil cells fall back to the nil value")

	errFormat := errors.New("format failed")
	err = NewWriter().
		WithColumnFormatterFunc(0, func(context.Context, cellset.View, int, int) (string, bool, error) {
			return "", false, errFormat
		}).
		WriteView(context.Background(), &buf, source)
	require.ErrorIs(t, err, errFormat)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, NewWriter().WriteView(ctx, &buf, source), context.Canceled)
}
